package media

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func mustPlan(t *testing.T, data string, token RunToken) *ExtractionPlan {
	t.Helper()
	doc, err := ParseDocument([]byte(data))
	if err != nil {
		t.Fatalf("ParseDocument() unexpected error: %v", err)
	}
	return Plan(Classify(doc), token)
}

// docWith builds a mediainfo-shaped document from a general record and a
// list of raw track objects.
func docWith(general string, tracks ...string) string {
	all := append([]string{general}, tracks...)
	return `{"media": {"track": [` + strings.Join(all, ",") + `]}}`
}

func TestNormalizeSubtitleFormat(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"UTF-8", "srt"},
		{"utf-8", "srt"},
		{"UTF8", "srt"},
		{"utf8", "srt"},
		{"S_TEXT/WEBVTT", "vtt"},
		{"s_text/webvtt", "vtt"},
		{"ASS", "ass"},
		{"PGS", "pgs"},
		{"VobSub", "vobsub"},
		{"WebVTT", "webvtt"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := NormalizeSubtitleFormat(tt.raw); got != tt.want {
				t.Errorf("NormalizeSubtitleFormat(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestPlan_MultipleAudio(t *testing.T) {
	plan := mustPlan(t, docWith(`{"@type": "General", "AudioCount": "2"}`,
		`{"@type": "Video", "Format": "AVC"}`,
		`{"@type": "Audio", "Format": "AAC"}`,
		`{"@type": "Audio", "Format": "AC3"}`,
	), "1000")

	want := []TrackRecord{
		{Kind: KindAudio, DeclaredOrder: 0, RawFormat: "aac", Format: "aac", ExtractionIndex: 0, OutputFilename: "1000_track0.aac"},
		{Kind: KindAudio, DeclaredOrder: 1, RawFormat: "ac3", Format: "ac3", ExtractionIndex: 1, OutputFilename: "1000_track1.ac3"},
	}
	if !reflect.DeepEqual(plan.Audio, want) {
		t.Errorf("Plan().Audio = %+v, want %+v", plan.Audio, want)
	}
}

func TestPlan_AudioIndicesAreContiguous(t *testing.T) {
	for n := 2; n <= 6; n++ {
		t.Run(fmt.Sprintf("%d tracks", n), func(t *testing.T) {
			tracks := make([]string, 0, n*2)
			for i := 0; i < n; i++ {
				tracks = append(tracks, `{"@type": "Video"}`)
				tracks = append(tracks, fmt.Sprintf(`{"@type": "Audio", "@typeorder": "%d", "Format": "Opus"}`, i+1))
			}
			plan := mustPlan(t, docWith(fmt.Sprintf(`{"@type": "General", "AudioCount": "%d"}`, n), tracks...), "42")

			if len(plan.Audio) != n {
				t.Fatalf("len(Plan().Audio) = %d, want %d", len(plan.Audio), n)
			}
			for i, r := range plan.Audio {
				if r.ExtractionIndex != i {
					t.Errorf("Audio[%d].ExtractionIndex = %d, want %d", i, r.ExtractionIndex, i)
				}
				if r.DeclaredOrder != i+1 {
					t.Errorf("Audio[%d].DeclaredOrder = %d, want %d", i, r.DeclaredOrder, i+1)
				}
				if want := fmt.Sprintf("42_track%d.opus", i); r.OutputFilename != want {
					t.Errorf("Audio[%d].OutputFilename = %q, want %q", i, r.OutputFilename, want)
				}
			}
		})
	}
}

func TestPlan_SingleAudio(t *testing.T) {
	tests := []struct {
		name   string
		tracks []string
		want   []TrackRecord
	}{
		{
			name:   "one audio track",
			tracks: []string{`{"@type": "Audio", "Format": "MPEG Audio"}`},
			want: []TrackRecord{
				{Kind: KindAudio, DeclaredOrder: 1, RawFormat: "mpeg audio", Format: "mpeg audio", ExtractionIndex: 0, OutputFilename: "1000.mpeg audio"},
			},
		},
		{
			name: "extra audio tags are ignored",
			tracks: []string{
				`{"@type": "Audio", "@typeorder": "7", "Format": "FLAC"}`,
				`{"@type": "Audio", "Format": "AAC"}`,
			},
			want: []TrackRecord{
				{Kind: KindAudio, DeclaredOrder: 1, RawFormat: "flac", Format: "flac", ExtractionIndex: 0, OutputFilename: "1000.flac"},
			},
		},
		{
			name:   "no audio entry despite count",
			tracks: []string{`{"@type": "Video"}`},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := mustPlan(t, docWith(`{"@type": "General", "AudioCount": "1"}`, tt.tracks...), "1000")
			if !reflect.DeepEqual(plan.Audio, tt.want) {
				t.Errorf("Plan().Audio = %+v, want %+v", plan.Audio, tt.want)
			}
		})
	}
}

func TestPlan_AudioCountGuards(t *testing.T) {
	tests := []struct {
		name    string
		general string
		want    int
	}{
		{"count absent", `{"@type": "General"}`, 0},
		{"count zero", `{"@type": "General", "AudioCount": "0"}`, 0},
		{"count unparsable", `{"@type": "General", "AudioCount": "many"}`, 0},
		{"count below tagged entries", `{"@type": "General", "AudioCount": "2"}`, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := mustPlan(t, docWith(tt.general,
				`{"@type": "Audio", "Format": "AAC"}`,
				`{"@type": "Audio", "Format": "AAC"}`,
				`{"@type": "Audio", "Format": "AAC"}`,
			), "7")
			if len(plan.Audio) != tt.want {
				t.Errorf("len(Plan().Audio) = %d, want %d", len(plan.Audio), tt.want)
			}
		})
	}
}

func TestPlan_Subtitles(t *testing.T) {
	plan := mustPlan(t, docWith(`{"@type": "General", "TextCount": "3"}`,
		`{"@type": "Text", "@typeorder": "1", "Format": "UTF-8"}`,
		`{"@type": "Text", "@typeorder": "2", "Format": "S_TEXT/WEBVTT"}`,
		`{"@type": "Text", "@typeorder": "3", "Format": "ASS"}`,
	), "2000")

	want := []TrackRecord{
		{Kind: KindSubtitle, DeclaredOrder: 1, RawFormat: "utf-8", Format: "srt", ExtractionIndex: 0, OutputFilename: "2000_track0.srt"},
		{Kind: KindSubtitle, DeclaredOrder: 2, RawFormat: "s_text/webvtt", Format: "vtt", ExtractionIndex: 1, OutputFilename: "2000_track1.vtt"},
		{Kind: KindSubtitle, DeclaredOrder: 3, RawFormat: "ass", Format: "ass", ExtractionIndex: 2, OutputFilename: "2000_track2.ass"},
	}
	if !reflect.DeepEqual(plan.Subtitles, want) {
		t.Errorf("Plan().Subtitles = %+v, want %+v", plan.Subtitles, want)
	}
}

func TestPlan_SingleSubtitleHasNoShortcut(t *testing.T) {
	plan := mustPlan(t, docWith(`{"@type": "General", "TextCount": "1"}`,
		`{"@type": "Text", "Format": "UTF-8"}`,
	), "2000")

	want := []TrackRecord{
		{Kind: KindSubtitle, DeclaredOrder: 0, RawFormat: "utf-8", Format: "srt", ExtractionIndex: 0, OutputFilename: "2000_track0.srt"},
	}
	if !reflect.DeepEqual(plan.Subtitles, want) {
		t.Errorf("Plan().Subtitles = %+v, want %+v", plan.Subtitles, want)
	}
}

func TestPlan_ZeroSubtitleCountIgnoresTextTracks(t *testing.T) {
	plan := mustPlan(t, docWith(`{"@type": "General", "TextCount": "0", "AudioCount": "1"}`,
		`{"@type": "Audio", "Format": "AAC"}`,
		`{"@type": "Text", "Format": "UTF-8"}`,
	), "3000")

	if len(plan.Subtitles) != 0 {
		t.Errorf("Plan().Subtitles = %+v, want empty", plan.Subtitles)
	}
}

func TestPlan_Cover(t *testing.T) {
	tests := []struct {
		name    string
		general string
		want    *CoverRecord
	}{
		{"cover present", `{"@type": "General", "Cover": "Yes"}`, &CoverRecord{OutputFilename: "5000_cover.jpg"}},
		{"cover absent", `{"@type": "General"}`, nil},
		{"cover no", `{"@type": "General", "Cover": "No"}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := mustPlan(t, docWith(tt.general), "5000")
			if !reflect.DeepEqual(plan.Cover, tt.want) {
				t.Errorf("Plan().Cover = %+v, want %+v", plan.Cover, tt.want)
			}
		})
	}
}

func TestPlan_IsDeterministic(t *testing.T) {
	first := mustPlan(t, twoAudioDoc, "99")
	second := mustPlan(t, twoAudioDoc, "99")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Plan() not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestMetadataFilename(t *testing.T) {
	if got := MetadataFilename("1700000000000"); got != "1700000000000.json" {
		t.Errorf("MetadataFilename() = %q, want %q", got, "1700000000000.json")
	}
}
