package media

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name          string
		data          string
		wantAudio     []string
		wantSubtitles []string
	}{
		{
			name:          "partitions by type tag in document order",
			data:          twoAudioDoc,
			wantAudio:     []string{"aac", "ac-3"},
			wantSubtitles: []string{"utf-8"},
		},
		{
			name: "summary record counts as a media track",
			data: docWith(`{"@type": "Audio", "AudioCount": "2", "Format": "MP3"}`,
				`{"@type": "Audio", "Format": "AAC"}`),
			wantAudio: []string{"mp3", "aac"},
		},
		{
			name: "other kinds are ignored",
			data: docWith(`{"@type": "General", "AudioCount": "1", "TextCount": "1"}`,
				`{"@type": "Image", "Format": "JPEG"}`,
				`{"@type": "Menu"}`,
				`{"@type": "Text", "Format": "PGS"}`,
				`{"@type": "Audio", "Format": "DTS"}`),
			wantAudio:     []string{"dts"},
			wantSubtitles: []string{"pgs"},
		},
		{
			name: "zero text count drops tagged subtitles",
			data: docWith(`{"@type": "General", "TextCount": "0"}`,
				`{"@type": "Text", "Format": "UTF-8"}`),
		},
		{
			name: "subsets are bounded by declared counts",
			data: docWith(`{"@type": "General", "AudioCount": "1", "TextCount": "2"}`,
				`{"@type": "Audio", "Format": "AAC"}`,
				`{"@type": "Audio", "Format": "AC-3"}`,
				`{"@type": "Text", "Format": "UTF-8"}`,
				`{"@type": "Text", "Format": "ASS"}`,
				`{"@type": "Text", "Format": "PGS"}`),
			wantAudio:     []string{"aac"},
			wantSubtitles: []string{"utf-8", "ass"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseDocument([]byte(tt.data))
			if err != nil {
				t.Fatalf("ParseDocument() unexpected error: %v", err)
			}
			c := Classify(doc)

			assertFormats(t, "Audio", c.Audio, tt.wantAudio)
			assertFormats(t, "Subtitles", c.Subtitles, tt.wantSubtitles)
		})
	}
}

func assertFormats(t *testing.T, label string, got []RawTrack, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len(%s) = %d, want %d", label, len(got), len(want))
	}
	for i := range got {
		if f := got[i].Format(); f != want[i] {
			t.Errorf("%s[%d].Format() = %q, want %q", label, i, f, want[i])
		}
	}
}
