package media

import (
	"fmt"
	"strings"
)

// RunToken is the per-run value that prefixes every output filename. It
// only separates outputs within a run; two runs started inside the token's
// resolution (one millisecond for the default source) will collide.
type RunToken string

// ExtractionPlan is everything a run asks the external tools to extract
type ExtractionPlan struct {
	Token     RunToken
	Summary   Summary
	Cover     *CoverRecord
	Audio     []TrackRecord
	Subtitles []TrackRecord
}

// MetadataFilename returns the name of the probe document written for a run
func MetadataFilename(token RunToken) string {
	return string(token) + ".json"
}

// CoverFilename returns the name of the extracted cover image
func CoverFilename(token RunToken) string {
	return string(token) + "_cover.jpg"
}

// TrackFilename returns <token>_track<index>.<format>
func TrackFilename(token RunToken, index int, format string) string {
	return fmt.Sprintf("%s_track%d.%s", token, index, format)
}

// NormalizeSubtitleFormat maps probe codec identifiers onto file extensions.
// Only SRT and WebVTT are rewritten; anything else passes through lower-cased.
func NormalizeSubtitleFormat(raw string) string {
	f := strings.ToLower(raw)
	switch f {
	case "utf8", "utf-8":
		return "srt"
	case "s_text/webvtt":
		return "vtt"
	default:
		return f
	}
}

// Plan assigns extraction indices and output filenames. It is a pure
// function of the classification and the token.
func Plan(c Classification, token RunToken) *ExtractionPlan {
	p := &ExtractionPlan{
		Token:   token,
		Summary: c.Summary,
	}

	if c.Summary.HasCover {
		p.Cover = &CoverRecord{OutputFilename: CoverFilename(token)}
	}

	p.Audio = planAudio(c.Audio, c.Summary.AudioCount, token)
	p.Subtitles = planSubtitles(c.Subtitles, token)
	return p
}

func planAudio(tracks []RawTrack, count int, token RunToken) []TrackRecord {
	if count < 1 || len(tracks) == 0 {
		return nil
	}

	// A one-track file gets the bare canonical name.
	if count == 1 {
		format := tracks[0].Format()
		return []TrackRecord{{
			Kind:            KindAudio,
			DeclaredOrder:   1,
			RawFormat:       format,
			Format:          format,
			ExtractionIndex: 0,
			OutputFilename:  string(token) + "." + format,
		}}
	}

	records := make([]TrackRecord, 0, len(tracks))
	for i, t := range tracks {
		format := t.Format()
		records = append(records, TrackRecord{
			Kind:            KindAudio,
			DeclaredOrder:   declaredOrder(t, i),
			RawFormat:       format,
			Format:          format,
			ExtractionIndex: i,
			OutputFilename:  TrackFilename(token, i, format),
		})
	}
	return records
}

func planSubtitles(tracks []RawTrack, token RunToken) []TrackRecord {
	if len(tracks) == 0 {
		return nil
	}

	records := make([]TrackRecord, 0, len(tracks))
	for i, t := range tracks {
		raw := t.Format()
		format := NormalizeSubtitleFormat(raw)
		records = append(records, TrackRecord{
			Kind:            KindSubtitle,
			DeclaredOrder:   declaredOrder(t, i),
			RawFormat:       raw,
			Format:          format,
			ExtractionIndex: i,
			OutputFilename:  TrackFilename(token, i, format),
		})
	}
	return records
}

func declaredOrder(t RawTrack, counter int) int {
	if order, ok := t.TypeOrder(); ok {
		return order
	}
	return counter
}
