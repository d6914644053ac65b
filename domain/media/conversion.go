package media

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultAudioFormat is the format extracted audio is transcoded to
const DefaultAudioFormat = "mp3"

// DefaultLyricsFormat is the line-timestamped format SRT subtitles become
const DefaultLyricsFormat = "lrc"

// srtFormat is the normalized format eligible for lyrics conversion
const srtFormat = "srt"

// ConversionRequest asks the conversion tool to turn Input into Output
type ConversionRequest struct {
	Kind   Kind
	Input  string
	Output string
}

func withSuffix(name, ext string, n int) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if n == 0 {
		return base + "." + ext
	}
	return fmt.Sprintf("%s_%d.%s", base, n, ext)
}

// PlanAudioConversions returns one transcode per audio record not already
// in target. The first conversion keeps the bare name, later ones get
// _1, _2, ... in plan order.
func PlanAudioConversions(records []TrackRecord, target string) []ConversionRequest {
	target = strings.ToLower(target)
	var reqs []ConversionRequest
	for _, r := range records {
		if strings.ToLower(r.Format) == target {
			continue
		}
		reqs = append(reqs, ConversionRequest{
			Kind:   KindAudio,
			Input:  r.OutputFilename,
			Output: withSuffix(r.OutputFilename, target, len(reqs)),
		})
	}
	return reqs
}

// PlanLyricsConversions returns one reformat per SRT subtitle record. A
// 1-based _n suffix is added only when the run has more than one SRT track.
func PlanLyricsConversions(records []TrackRecord, lyricsFormat string) []ConversionRequest {
	var srt []TrackRecord
	for _, r := range records {
		if r.Format == srtFormat {
			srt = append(srt, r)
		}
	}

	reqs := make([]ConversionRequest, 0, len(srt))
	for i, r := range srt {
		n := 0
		if len(srt) > 1 {
			n = i + 1
		}
		reqs = append(reqs, ConversionRequest{
			Kind:   KindSubtitle,
			Input:  r.OutputFilename,
			Output: withSuffix(r.OutputFilename, lyricsFormat, n),
		})
	}
	return reqs
}
