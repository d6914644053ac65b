package media

// Classification is the single-pass partition of a probe document
type Classification struct {
	Summary   Summary
	Audio     []RawTrack
	Subtitles []RawTrack
}

// Classify partitions the document's tracks by kind, preserving document
// order. The summary record takes part in the scan since it may itself be
// a media track. Subsets are bounded by the summary's declared counts, so a
// zero count empties the subset whatever the tags say.
func Classify(doc *Document) Classification {
	c := Classification{Summary: doc.Summary()}

	for _, t := range doc.Tracks() {
		switch KindOf(t.Type()) {
		case KindAudio:
			c.Audio = append(c.Audio, t)
		case KindSubtitle:
			c.Subtitles = append(c.Subtitles, t)
		}
	}

	c.Audio = bound(c.Audio, c.Summary.AudioCount)
	c.Subtitles = bound(c.Subtitles, c.Summary.SubtitleCount)
	return c
}

func bound(tracks []RawTrack, count int) []RawTrack {
	if count < 1 {
		return nil
	}
	if len(tracks) > count {
		return tracks[:count]
	}
	return tracks
}
