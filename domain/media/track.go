package media

// Kind classifies a track by the @type tag of its probe entry
type Kind int

const (
	KindOther Kind = iota
	KindAudio
	KindSubtitle
)

// probe @type values
const (
	typeAudio = "Audio"
	typeText  = "Text"
)

// KindOf maps a probe @type tag to a Kind
func KindOf(typeTag string) Kind {
	switch typeTag {
	case typeAudio:
		return KindAudio
	case typeText:
		return KindSubtitle
	default:
		return KindOther
	}
}

func (k Kind) String() string {
	switch k {
	case KindAudio:
		return "audio"
	case KindSubtitle:
		return "subtitle"
	default:
		return "other"
	}
}

// StreamType returns the ffmpeg stream type letter used in -map selectors
func (k Kind) StreamType() string {
	switch k {
	case KindAudio:
		return "a"
	case KindSubtitle:
		return "s"
	default:
		return ""
	}
}

// TrackRecord describes one stream to extract
type TrackRecord struct {
	Kind Kind

	// DeclaredOrder is the probe's @typeorder hint, or the positional
	// counter when the hint is absent.
	DeclaredOrder int

	// RawFormat is the lower-cased probe Format; Format is the normalized
	// value used for the file extension.
	RawFormat string
	Format    string

	// ExtractionIndex is the 0-based position among tracks of the same kind
	ExtractionIndex int
	OutputFilename  string
}

// CoverRecord describes the attached cover image
type CoverRecord struct {
	OutputFilename string
}
