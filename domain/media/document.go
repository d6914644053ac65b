package media

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Unknown is the placeholder for descriptive tags the probe did not report
const Unknown = "Unknown"

// UnknownFormat is used when a track carries no Format field
const UnknownFormat = "unknown format"

// mediainfo JSON keys
const (
	keyType          = "@type"
	keyTypeOrder     = "@typeorder"
	keyFormat        = "Format"
	keyAudioCount    = "AudioCount"
	keyTextCount     = "TextCount"
	keyCover         = "Cover"
	keyTitle         = "Title"
	keyExtra         = "extra"
	keyExtraArtist   = "ARTIST"
	keyExtraDate     = "DATE"
	keyExtraPURL     = "PURL"
	trackListPath    = "media.track"
	coverPresentFlag = "Yes"
)

// RawTrack is one entry of the probe document's track list. Entries have no
// fixed schema, so fields are looked up by exact key.
type RawTrack struct {
	fields map[string]gjson.Result
}

func newRawTrack(r gjson.Result) RawTrack {
	return RawTrack{fields: r.Map()}
}

// Field returns the string value of a top-level key, or "" when absent
func (t RawTrack) Field(name string) string {
	return t.fields[name].String()
}

// Has reports whether the key is present
func (t RawTrack) Has(name string) bool {
	return t.fields[name].Exists()
}

// Type returns the @type tag (General, Video, Audio, Text, ...)
func (t RawTrack) Type() string {
	return t.Field(keyType)
}

// Format returns the lower-cased Format field
func (t RawTrack) Format() string {
	if !t.Has(keyFormat) {
		return UnknownFormat
	}
	return strings.ToLower(t.Field(keyFormat))
}

// TypeOrder returns the @typeorder hint when present and numeric
func (t RawTrack) TypeOrder() (int, bool) {
	r, ok := t.fields[keyTypeOrder]
	if !ok {
		return 0, false
	}
	return parseInt(r)
}

func (t RawTrack) extra(name string) string {
	extra, ok := t.fields[keyExtra]
	if !ok || !extra.IsObject() {
		return Unknown
	}
	v, ok := extra.Map()[name]
	if !ok {
		return Unknown
	}
	return v.String()
}

// Summary holds the run-level counters and descriptive tags carried by the
// first record of the probe document.
type Summary struct {
	AudioCount    int
	SubtitleCount int
	HasCover      bool
	Title         string
	Artist        string
	Date          string
	SourceURL     string
}

// Document is a parsed probe document
type Document struct {
	tracks []RawTrack
}

// ParseDocument validates the probe output and locates its track list.
// A missing media.track path yields an empty document.
func ParseDocument(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrMalformedDocument
	}

	list := gjson.GetBytes(data, trackListPath)
	if !list.Exists() {
		return &Document{}, nil
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: got %s", ErrUnexpectedShape, list.Type)
	}

	entries := list.Array()
	doc := &Document{tracks: make([]RawTrack, 0, len(entries))}
	for _, entry := range entries {
		doc.tracks = append(doc.tracks, newRawTrack(entry))
	}
	return doc, nil
}

// Tracks returns the track entries in document order
func (d *Document) Tracks() []RawTrack {
	return d.tracks
}

// Summary reads the first entry as the summary record, whatever its @type.
func (d *Document) Summary() Summary {
	s := Summary{
		Title:     Unknown,
		Artist:    Unknown,
		Date:      Unknown,
		SourceURL: Unknown,
	}
	if len(d.tracks) == 0 {
		return s
	}

	first := d.tracks[0]
	s.AudioCount = coerceCount(first.fields[keyAudioCount])
	s.SubtitleCount = coerceCount(first.fields[keyTextCount])
	s.HasCover = first.Field(keyCover) == coverPresentFlag
	if first.Has(keyTitle) {
		s.Title = first.Field(keyTitle)
	}
	s.Artist = first.extra(keyExtraArtist)
	s.Date = first.extra(keyExtraDate)
	s.SourceURL = first.extra(keyExtraPURL)
	return s
}

// coerceCount turns a count field into an int; anything unparsable is 0
func coerceCount(r gjson.Result) int {
	n, ok := parseInt(r)
	if !ok || n < 0 {
		return 0
	}
	return n
}

func parseInt(r gjson.Result) (int, bool) {
	switch r.Type {
	case gjson.Number:
		return int(r.Int()), true
	case gjson.String:
		n, err := strconv.Atoi(strings.TrimSpace(r.Str))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
