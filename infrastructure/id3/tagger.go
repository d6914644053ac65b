package id3

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"

	"video-to-audio/domain/media"
)

// SourceURLDescription is the TXXX description holding the source URL
const SourceURLDescription = "PURL"

// Tagger implements media.Tagger by writing ID3v2.4 frames
type Tagger struct{}

// NewTagger creates a new ID3 tagger
func NewTagger() *Tagger {
	return &Tagger{}
}

// Tag implements media.Tagger. Fields still set to media.Unknown are skipped.
func (t *Tagger) Tag(path string, tags media.Tags) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("could not open %s for tagging: %w", filepath.Base(path), err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	if known(tags.Title) {
		tag.SetTitle(tags.Title)
	}
	if known(tags.Artist) {
		tag.SetArtist(tags.Artist)
	}
	if known(tags.Date) {
		tag.SetYear(tags.Date)
	}
	if known(tags.SourceURL) {
		tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding:    id3v2.EncodingUTF8,
			Description: SourceURLDescription,
			Value:       tags.SourceURL,
		})
	}

	if tags.CoverPath != "" {
		picture, err := os.ReadFile(tags.CoverPath)
		if err != nil {
			return fmt.Errorf("could not read cover %s: %w", filepath.Base(tags.CoverPath), err)
		}
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    mimeType(tags.CoverPath),
			PictureType: id3v2.PTFrontCover,
			Description: "Front cover",
			Picture:     picture,
		})
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("could not save tags to %s: %w", filepath.Base(path), err)
	}
	return nil
}

func known(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != media.Unknown
}

func mimeType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	default:
		return "image/jpeg"
	}
}

// Ensure Tagger implements media.Tagger
var _ media.Tagger = (*Tagger)(nil)
