package media

import "context"

// Prober turns a media file into a JSON metadata document at outputPath
type Prober interface {
	Probe(ctx context.Context, inputPath, outputPath string) error
}

// StreamExtractor copies single streams out of a container
type StreamExtractor interface {
	// ExtractStream extracts the index-th stream of the given kind (0-based)
	ExtractStream(ctx context.Context, inputPath string, kind Kind, index int, outputPath string) error

	// ExtractCover extracts the attached picture, skipping the main video stream
	ExtractCover(ctx context.Context, inputPath, outputPath string) error
}

// Converter transcodes or reformats one file into another
type Converter interface {
	Convert(ctx context.Context, inputPath, outputPath string) error
}

// Tags are the descriptive fields written into converted audio
type Tags struct {
	Title     string
	Artist    string
	Date      string
	SourceURL string
	CoverPath string // empty when no cover was extracted
}

// Tagger writes descriptive tags into an audio file
type Tagger interface {
	Tag(path string, tags Tags) error
}

// FileChecker defines the interface for checking file existence
type FileChecker interface {
	Exists(path string) bool
}

// DocumentReader reads the probe document back from disk
type DocumentReader interface {
	ReadFile(path string) ([]byte, error)
}

// TokenSource hands out one RunToken per run
type TokenSource interface {
	Next() RunToken
}
