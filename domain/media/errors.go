package media

import "errors"

var (
	// ErrMalformedDocument is returned when probe output is not valid JSON
	ErrMalformedDocument = errors.New("metadata document is not valid JSON")

	// ErrUnexpectedShape is returned when media.track exists but is not a list
	ErrUnexpectedShape = errors.New("metadata document media.track is not a list")

	// ErrMissingDocument is returned when the probe left no document to read
	ErrMissingDocument = errors.New("metadata document not found")

	// ErrProbeFailed is returned when the metadata probe cannot produce a document
	ErrProbeFailed = errors.New("metadata probe failed")

	// ErrUnsafeOutputName is returned when a planned filename would land outside the output directory
	ErrUnsafeOutputName = errors.New("output name escapes the output directory")

	// ErrUnsupportedFile is returned when the input extension is not an allowed video type
	ErrUnsupportedFile = errors.New("file is not a supported video file")

	// ErrMissingTools is returned when required external commands are not on PATH
	ErrMissingTools = errors.New("required external commands are missing")

	// ErrRunLocked is returned when another run holds the output directory lock
	ErrRunLocked = errors.New("another run is already in progress")
)
