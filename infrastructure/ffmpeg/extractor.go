package ffmpeg

import (
	"context"
	"fmt"

	"video-to-audio/domain/media"
	"video-to-audio/infrastructure/command"
)

// Extractor implements media.StreamExtractor using ffmpeg
type Extractor struct {
	ffmpegPath string
	overwrite  bool
	runner     command.Runner
}

// ExtractorOption is a functional option for configuring Extractor
type ExtractorOption func(*Extractor)

// WithExtractorFFmpegPath sets a custom ffmpeg executable path
func WithExtractorFFmpegPath(path string) ExtractorOption {
	return func(e *Extractor) {
		e.ffmpegPath = path
	}
}

// WithExtractorCommandRunner sets a custom command runner (for testing)
func WithExtractorCommandRunner(runner command.Runner) ExtractorOption {
	return func(e *Extractor) {
		e.runner = runner
	}
}

// WithExtractorOverwrite controls whether existing outputs are replaced
func WithExtractorOverwrite(overwrite bool) ExtractorOption {
	return func(e *Extractor) {
		e.overwrite = overwrite
	}
}

// NewExtractor creates a new FFmpeg-based stream extractor
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		ffmpegPath: "ffmpeg",
		overwrite:  true,
		runner:     &command.ExecRunner{},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// ExtractStream implements media.StreamExtractor
func (e *Extractor) ExtractStream(ctx context.Context, inputPath string, kind media.Kind, index int, outputPath string) error {
	streamType := kind.StreamType()
	if streamType == "" {
		return fmt.Errorf("cannot extract %s stream", kind)
	}

	args := []string{
		"-i", inputPath,
		"-map", fmt.Sprintf("0:%s:%d", streamType, index),
	}
	args = appendOutput(args, e.overwrite, outputPath)

	if err := e.runner.Run(ctx, e.ffmpegPath, args...); err != nil {
		return fmt.Errorf("ffmpeg %s extraction failed: %w", kind, err)
	}

	return nil
}

// ExtractCover implements media.StreamExtractor. The cover is stored as an
// attached picture: take video streams but drop the main one (0:V).
func (e *Extractor) ExtractCover(ctx context.Context, inputPath, outputPath string) error {
	args := []string{
		"-i", inputPath,
		"-map", "0:v",
		"-map", "-0:V",
		"-c:v", "copy",
	}
	args = appendOutput(args, e.overwrite, outputPath)

	if err := e.runner.Run(ctx, e.ffmpegPath, args...); err != nil {
		return fmt.Errorf("ffmpeg cover extraction failed: %w", err)
	}

	return nil
}

// VerifyInstalled checks that ffmpeg is available
func (e *Extractor) VerifyInstalled(ctx context.Context) error {
	_, err := e.runner.Output(ctx, e.ffmpegPath, "-version")
	if err != nil {
		return fmt.Errorf("ffmpeg not found or not executable: %w", err)
	}
	return nil
}

func appendOutput(args []string, overwrite bool, outputPath string) []string {
	if overwrite {
		args = append(args, "-y") // Overwrite output file if it exists
	}
	return append(args, outputPath)
}

// Ensure Extractor implements media.StreamExtractor
var _ media.StreamExtractor = (*Extractor)(nil)
