package ffmpeg

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"video-to-audio/domain/media"
	"video-to-audio/infrastructure/command"
)

// DefaultAudioBitrate is the default bitrate for MP3 transcodes
const DefaultAudioBitrate = "192k"

// Converter implements media.Converter using ffmpeg. The output format is
// chosen by ffmpeg from the output extension.
type Converter struct {
	ffmpegPath string
	bitrate    string
	overwrite  bool
	runner     command.Runner
}

// ConverterOption is a functional option for configuring Converter
type ConverterOption func(*Converter)

// WithConverterFFmpegPath sets a custom ffmpeg executable path
func WithConverterFFmpegPath(path string) ConverterOption {
	return func(c *Converter) {
		c.ffmpegPath = path
	}
}

// WithConverterCommandRunner sets a custom command runner (for testing)
func WithConverterCommandRunner(runner command.Runner) ConverterOption {
	return func(c *Converter) {
		c.runner = runner
	}
}

// WithBitrate sets the MP3 bitrate
func WithBitrate(bitrate string) ConverterOption {
	return func(c *Converter) {
		if bitrate != "" {
			c.bitrate = bitrate
		}
	}
}

// WithConverterOverwrite controls whether existing outputs are replaced
func WithConverterOverwrite(overwrite bool) ConverterOption {
	return func(c *Converter) {
		c.overwrite = overwrite
	}
}

// NewConverter creates a new FFmpeg-based converter
func NewConverter(opts ...ConverterOption) *Converter {
	c := &Converter{
		ffmpegPath: "ffmpeg",
		bitrate:    DefaultAudioBitrate,
		overwrite:  true,
		runner:     &command.ExecRunner{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Convert implements media.Converter
func (c *Converter) Convert(ctx context.Context, inputPath, outputPath string) error {
	args := []string{"-i", inputPath}

	if strings.EqualFold(filepath.Ext(outputPath), ".mp3") {
		args = append(args,
			"-vn",                   // No video
			"-acodec", "libmp3lame", // MP3 codec
			"-ab", c.bitrate,        // Audio bitrate
		)
	}
	args = appendOutput(args, c.overwrite, outputPath)

	if err := c.runner.Run(ctx, c.ffmpegPath, args...); err != nil {
		return fmt.Errorf("ffmpeg conversion of %s failed: %w", filepath.Base(inputPath), err)
	}

	return nil
}

// Ensure Converter implements media.Converter
var _ media.Converter = (*Converter)(nil)
