package mediainfo

import (
	"context"
	"fmt"
	"os"

	"video-to-audio/domain/media"
	"video-to-audio/infrastructure/command"
)

// Prober implements media.Prober using the mediainfo CLI
type Prober struct {
	mediainfoPath string
	runner        command.Runner
}

// ProberOption is a functional option for configuring Prober
type ProberOption func(*Prober)

// WithMediaInfoPath sets a custom mediainfo executable path
func WithMediaInfoPath(path string) ProberOption {
	return func(p *Prober) {
		p.mediainfoPath = path
	}
}

// WithCommandRunner sets a custom command runner (for testing)
func WithCommandRunner(runner command.Runner) ProberOption {
	return func(p *Prober) {
		p.runner = runner
	}
}

// NewProber creates a new mediainfo-based prober
func NewProber(opts ...ProberOption) *Prober {
	p := &Prober{
		mediainfoPath: "mediainfo",
		runner:        &command.ExecRunner{},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Probe implements media.Prober. The JSON report is written to outputPath
// and left there after the run.
func (p *Prober) Probe(ctx context.Context, inputPath, outputPath string) error {
	out, err := p.runner.Output(ctx, p.mediainfoPath, "--Output=JSON", inputPath)
	if err != nil {
		return fmt.Errorf("%w: mediainfo %s: %v", media.ErrProbeFailed, inputPath, err)
	}

	if err := os.WriteFile(outputPath, out, 0644); err != nil {
		return fmt.Errorf("%w: failed to write metadata file: %v", media.ErrProbeFailed, err)
	}

	return nil
}

// VerifyInstalled checks that mediainfo is available
func (p *Prober) VerifyInstalled(ctx context.Context) error {
	_, err := p.runner.Output(ctx, p.mediainfoPath, "--Version")
	if err != nil {
		return fmt.Errorf("mediainfo not found or not executable: %w", err)
	}
	return nil
}

// Ensure Prober implements media.Prober
var _ media.Prober = (*Prober)(nil)
