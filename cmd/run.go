package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"video-to-audio/application/extract"
	"video-to-audio/domain/media"
	"video-to-audio/infrastructure/command"
	"video-to-audio/infrastructure/config"
	"video-to-audio/infrastructure/deps"
	"video-to-audio/infrastructure/ffmpeg"
	"video-to-audio/infrastructure/filesystem"
	"video-to-audio/infrastructure/id3"
	"video-to-audio/infrastructure/lock"
	"video-to-audio/infrastructure/logging"
	"video-to-audio/infrastructure/mediainfo"
	"video-to-audio/infrastructure/token"
)

// RunFiles is the file access a run needs
type RunFiles interface {
	extract.Files
	FileSizer
}

// RunLocker guards an output directory for the length of a run
type RunLocker interface {
	Acquire() error
	Release() error
}

// RunDependencies holds everything a file or directory run talks to
type RunDependencies struct {
	Prober     media.Prober
	Extractor  media.StreamExtractor
	Converter  media.Converter
	Tagger     media.Tagger // nil disables tagging
	Files      RunFiles
	Tokens     media.TokenSource
	CheckTools func([]deps.Requirement) []deps.Status
	NewLock    func(dir string) RunLocker
	Logger     *log.Logger
}

func newRunDependencies(cfg *config.Config) (*RunDependencies, error) {
	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return nil, err
	}
	tokens, err := token.NewSource(cfg.Output.RunToken)
	if err != nil {
		return nil, err
	}

	runner := &command.ExecRunner{}
	d := &RunDependencies{
		Prober: mediainfo.NewProber(
			mediainfo.WithMediaInfoPath(cfg.Tools.MediaInfo),
			mediainfo.WithCommandRunner(runner),
		),
		Extractor: ffmpeg.NewExtractor(
			ffmpeg.WithExtractorFFmpegPath(cfg.Tools.FFmpeg),
			ffmpeg.WithExtractorCommandRunner(runner),
			ffmpeg.WithExtractorOverwrite(cfg.ShouldOverwrite()),
		),
		Converter: ffmpeg.NewConverter(
			ffmpeg.WithConverterFFmpegPath(cfg.Tools.FFmpeg),
			ffmpeg.WithConverterCommandRunner(runner),
			ffmpeg.WithBitrate(cfg.Audio.Bitrate),
			ffmpeg.WithConverterOverwrite(cfg.ShouldOverwrite()),
		),
		Files:      filesystem.NewChecker(),
		Tokens:     tokens,
		CheckTools: deps.CheckBinaries,
		NewLock:    func(dir string) RunLocker { return lock.New(dir) },
		Logger:     logger,
	}
	if cfg.Tagging.Enabled {
		d.Tagger = id3.NewTagger()
	}
	return d, nil
}

func requirements(cfg *config.Config) []deps.Requirement {
	reqs := deps.DefaultRequirements(cfg.Tools.MediaInfo, cfg.Tools.FFmpeg)
	return append(reqs, deps.FromCommands(cfg.Tools.Required)...)
}

// checkEnvironment fails when a required command is not on PATH
func checkEnvironment(cfg *config.Config, d *RunDependencies, out OutputWriter) error {
	statuses := d.CheckTools(requirements(cfg))
	missing := deps.Missing(statuses)
	if len(missing) == 0 {
		fmt.Fprintln(out, "All shell commands are available.")
		return nil
	}

	fmt.Fprintln(out, styleError.Render("Missing shell commands:"))
	names := make([]string, 0, len(missing))
	for _, m := range missing {
		fmt.Fprintf(out, "  %s (%s)\n", m.Command, m.Detail)
		names = append(names, m.Command)
	}
	return fmt.Errorf("%w: %v", media.ErrMissingTools, names)
}

// RunFileWithDependencies runs the full pipeline for one video file
func RunFileWithDependencies(ctx context.Context, sourcePath string, cfg *config.Config, d *RunDependencies, out OutputWriter) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := d.Logger
	if logger == nil {
		logger = log.Default()
	}

	if err := checkEnvironment(cfg, d, out); err != nil {
		return err
	}

	// Verify ffmpeg responds if the extractor supports it
	if verifiable, ok := d.Extractor.(interface{ VerifyInstalled(context.Context) error }); ok {
		verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := verifiable.VerifyInstalled(verifyCtx); err != nil {
			return fmt.Errorf("ffmpeg verification failed: %w", err)
		}
	}

	if !filesystem.IsVideoFile(sourcePath, cfg.Files.VideoExtensions) {
		return fmt.Errorf("%w: %s", media.ErrUnsupportedFile, filepath.Base(sourcePath))
	}

	outputDir := cfg.Output.Directory
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	runLock := d.NewLock(outputDir)
	if err := runLock.Acquire(); err != nil {
		return err
	}
	defer func() {
		if err := runLock.Release(); err != nil {
			logger.Warn("failed to release run lock", "err", err)
		}
	}()

	fmt.Fprintf(out, "File '%s' is being processed.\n\n", sourcePath)

	options := []extract.Option{
		extract.WithLogger(logger),
		extract.WithObserver(&consoleObserver{out: out}),
	}
	if d.Tagger != nil {
		options = append(options, extract.WithTagger(d.Tagger))
	}
	service := extract.NewService(d.Prober, d.Extractor, d.Converter, d.Files, d.Tokens,
		extract.Options{
			OutputDir:    outputDir,
			AudioFormat:  cfg.Audio.TargetFormat,
			LyricsFormat: cfg.Subtitles.LyricsFormat,
		},
		options...,
	)

	result, err := service.Run(ctx, extract.Input{SourcePath: sourcePath})
	if err != nil {
		if errors.Is(err, media.ErrMalformedDocument) || errors.Is(err, media.ErrUnexpectedShape) {
			fmt.Fprintln(out, styleError.Render("Error decoding the metadata document."))
		}
		return err
	}

	printSummary(out, result, d.Files)
	return nil
}

// RunDirectoryWithDependencies lists the video files a directory run would
// process, then checks the environment. Nothing is extracted.
func RunDirectoryWithDependencies(dir string, cfg *config.Config, d *RunDependencies, out OutputWriter) error {
	fmt.Fprintf(out, "Directory '%s' is being processed.\n", dir)

	files, err := filesystem.ListVideoFiles(dir, cfg.Files.VideoExtensions)
	if err != nil {
		return fmt.Errorf("failed to list directory: %w", err)
	}
	if len(files) == 0 {
		fmt.Fprintln(out, "No video files found.")
	}
	for _, f := range files {
		fmt.Fprintf(out, "  %s\n", filepath.Base(f))
	}
	fmt.Fprintln(out)

	return checkEnvironment(cfg, d, out)
}
