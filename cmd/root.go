package cmd

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"video-to-audio/infrastructure/config"
)

//go:embed usage.txt
var usageText string

var (
	cfgFile  string
	logLevel string
	cfg      *config.Config
	cfgErr   error
)

// DefaultOutput is where operator-facing progress is written
var DefaultOutput OutputWriter = os.Stdout

var rootCmd = &cobra.Command{
	Use:   "video-to-audio [path]",
	Short: "Extract audio, subtitles, and cover art from video files",
	Long: `video-to-audio probes a video file with MediaInfo, extracts every audio
track, subtitle track, and attached cover image with FFmpeg, then converts
the audio to MP3 and SRT subtitles to LRC lyrics.

Example:
  video-to-audio concert.mkv
  video-to-audio --config config/config.toml concert.mkv`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute runs the root command and exits 1 on any error
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styleError.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.DefaultPath+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default from config)")
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = config.DefaultPath
	}

	// A missing file means defaults; a broken one is reported by commands that need it.
	cfg, cfgErr = config.LoadOrDefault(cfgFile)
	if cfgErr == nil && logLevel != "" {
		cfg.Log.Level = logLevel
	}
}

// GetConfig returns the loaded configuration
func GetConfig() (*config.Config, error) {
	if cfgErr != nil {
		return nil, cfgErr
	}
	if cfg == nil {
		return config.Default(), nil
	}
	return cfg, nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return RunUsage(DefaultOutput)
	}

	cfg, err := GetConfig()
	if err != nil {
		return err
	}

	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%q is neither a valid file nor a directory", path)
	}

	deps, err := newRunDependencies(cfg)
	if err != nil {
		return err
	}

	if info.IsDir() {
		return RunDirectoryWithDependencies(path, cfg, deps, DefaultOutput)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%q is neither a valid file nor a directory", path)
	}
	return RunFileWithDependencies(cmd.Context(), path, cfg, deps, DefaultOutput)
}

// RunUsage prints the embedded usage text
func RunUsage(out OutputWriter) error {
	_, err := fmt.Fprint(out, usageText)
	return err
}
