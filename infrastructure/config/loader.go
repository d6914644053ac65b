package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"video-to-audio/domain/media"
	"video-to-audio/infrastructure/filesystem"
)

// DefaultPath is where the CLI looks for configuration when --config is not given
const DefaultPath = "config/config.yaml"

// Config represents the complete application configuration
type Config struct {
	Tools     ToolsConfig     `yaml:"tools" toml:"tools"`
	Output    OutputConfig    `yaml:"output" toml:"output"`
	Audio     AudioConfig     `yaml:"audio" toml:"audio"`
	Subtitles SubtitlesConfig `yaml:"subtitles" toml:"subtitles"`
	Tagging   TaggingConfig   `yaml:"tagging" toml:"tagging"`
	Files     FilesConfig     `yaml:"files" toml:"files"`
	Log       LogConfig       `yaml:"log" toml:"log"`
}

// ToolsConfig contains external command locations
type ToolsConfig struct {
	MediaInfo string   `yaml:"mediainfo" toml:"mediainfo"`
	FFmpeg    string   `yaml:"ffmpeg" toml:"ffmpeg"`
	Required  []string `yaml:"required,omitempty" toml:"required,omitempty"` // extra commands checked before a run
}

// OutputConfig controls where and how outputs are written
type OutputConfig struct {
	Directory string `yaml:"directory" toml:"directory"`
	Overwrite *bool  `yaml:"overwrite,omitempty" toml:"overwrite,omitempty"`
	RunToken  string `yaml:"run_token" toml:"run_token"` // millis, uuid, or fixed:<token>
}

// AudioConfig contains audio conversion settings
type AudioConfig struct {
	TargetFormat string `yaml:"target_format" toml:"target_format"`
	Bitrate      string `yaml:"bitrate" toml:"bitrate"`
}

// SubtitlesConfig contains subtitle conversion settings
type SubtitlesConfig struct {
	LyricsFormat string `yaml:"lyrics_format" toml:"lyrics_format"`
}

// TaggingConfig controls ID3 tagging of converted MP3 files
type TaggingConfig struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`
}

// FilesConfig contains input file rules
type FilesConfig struct {
	VideoExtensions []string `yaml:"video_extensions,omitempty" toml:"video_extensions,omitempty"`
}

// LogConfig contains logger settings
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format,omitempty" toml:"format,omitempty"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// ShouldOverwrite reports whether ffmpeg may replace existing outputs
func (c *Config) ShouldOverwrite() bool {
	return c.Output.Overwrite == nil || *c.Output.Overwrite
}

func (c *Config) applyDefaults() {
	if c.Tools.MediaInfo == "" {
		c.Tools.MediaInfo = "mediainfo"
	}
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = "ffmpeg"
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "."
	}
	if c.Output.RunToken == "" {
		c.Output.RunToken = "millis"
	}
	if c.Audio.TargetFormat == "" {
		c.Audio.TargetFormat = media.DefaultAudioFormat
	}
	c.Audio.TargetFormat = strings.ToLower(strings.TrimPrefix(c.Audio.TargetFormat, "."))
	if c.Audio.Bitrate == "" {
		c.Audio.Bitrate = "192k"
	}
	if c.Subtitles.LyricsFormat == "" {
		c.Subtitles.LyricsFormat = media.DefaultLyricsFormat
	}
	c.Subtitles.LyricsFormat = strings.ToLower(strings.TrimPrefix(c.Subtitles.LyricsFormat, "."))
	if len(c.Files.VideoExtensions) == 0 {
		c.Files.VideoExtensions = append([]string(nil), filesystem.DefaultVideoExtensions...)
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Load reads and parses the configuration from the specified YAML or TOML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if isTOML(path) {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadOrDefault loads path, falling back to defaults when the file does not exist
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes the configuration to the specified YAML or TOML file
func Save(cfg *Config, path string) error {
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(cfg)
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
