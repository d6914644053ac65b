package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"video-to-audio/infrastructure/token"
)

// Errors for config management
var (
	ErrUnknownKey   = errors.New("unknown config key")
	ErrInvalidValue = errors.New("invalid config value")
)

// Setting is one key/value pair as shown by `config list`
type Setting struct {
	Key   string
	Value string
}

type field struct {
	get func(*Config) string
	set func(*Config, string) error
}

func stringField(ptr func(*Config) *string) field {
	return field{
		get: func(c *Config) string { return *ptr(c) },
		set: func(c *Config, v string) error {
			*ptr(c) = v
			return nil
		},
	}
}

func listField(ptr func(*Config) *[]string) field {
	return field{
		get: func(c *Config) string { return strings.Join(*ptr(c), ",") },
		set: func(c *Config, v string) error {
			var items []string
			for _, item := range strings.Split(v, ",") {
				if item = strings.TrimSpace(item); item != "" {
					items = append(items, item)
				}
			}
			*ptr(c) = items
			return nil
		},
	}
}

// settingKeys lists every settable key in display order
var settingKeys = []string{
	"tools.mediainfo",
	"tools.ffmpeg",
	"tools.required",
	"output.directory",
	"output.overwrite",
	"output.run_token",
	"audio.target_format",
	"audio.bitrate",
	"subtitles.lyrics_format",
	"tagging.enabled",
	"files.video_extensions",
	"log.level",
	"log.format",
}

var settings = map[string]field{
	"tools.mediainfo": stringField(func(c *Config) *string { return &c.Tools.MediaInfo }),
	"tools.ffmpeg":    stringField(func(c *Config) *string { return &c.Tools.FFmpeg }),
	"tools.required":  listField(func(c *Config) *[]string { return &c.Tools.Required }),
	"output.directory": stringField(func(c *Config) *string { return &c.Output.Directory }),
	"output.overwrite": {
		get: func(c *Config) string { return strconv.FormatBool(c.ShouldOverwrite()) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%w: output.overwrite must be true or false", ErrInvalidValue)
			}
			c.Output.Overwrite = &b
			return nil
		},
	},
	"output.run_token": {
		get: func(c *Config) string { return c.Output.RunToken },
		set: func(c *Config, v string) error {
			if _, err := token.NewSource(v); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidValue, err)
			}
			c.Output.RunToken = token.Canonical(v)
			return nil
		},
	},
	"audio.target_format":     stringField(func(c *Config) *string { return &c.Audio.TargetFormat }),
	"audio.bitrate":           stringField(func(c *Config) *string { return &c.Audio.Bitrate }),
	"subtitles.lyrics_format": stringField(func(c *Config) *string { return &c.Subtitles.LyricsFormat }),
	"tagging.enabled": {
		get: func(c *Config) string { return strconv.FormatBool(c.Tagging.Enabled) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%w: tagging.enabled must be true or false", ErrInvalidValue)
			}
			c.Tagging.Enabled = b
			return nil
		},
	},
	"files.video_extensions": listField(func(c *Config) *[]string { return &c.Files.VideoExtensions }),
	"log.level":              stringField(func(c *Config) *string { return &c.Log.Level }),
	"log.format":             stringField(func(c *Config) *string { return &c.Log.Format }),
}

// ConfigManager reads and updates individual config keys
type ConfigManager struct {
	config     *Config
	configPath string
}

// NewConfigManager creates a new config manager
func NewConfigManager(cfg *Config, configPath string) *ConfigManager {
	return &ConfigManager{
		config:     cfg,
		configPath: configPath,
	}
}

// Keys returns every settable key
func Keys() []string {
	return append([]string(nil), settingKeys...)
}

// Get returns the current value of key
func (m *ConfigManager) Get(key string) (string, error) {
	f, err := lookup(key)
	if err != nil {
		return "", err
	}
	return f.get(m.config), nil
}

// Set updates key and saves the file
func (m *ConfigManager) Set(key, value string) error {
	f, err := lookup(key)
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%w: %s requires a value", ErrInvalidValue, key)
	}
	if err := f.set(m.config, value); err != nil {
		return err
	}
	m.config.applyDefaults()
	return Save(m.config, m.configPath)
}

// List returns all settings in display order
func (m *ConfigManager) List() []Setting {
	result := make([]Setting, 0, len(settingKeys))
	for _, key := range settingKeys {
		result = append(result, Setting{Key: key, Value: settings[key].get(m.config)})
	}
	return result
}

func lookup(key string) (field, error) {
	f, ok := settings[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return field{}, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return f, nil
}
