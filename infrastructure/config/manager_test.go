package config

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestConfigManager_SetAndGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	m := NewConfigManager(Default(), path)

	tests := []struct {
		key     string
		value   string
		want    string
		wantErr error
	}{
		{key: "audio.bitrate", value: "320k", want: "320k"},
		{key: "Output.Run_Token", value: "UUID", want: "uuid"},
		{key: "output.run_token", value: "Fixed:Take1", want: "fixed:Take1"},
		{key: "output.overwrite", value: "false", want: "false"},
		{key: "tagging.enabled", value: "true", want: "true"},
		{key: "tools.required", value: "mkvextract, magick,", want: "mkvextract,magick"},
		{key: "audio.target_format", value: ".FLAC", want: "flac"},
		{key: "output.run_token", value: "counter", wantErr: ErrInvalidValue},
		{key: "output.run_token", value: "fixed:../up", wantErr: ErrInvalidValue},
		{key: "tagging.enabled", value: "sometimes", wantErr: ErrInvalidValue},
		{key: "audio.bitrate", value: "  ", wantErr: ErrInvalidValue},
		{key: "email.from", value: "x", wantErr: ErrUnknownKey},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			err := m.Set(tt.key, tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Set() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Set() unexpected error: %v", err)
			}
			got, err := m.Get(tt.key)
			if err != nil {
				t.Fatalf("Get() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}

	saved, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if saved.Audio.Bitrate != "320k" || saved.ShouldOverwrite() || !saved.Tagging.Enabled {
		t.Errorf("saved config = %+v", saved)
	}
}

func TestConfigManager_List(t *testing.T) {
	m := NewConfigManager(Default(), filepath.Join(t.TempDir(), "config.yaml"))

	list := m.List()
	if len(list) != len(Keys()) {
		t.Fatalf("List() returned %d settings, want %d", len(list), len(Keys()))
	}
	if list[0].Key != "tools.mediainfo" || list[0].Value != "mediainfo" {
		t.Errorf("List()[0] = %+v", list[0])
	}
	for _, s := range list {
		if s.Key == "output.overwrite" && s.Value != "true" {
			t.Errorf("output.overwrite = %q, want true", s.Value)
		}
	}
}

func TestConfigManager_GetUnknown(t *testing.T) {
	m := NewConfigManager(Default(), "")
	if _, err := m.Get("google.token_file"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Get() error = %v, want %v", err, ErrUnknownKey)
	}
}
