package lock

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"video-to-audio/domain/media"
)

func TestRunLock(t *testing.T) {
	dir := t.TempDir()

	first := New(dir)
	if err := first.Acquire(); err != nil {
		t.Fatalf("Acquire() unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, Filename)); err != nil {
		t.Errorf("lock file not created: %v", err)
	}

	second := New(dir)
	if err := second.Acquire(); !errors.Is(err, media.ErrRunLocked) {
		t.Fatalf("second Acquire() error = %v, want %v", err, media.ErrRunLocked)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release() unexpected error: %v", err)
	}
	if err := second.Acquire(); err != nil {
		t.Fatalf("Acquire() after release unexpected error: %v", err)
	}
	if err := second.Release(); err != nil {
		t.Fatalf("Release() unexpected error: %v", err)
	}
}
