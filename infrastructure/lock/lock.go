package lock

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"

	"video-to-audio/domain/media"
)

// Filename is the lock file created in the output directory
const Filename = ".video-to-audio.lock"

// RunLock keeps two runs from writing into one output directory at once
type RunLock struct {
	path string
	lock *flock.Flock
}

// New creates a lock for dir; nothing is acquired yet
func New(dir string) *RunLock {
	path := filepath.Join(dir, Filename)
	return &RunLock{path: path, lock: flock.New(path)}
}

// Acquire takes the lock without blocking
func (l *RunLock) Acquire() error {
	ok, err := l.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock %s: %w", l.path, err)
	}
	if !ok {
		return fmt.Errorf("%w: lock held on %s", media.ErrRunLocked, l.path)
	}
	return nil
}

// Release drops the lock
func (l *RunLock) Release() error {
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock %s: %w", l.path, err)
	}
	return nil
}
