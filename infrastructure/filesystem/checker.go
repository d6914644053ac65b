package filesystem

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"video-to-audio/domain/media"
)

// DefaultVideoExtensions are the container extensions accepted as input
var DefaultVideoExtensions = []string{".mp4", ".mkv", ".avi", ".mov", ".flv", ".wmv", ".webm", ".m4v"}

// Checker implements media.FileChecker and media.DocumentReader using the os package
type Checker struct{}

// NewChecker creates a new filesystem checker
func NewChecker() *Checker {
	return &Checker{}
}

// Exists returns true if the file exists
func (c *Checker) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile returns the file contents
func (c *Checker) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Size returns the file size in bytes, or 0 if it cannot be read
func (c *Checker) Size(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// IsVideoFile reports whether path has one of the allowed extensions.
// Matching is case-insensitive; an empty list falls back to the defaults.
func IsVideoFile(path string, allowed []string) bool {
	if len(allowed) == 0 {
		allowed = DefaultVideoExtensions
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	for _, a := range allowed {
		a = strings.ToLower(strings.TrimSpace(a))
		if !strings.HasPrefix(a, ".") {
			a = "." + a
		}
		if ext == a {
			return true
		}
	}
	return false
}

// ListVideoFiles returns the video files directly inside dir, sorted by name
func ListVideoFiles(dir string, allowed []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !IsVideoFile(entry.Name(), allowed) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Ensure Checker implements the domain ports
var (
	_ media.FileChecker    = (*Checker)(nil)
	_ media.DocumentReader = (*Checker)(nil)
)
