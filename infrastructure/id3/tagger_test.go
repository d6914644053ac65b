package id3

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/dhowden/tag"

	"video-to-audio/domain/media"
)

// fakeMP3 writes a file with a few MPEG frame header bytes and no tag
func fakeMP3(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "1000.mp3")
	data := bytes.Repeat([]byte{0xFF, 0xFB, 0x90, 0x64}, 8)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func readTags(t *testing.T, path string) tag.Metadata {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open tagged file: %v", err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		t.Fatalf("tag.ReadFrom() unexpected error: %v", err)
	}
	return m
}

func TestTagger_Tag(t *testing.T) {
	dir := t.TempDir()
	path := fakeMP3(t, dir)

	cover := filepath.Join(dir, "1000_cover.jpg")
	coverData := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
	if err := os.WriteFile(cover, coverData, 0644); err != nil {
		t.Fatalf("write cover: %v", err)
	}

	err := NewTagger().Tag(path, media.Tags{
		Title:     "Live at the Hall",
		Artist:    "The Band",
		Date:      "2024",
		SourceURL: "https://example.com/watch?v=abc",
		CoverPath: cover,
	})
	if err != nil {
		t.Fatalf("Tag() unexpected error: %v", err)
	}

	m := readTags(t, path)
	if m.Title() != "Live at the Hall" {
		t.Errorf("Title() = %q, want %q", m.Title(), "Live at the Hall")
	}
	if m.Artist() != "The Band" {
		t.Errorf("Artist() = %q, want %q", m.Artist(), "The Band")
	}
	pic := m.Picture()
	if pic == nil {
		t.Fatal("Picture() = nil, want embedded cover")
	}
	if !bytes.Equal(pic.Data, coverData) {
		t.Errorf("Picture().Data = %v, want %v", pic.Data, coverData)
	}
}

func TestTagger_SkipsUnknownFields(t *testing.T) {
	path := fakeMP3(t, t.TempDir())

	err := NewTagger().Tag(path, media.Tags{
		Title:     media.Unknown,
		Artist:    "Solo",
		Date:      media.Unknown,
		SourceURL: media.Unknown,
	})
	if err != nil {
		t.Fatalf("Tag() unexpected error: %v", err)
	}

	m := readTags(t, path)
	if m.Title() != "" {
		t.Errorf("Title() = %q, want empty", m.Title())
	}
	if m.Artist() != "Solo" {
		t.Errorf("Artist() = %q, want %q", m.Artist(), "Solo")
	}
}

func TestTagger_MissingCover(t *testing.T) {
	dir := t.TempDir()
	path := fakeMP3(t, dir)

	err := NewTagger().Tag(path, media.Tags{Artist: "Solo", CoverPath: filepath.Join(dir, "missing.jpg")})
	if err == nil {
		t.Fatal("Tag() expected error for missing cover, got nil")
	}
}

func TestMimeType(t *testing.T) {
	if got := mimeType("a.PNG"); got != "image/png" {
		t.Errorf("mimeType(a.PNG) = %q", got)
	}
	if got := mimeType("a_cover.jpg"); got != "image/jpeg" {
		t.Errorf("mimeType(a_cover.jpg) = %q", got)
	}
}
