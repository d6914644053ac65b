package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMillisSource(t *testing.T) {
	s := MillisSource{Now: func() time.Time { return time.UnixMilli(1700000000123) }}
	if got := s.Next(); got != "1700000000123" {
		t.Errorf("Next() = %q, want %q", got, "1700000000123")
	}
}

func TestUUIDSource(t *testing.T) {
	got := UUIDSource{}.Next()
	if _, err := uuid.Parse(string(got)); err != nil {
		t.Errorf("Next() = %q is not a UUID: %v", got, err)
	}
	if (UUIDSource{}).Next() == got {
		t.Error("Next() returned the same UUID twice")
	}
}

func TestFixed(t *testing.T) {
	if got := Fixed("1000").Next(); got != "1000" {
		t.Errorf("Next() = %q, want %q", got, "1000")
	}
}

func TestNewSource(t *testing.T) {
	tests := []struct {
		scheme  string
		wantErr bool
	}{
		{"", false},
		{"millis", false},
		{"UUID", false},
		{"fixed:take1", false},
		{"counter", true},
		{"fixed:", true},
		{"fixed:a/b", true},
		{"fixed:..", true},
	}

	for _, tt := range tests {
		t.Run(tt.scheme, func(t *testing.T) {
			s, err := NewSource(tt.scheme)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NewSource(%q) expected error, got nil", tt.scheme)
				}
				return
			}
			if err != nil || s == nil {
				t.Errorf("NewSource(%q) = %v, %v", tt.scheme, s, err)
			}
		})
	}
}

func TestNewSource_Fixed(t *testing.T) {
	s, err := NewSource(" FIXED:Take1 ")
	if err != nil {
		t.Fatalf("NewSource() unexpected error: %v", err)
	}
	if got := s.Next(); got != "Take1" {
		t.Errorf("Next() = %q, want %q", got, "Take1")
	}
	if got := s.Next(); got != "Take1" {
		t.Errorf("second Next() = %q, want %q", got, "Take1")
	}
}

func TestCanonical(t *testing.T) {
	tests := map[string]string{
		" UUID ":      "uuid",
		"Millis":      "millis",
		"Fixed:Take1": "fixed:Take1",
	}
	for in, want := range tests {
		if got := Canonical(in); got != want {
			t.Errorf("Canonical(%q) = %q, want %q", in, got, want)
		}
	}
}
