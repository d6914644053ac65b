package token

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"video-to-audio/domain/media"
)

// Token schemes accepted in config
const (
	SchemeMillis = "millis"
	SchemeUUID   = "uuid"

	// FixedPrefix selects Fixed; the rest of the value is the token
	FixedPrefix = "fixed:"
)

// MillisSource issues the current Unix time in milliseconds
type MillisSource struct {
	Now func() time.Time
}

// Next implements media.TokenSource
func (s MillisSource) Next() media.RunToken {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return media.RunToken(strconv.FormatInt(now().UnixMilli(), 10))
}

// UUIDSource issues a random UUID per run
type UUIDSource struct{}

// Next implements media.TokenSource
func (UUIDSource) Next() media.RunToken {
	return media.RunToken(uuid.NewString())
}

// Fixed always returns the same token; used for reproducible runs
type Fixed media.RunToken

// Next implements media.TokenSource
func (f Fixed) Next() media.RunToken {
	return media.RunToken(f)
}

// NewSource returns the source for a config scheme; empty means millis
func NewSource(scheme string) (media.TokenSource, error) {
	if v, ok := fixedValue(scheme); ok {
		if v == "" || strings.ContainsAny(v, `/\`) || v == "." || v == ".." {
			return nil, fmt.Errorf("run token: invalid fixed token %q", v)
		}
		return Fixed(v), nil
	}

	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case "", SchemeMillis:
		return MillisSource{}, nil
	case SchemeUUID:
		return UUIDSource{}, nil
	default:
		return nil, fmt.Errorf("run token: unsupported scheme %q", scheme)
	}
}

// Canonical lower-cases the scheme name. A fixed token keeps its case.
func Canonical(scheme string) string {
	if v, ok := fixedValue(scheme); ok {
		return FixedPrefix + v
	}
	return strings.ToLower(strings.TrimSpace(scheme))
}

func fixedValue(scheme string) (string, bool) {
	s := strings.TrimSpace(scheme)
	if len(s) < len(FixedPrefix) || !strings.EqualFold(s[:len(FixedPrefix)], FixedPrefix) {
		return "", false
	}
	return s[len(FixedPrefix):], true
}
