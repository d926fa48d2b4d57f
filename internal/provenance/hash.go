// Package provenance computes source-file identity for certification
// reports: a SHA-256 digest plus best-effort filesystem metadata.
package provenance

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/opengovlab/docucert/internal/core/domain"
)

func FromReader(r io.Reader) (*domain.Provenance, error) {
	h := sha256.New()
	n, err := io.Copy(h, r)
	if err != nil {
		return nil, fmt.Errorf("hash content: %w", err)
	}
	return &domain.Provenance{
		SHA256:    hex.EncodeToString(h.Sum(nil)),
		SizeBytes: n,
	}, nil
}

// ParseTimestamp converts a metadata date string to a time pointer. Malformed
// dates are data, not errors: they convert to nil and never propagate.
func ParseTimestamp(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
		// PDF-style date prefix, e.g. D:20240131120000.
		"D:20060102150405",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
