package provenance

import (
	"strings"
	"testing"
)

func TestFromReaderHashesContent(t *testing.T) {
	prov, err := FromReader(strings.NewReader("hello world"))
	if err != nil {
		t.Fatalf("FromReader: %v", err)
	}
	const want = "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if prov.SHA256 != want {
		t.Fatalf("sha256 = %s, want %s", prov.SHA256, want)
	}
	if prov.SizeBytes != 11 {
		t.Fatalf("size = %d, want 11", prov.SizeBytes)
	}
}

func TestParseTimestampMalformedIsNil(t *testing.T) {
	for _, raw := range []string{"", "not-a-date", "D:garbage", "99/99/9999"} {
		if got := ParseTimestamp(raw); got != nil {
			t.Fatalf("expected nil for %q, got %v", raw, got)
		}
	}
}

func TestParseTimestampKnownLayouts(t *testing.T) {
	for _, raw := range []string{
		"2024-01-31T12:00:00Z",
		"2024-01-31 12:00:00",
		"2024-01-31",
		"D:20240131120000",
	} {
		if got := ParseTimestamp(raw); got == nil {
			t.Fatalf("expected parse for %q", raw)
		}
	}
}
