package occasions

import (
	"strings"
	"testing"
	"time"
)

func TestExpiresAfter(t *testing.T) {
	tests := []struct {
		name      string
		createdAt string
		hours     int
		want      string
	}{
		{"one day", "2025-01-05T10:00:00Z", 24, "2025-01-06T10:00:00Z"},
		{"two hours", "2025-01-05T10:00:00Z", 2, "2025-01-05T12:00:00Z"},
		{"zero falls back to default", "2025-01-05T10:00:00Z", 0, "2025-01-06T10:00:00Z"},
		{"negative falls back to default", "2025-01-05T10:00:00Z", -5, "2025-01-06T10:00:00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expiresAfter(tt.createdAt, tt.hours)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expiresAfter(%q, %d) = %q, want %q", tt.createdAt, tt.hours, got, tt.want)
			}
		})
	}

	if _, err := expiresAfter("not-a-timestamp", 24); err == nil {
		t.Error("expected an error for a bad creation timestamp")
	}
}

func TestLinkExpired(t *testing.T) {
	now := time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt string
		want      bool
	}{
		{"still valid", "2025-01-06T10:00:01Z", false},
		{"exactly now", "2025-01-06T10:00:00Z", true},
		{"already past", "2025-01-05T10:00:00Z", true},
		{"garbage counts as expired", "whenever", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := linkExpired(tt.expiresAt, now); got != tt.want {
				t.Errorf("linkExpired(%q) = %v, want %v", tt.expiresAt, got, tt.want)
			}
		})
	}
}

func TestShortCodeShape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code := shortCode()
		if len(code) != 8 {
			t.Fatalf("expected 8 characters, got %q", code)
		}
		for _, c := range code {
			if !strings.ContainsRune(string(codeRunes), c) {
				t.Fatalf("unexpected character %q in %q", c, code)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Error("codes should not all collide")
	}
}

func TestExpiryRoundTrip(t *testing.T) {
	created := time.Now().UTC().Format(time.RFC3339)

	expires, err := expiresAfter(created, 48)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if linkExpired(expires, time.Now().UTC()) {
		t.Error("a 48h link should not be expired at creation")
	}
	if !linkExpired(expires, time.Now().UTC().Add(49*time.Hour)) {
		t.Error("a 48h link should be expired after 49h")
	}
}
