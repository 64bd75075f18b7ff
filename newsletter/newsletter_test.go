package newsletter

import (
	"strings"
	"testing"

	"atelier/models"
)

func TestBuildCSV(t *testing.T) {
	subs := []models.Subscriber{
		{Email: "a@example.com", Status: models.SubscriberActive, CreatedAt: "2025-01-01T00:00:00Z"},
		{Email: "b@example.com", Status: models.SubscriberActive, CreatedAt: "2025-01-02T00:00:00Z"},
	}
	body, err := BuildCSV(subs)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "email,status,subscribed_at" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "a@example.com,subscribed,") {
		t.Fatalf("unexpected first row %q", lines[1])
	}
}

func TestBuildCSVEmpty(t *testing.T) {
	body, err := BuildCSV(nil)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(body)) != "email,status,subscribed_at" {
		t.Fatalf("expected header only, got %q", string(body))
	}
}
