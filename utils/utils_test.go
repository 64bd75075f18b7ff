package utils

import (
	"reflect"
	"testing"
)

func TestCreateSlug(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Already--Slugged  ", "already-slugged"},
		{"Café & Restaurant!", "caf-restaurant"},
		{"2024: Year in Review", "2024-year-in-review"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CreateSlug(tt.title); got != tt.want {
			t.Errorf("CreateSlug(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{
		"a@b.co",
		"first.last@example.com",
		"user+tag@sub.domain.org",
	}
	invalid := []string{
		"",
		"plainaddress",
		"@missinguser.com",
		"user@",
		"user@nodot",
		"two words@example.com",
	}
	for _, e := range valid {
		if !ValidEmail(e) {
			t.Errorf("ValidEmail(%q) = false, want true", e)
		}
	}
	for _, e := range invalid {
		if ValidEmail(e) {
			t.Errorf("ValidEmail(%q) = true, want false", e)
		}
	}
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"go, web, api", []string{"go", "web", "api"}},
		{"Go,GO,go", []string{"go"}},
		{" , ,design", []string{"design"}},
		{"", []string{}},
	}
	for _, tt := range tests {
		if got := SplitTags(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitTags(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"photo.jpg", "photo.jpg"},
		{"../../etc/passwd", "passwd"},
		{"my résumé (final).pdf", "my_r_sum___final_.pdf"},
		{"report-v2.1.pdf", "report-v2.1.pdf"},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.name); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestGenerateRandomString(t *testing.T) {
	s := GenerateRandomString(16)
	if len(s) != 16 {
		t.Fatalf("expected length 16, got %d", len(s))
	}
	if GenerateRandomString(16) == s && GenerateRandomString(16) == s {
		t.Error("consecutive random strings should not all match")
	}
}

func TestContains(t *testing.T) {
	slice := []string{"alpha", "beta"}
	if !Contains(slice, "beta") {
		t.Error("expected Contains to find beta")
	}
	if Contains(slice, "gamma") {
		t.Error("did not expect Contains to find gamma")
	}
}
