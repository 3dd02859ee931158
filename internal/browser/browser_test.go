package browser

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"localhost:8080", "http://localhost:8080"},
		{"example.com/path", "http://example.com/path"},
		{"http://example.com", "http://example.com"},
		{"https://example.com", "https://example.com"},
		{"file:///tmp/page.html", "file:///tmp/page.html"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://localhost:8080/health", "http_localhost_8080_health"},
		{"https://example.com", "https_example.com"},
		{
			"http://very.long.hostname.example.com/deeply/nested/path",
			"http_very.long.hostname.exampl",
		},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if len([]rune(Slug(tt.in))) > 30 {
			t.Errorf("Slug(%q) exceeds 30 runes", tt.in)
		}
	}
}
