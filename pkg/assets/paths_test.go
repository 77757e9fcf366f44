package assets_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/backoffice/pkg/assets"
)

func TestSplitPaths(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		want   []string
	}{
		{"empty", "", nil},
		{"whitespace", "   ", nil},
		{"single", "a.png", []string{"a.png"}},
		{"comma joined", "a.png, b.png ,c.png", []string{"a.png", "b.png", "c.png"}},
		{"trailing comma", "a.png,", []string{"a.png"}},
		{"json array", `["a.png", "b.png"]`, []string{"a.png", "b.png"}},
		{"malformed array", `["a.png", b.png`, []string{"a.png", "b.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, assets.SplitPaths(tt.stored)); diff != "" {
				t.Errorf("SplitPaths(%q) mismatch (-want +got):\n%s", tt.stored, diff)
			}
		})
	}
}

func TestResolver_Resolve(t *testing.T) {
	r := assets.Resolver{BaseURL: "https://api.example.com/"}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"empty uses fallback", "", assets.DefaultFallback},
		{"relative", "uploads/a.png", "https://api.example.com/uploads/a.png"},
		{"leading slash", "/uploads/a.png", "https://api.example.com/uploads/a.png"},
		{"absolute", "http://elsewhere.test/a.png", "http://elsewhere.test/a.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(tt.path); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestResolver_CustomFallback(t *testing.T) {
	r := assets.Resolver{Fallback: "/placeholder.svg"}
	if got := r.Resolve(""); got != "/placeholder.svg" {
		t.Errorf("Resolve(\"\") = %q, want %q", got, "/placeholder.svg")
	}
}

func TestResolver_NormalizeRoundTrip(t *testing.T) {
	r := assets.Resolver{BaseURL: "https://api.example.com"}

	for _, p := range []string{"uploads/a.png", "https://other.test/b.png"} {
		if got := r.Normalize(r.Resolve(p)); got != p {
			t.Errorf("Normalize(Resolve(%q)) = %q", p, got)
		}
	}
}
