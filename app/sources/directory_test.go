package sources

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
languages:
  en:
    feeds:
      - url: "https://www.thehindu.com/news/national/feeder/default.rss"
      - url: "https://feeds.feedburner.com/ndtvnews-top-stories"
        category: "general"
      - url: "https://prod-qt-images.s3.amazonaws.com/production/swarajya/feed.xml"
        category: "politics"
  hi:
    feeds:
      - url: "https://www.bhaskar.com/rss-feed/1061/"
source_names:
  thehindu.com: "The Hindu"
  feeds.feedburner.com: "NDTV News"
  swarajya: "Swarajya"
placeholder_images:
  thehindu.com: "https://example.com/hindu.png"
default_image: "https://placehold.co/600x400?text=News"
`

func load(t *testing.T, content string) (*Directory, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return Load(path)
}

func mustLoad(t *testing.T, content string) *Directory {
	t.Helper()
	d, err := load(t, content)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return d
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoad_NoLanguages(t *testing.T) {
	if _, err := load(t, "source_names: {}"); err == nil {
		t.Error("Expected error for a file without languages")
	}
}

func TestLoad_EmptyFeedList(t *testing.T) {
	if _, err := load(t, "languages:\n  en:\n    feeds: []"); err == nil {
		t.Error("Expected error for a language with no feeds")
	}
}

func TestLoad_FeedWithoutURL(t *testing.T) {
	content := "languages:\n  en:\n    feeds:\n      - category: \"general\""
	if _, err := load(t, content); err == nil {
		t.Error("Expected error for a feed without a URL")
	}
}

func TestDirectory_NormalizeLanguage(t *testing.T) {
	d := mustLoad(t, validYAML)

	tests := []struct {
		input    string
		expected string
	}{
		{"en", "en"},
		{"EN", "en"},
		{"en-US", "en"},
		{"hi-IN", "hi"},
		{" en ", "en"},
		{"", ""},
		{"not-a-!tag!", "not-a-!tag!"},
	}

	for _, tt := range tests {
		if got := d.NormalizeLanguage(tt.input); got != tt.expected {
			t.Errorf("NormalizeLanguage(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestDirectory_Supported(t *testing.T) {
	d := mustLoad(t, validYAML)

	if !d.Supported("en") || !d.Supported("en-GB") || !d.Supported("hi") {
		t.Error("Configured languages should be supported")
	}
	if d.Supported("fr") {
		t.Error("Unconfigured language should not be supported")
	}
}

func TestDirectory_Languages(t *testing.T) {
	d := mustLoad(t, validYAML)

	langs := d.Languages()
	if len(langs) != 2 || langs[0] != "en" || langs[1] != "hi" {
		t.Errorf("Expected sorted [en hi], got %v", langs)
	}
}

func TestDirectory_FeedsFor(t *testing.T) {
	d := mustLoad(t, validYAML)

	if got := d.FeedsFor("en", ""); len(got) != 3 {
		t.Errorf("Expected all 3 en feeds, got %d", len(got))
	}
	if got := d.FeedsFor("en", "politics"); len(got) != 1 {
		t.Errorf("Expected 1 politics feed, got %d", len(got))
	}
	if got := d.FeedsFor("en", "POLITICS"); len(got) != 1 {
		t.Errorf("Category match should be case-insensitive, got %d", len(got))
	}

	// Unknown languages fall back to the English table
	if got := d.FeedsFor("fr", ""); len(got) != 3 {
		t.Errorf("Expected en fallback for unknown language, got %d feeds", len(got))
	}
}

func TestDirectory_Categories(t *testing.T) {
	d := mustLoad(t, validYAML)

	categories := d.Categories()
	if len(categories) != 2 || categories[0] != "general" || categories[1] != "politics" {
		t.Errorf("Expected sorted [general politics], got %v", categories)
	}
}

func TestDirectory_DisplayName(t *testing.T) {
	d := mustLoad(t, validYAML)

	tests := []struct {
		url      string
		expected string
	}{
		// Exact domain table hit (www is stripped)
		{"https://www.thehindu.com/news/national/feeder/default.rss", "The Hindu"},
		// Partial key hit against the full URL
		{"https://prod-qt-images.s3.amazonaws.com/production/swarajya/feed.xml", "Swarajya"},
		// No table entry falls back to the raw domain
		{"https://www.unknownpaper.example/rss", "unknownpaper.example"},
	}

	for _, tt := range tests {
		if got := d.DisplayName(tt.url); got != tt.expected {
			t.Errorf("DisplayName(%q) = %q, expected %q", tt.url, got, tt.expected)
		}
	}
}

func TestDirectory_PlaceholderImage(t *testing.T) {
	d := mustLoad(t, validYAML)

	if got := d.PlaceholderImage("https://www.thehindu.com/feeder/default.rss"); got != "https://example.com/hindu.png" {
		t.Errorf("Expected per-domain placeholder, got %q", got)
	}
	if got := d.PlaceholderImage("https://unknown.example/rss"); got != "https://placehold.co/600x400?text=News" {
		t.Errorf("Expected default image, got %q", got)
	}
}

func TestDirectory_Descriptors(t *testing.T) {
	d := mustLoad(t, validYAML)

	infos := d.Descriptors("en")
	if len(infos) != 3 {
		t.Fatalf("Expected 3 descriptors, got %d", len(infos))
	}
	if infos[0].ID != "thehindu.com" || infos[0].Name != "The Hindu" {
		t.Errorf("Unexpected first descriptor: %+v", infos[0])
	}

	if d.Descriptors("fr") != nil {
		t.Error("Unknown language should yield no descriptors")
	}
}

func TestDomain(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://www.thehindu.com/rss", "thehindu.com"},
		{"http://example.com:8080/feed", "example.com"},
		{"not a url", ""},
	}

	for _, tt := range tests {
		if got := Domain(tt.url); got != tt.expected {
			t.Errorf("Domain(%q) = %q, expected %q", tt.url, got, tt.expected)
		}
	}
}
