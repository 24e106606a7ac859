package feed

import "testing"

func TestStripTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text", "No markup here", "No markup here"},
		{"simple tags", "<p>Hello <b>world</b></p>", "Hello world"},
		{"entities", "Rock &amp; roll &lt;live&gt;", "Rock & roll <live>"},
		{"whitespace collapse", "  too   many\n\nspaces  ", "too many spaces"},
		{"attributes", `<a href="https://x.example">link text</a>`, "link text"},
		{"empty", "", ""},
		{"only tags", "<div><br/></div>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripTags(tt.input); got != tt.expected {
				t.Errorf("StripTags(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestArticleID_Deterministic(t *testing.T) {
	first := ArticleID("Budget session begins", "The Hindu")
	second := ArticleID("Budget session begins", "The Hindu")

	if first != second {
		t.Errorf("Same inputs must produce the same ID: %s != %s", first, second)
	}
	if len(first) != 32 {
		t.Errorf("Expected 32 hex characters, got %d", len(first))
	}
}

func TestArticleID_DistinguishesSources(t *testing.T) {
	a := ArticleID("Budget session begins", "The Hindu")
	b := ArticleID("Budget session begins", "NDTV News")

	if a == b {
		t.Error("Different sources must produce different IDs")
	}
}
