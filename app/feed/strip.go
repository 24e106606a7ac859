package feed

import (
	"html"
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripTags removes markup from feed text. Simple tag removal, not a full
// HTML parser; entities are unescaped and whitespace collapsed afterwards.
func StripTags(s string) string {
	s = tagPattern.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}
