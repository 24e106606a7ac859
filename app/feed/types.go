package feed

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

type Source struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Article struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Source    Source    `json:"source"`
	Published time.Time `json:"published_date"`
	Link      string    `json:"link"`
	ImageURL  string    `json:"image,omitempty"`
	Category  string    `json:"category,omitempty"`
	Relevance float64   `json:"relevance,omitempty"`
}

// ArticleID derives a stable identifier from title and source name. Two
// fetches of the same story from the same source always produce the same ID.
func ArticleID(title, sourceName string) string {
	sum := sha256.Sum256([]byte(title + "|" + sourceName))
	return hex.EncodeToString(sum[:16])
}
