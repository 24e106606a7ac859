package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const suggestTimeout = 5 * time.Second

// Client wraps the Gemini API as a query categorization oracle. It is
// strictly best-effort: any failure, timeout or unrecognized answer degrades
// to "no suggestion".
type Client struct {
	client *genai.Client
}

func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{client: client}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// SuggestCategory asks the model which known category a query belongs to.
// The answer is only accepted if it matches one of the known category names;
// anything else, including errors, returns the empty string.
func (c *Client) SuggestCategory(ctx context.Context, query string, known []string) string {
	if len(known) == 0 {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, suggestTimeout)
	defer cancel()

	model := c.client.GenerativeModel("gemini-1.5-flash")
	prompt := fmt.Sprintf(
		"Classify this news search query into exactly one of these categories: %s.\n"+
			"Query: %q\n"+
			"Answer with the single category name only, or \"none\" if no category fits.",
		strings.Join(known, ", "), query)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		slog.Warn("Category suggestion failed", "query", query, "error", err)
		return ""
	}

	answer := strings.ToLower(strings.TrimSpace(firstText(resp)))
	for _, category := range known {
		if answer == strings.ToLower(category) {
			return category
		}
	}
	return ""
}

func firstText(resp *genai.GenerateContentResponse) string {
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				return string(text)
			}
		}
	}
	return ""
}
