package gnews

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/RJohnPaul/EchoNews/app/feed"
)

const searchURL = "https://news.google.com/rss/search?q=%s&hl=%s&gl=IN&ceid=IN:%s"

// Client queries the Google News RSS search endpoint as a fallback article
// source for languages or categories where the configured feeds run thin.
type Client struct {
	httpClient   *http.Client
	gofeedParser *gofeed.Parser
	userAgent    string
	now          func() time.Time
}

func NewClient(httpClient *http.Client, userAgent string) *Client {
	return &Client{
		httpClient:   httpClient,
		gofeedParser: gofeed.NewParser(),
		userAgent:    userAgent,
		now:          time.Now,
	}
}

// Search fetches Google News results for the query (or the category, or a
// generic "news" term when both are empty) in the requested language.
func (c *Client) Search(ctx context.Context, query, lang, category string) ([]feed.Article, error) {
	term := query
	if term == "" {
		term = category
	}
	if term == "" {
		term = "news"
	}

	endpoint := fmt.Sprintf(searchURL, url.QueryEscape(term), lang, lang)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query Google News: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	parsed, err := c.gofeedParser.Parse(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse Google News feed: %w", err)
	}

	articles := make([]feed.Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		title := feed.StripTags(item.Title)
		if title == "" {
			continue
		}

		published := c.now()
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		}

		articles = append(articles, feed.Article{
			ID:        feed.ArticleID(title, "Google News"),
			Title:     title,
			Summary:   feed.StripTags(item.Description),
			Source:    feed.Source{Name: "Google News", URL: endpoint},
			Published: published,
			Link:      item.Link,
			Category:  category,
		})
	}
	return articles, nil
}
