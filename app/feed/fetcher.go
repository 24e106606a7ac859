package feed

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"

	"github.com/RJohnPaul/EchoNews/app/sources"
)

// SourceResolver maps feed URLs to display names and placeholder images.
// Implemented by sources.Directory.
type SourceResolver interface {
	DisplayName(feedURL string) string
	PlaceholderImage(feedURL string) string
}

type FetcherOptions struct {
	UserAgent  string
	Attempts   int           // fetch attempts per feed
	RetryDelay time.Duration // constant delay between attempts
	Timeout    time.Duration // per-attempt timeout
}

type Fetcher struct {
	gofeedParser *gofeed.Parser
	httpClient   *http.Client
	resolver     SourceResolver
	userAgent    string
	attempts     int
	retryDelay   time.Duration
	timeout      time.Duration
	now          func() time.Time
}

func NewFetcher(httpClient *http.Client, resolver SourceResolver, opts FetcherOptions) *Fetcher {
	if opts.Attempts <= 0 {
		opts.Attempts = 3
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	return &Fetcher{
		gofeedParser: gofeed.NewParser(),
		httpClient:   httpClient,
		resolver:     resolver,
		userAgent:    opts.UserAgent,
		attempts:     opts.Attempts,
		retryDelay:   opts.RetryDelay,
		timeout:      opts.Timeout,
		now:          time.Now,
	}
}

// Fetch retrieves and normalizes one feed. It never fails the caller: an
// unrecoverable fetch or parse error yields an empty result, and a feed that
// parses but carries zero entries returns immediately without retrying.
func (f *Fetcher) Fetch(ctx context.Context, src sources.FeedSource) []Article {
	for attempt := 1; attempt <= f.attempts; attempt++ {
		articles, err := f.fetchOnce(ctx, src)
		if err == nil {
			return articles
		}

		if attempt == f.attempts {
			slog.Error("Feed fetch failed", "url", src.URL, "attempts", f.attempts, "error", err)
			return nil
		}

		slog.Warn("Feed fetch failed, retrying", "url", src.URL, "attempt", attempt, "error", err)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(f.retryDelay):
		}
	}
	return nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, src sources.FeedSource) ([]Article, error) {
	data, err := f.download(ctx, src.URL)
	if err != nil {
		return nil, err
	}

	parsed, err := f.gofeedParser.Parse(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	if len(parsed.Items) == 0 {
		slog.Warn("No entries found in feed", "url", src.URL)
		return []Article{}, nil
	}

	sourceName := strings.TrimSpace(parsed.Title)
	if sourceName == "" {
		sourceName = f.resolver.DisplayName(src.URL)
	}

	articles := make([]Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		article, ok := f.normalizeItem(item, src, sourceName)
		if !ok {
			continue
		}
		articles = append(articles, article)
	}

	slog.Debug("Feed fetched", "url", src.URL, "articles", len(articles))
	return articles, nil
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return data, nil
}

// normalizeItem maps one feed entry to an Article. Entries without a usable
// title are skipped so one malformed entry never aborts the feed.
func (f *Fetcher) normalizeItem(item *gofeed.Item, src sources.FeedSource, sourceName string) (Article, bool) {
	title := StripTags(item.Title)
	if title == "" {
		return Article{}, false
	}

	summary := StripTags(cmp.Or(item.Description, item.Content))

	published := f.now()
	if item.PublishedParsed != nil {
		published = *item.PublishedParsed
	} else if item.Published != "" {
		if t, err := dateparse.ParseAny(item.Published); err == nil {
			published = t
		}
	}

	image := extractImage(item)
	if image == "" {
		image = f.resolver.PlaceholderImage(src.URL)
	}

	return Article{
		ID:        ArticleID(title, sourceName),
		Title:     title,
		Summary:   summary,
		Source:    Source{Name: sourceName, URL: src.URL},
		Published: published,
		Link:      item.Link,
		ImageURL:  image,
		Category:  src.Category,
	}, true
}
