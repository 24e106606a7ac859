package feed

import (
	"context"
	"log/slog"
	"sync"

	"github.com/RJohnPaul/EchoNews/app/sources"
)

// ArticleFetcher fetches one feed. Implemented by Fetcher.
type ArticleFetcher interface {
	Fetch(ctx context.Context, src sources.FeedSource) []Article
}

// FallbackSource is an external aggregator queried when the merged feed
// results fall below the configured threshold. A nil FallbackSource on the
// Coordinator disables augmentation entirely.
type FallbackSource interface {
	Search(ctx context.Context, query, lang, category string) ([]Article, error)
}

type Coordinator struct {
	fetcher     ArticleFetcher
	fallback    FallbackSource
	workerCount int
	minGeneral  int
	minCategory int
}

func NewCoordinator(fetcher ArticleFetcher, fallback FallbackSource, workerCount, minGeneral, minCategory int) *Coordinator {
	if workerCount <= 0 {
		workerCount = 10
	}
	return &Coordinator{
		fetcher:     fetcher,
		fallback:    fallback,
		workerCount: workerCount,
		minGeneral:  minGeneral,
		minCategory: minCategory,
	}
}

// FetchAll fans the feed list out over a bounded worker pool and merges the
// results as workers complete, deduplicating by article title. Individual
// feed failures never fail the batch. Which copy of a duplicated title
// survives depends on worker completion order; callers must not rely on a
// specific one.
func (c *Coordinator) FetchAll(ctx context.Context, feeds []sources.FeedSource, query, lang, category string) []Article {
	jobs := make(chan sources.FeedSource)
	results := make(chan []Article)

	var wg sync.WaitGroup
	for i := 0; i < c.workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for src := range jobs {
				results <- c.fetchGuarded(ctx, src)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, src := range feeds {
			select {
			case jobs <- src:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	seenTitles := make(map[string]struct{})
	var merged []Article
	successfulFeeds := 0

	for batch := range results {
		if len(batch) == 0 {
			continue
		}
		successfulFeeds++
		for _, article := range batch {
			if _, dup := seenTitles[article.Title]; dup {
				continue
			}
			seenTitles[article.Title] = struct{}{}
			merged = append(merged, article)
		}
	}

	slog.Info("Feed fetch round complete",
		"feeds", len(feeds),
		"successful", successfulFeeds,
		"articles", len(merged))

	threshold := c.minGeneral
	if category != "" {
		threshold = c.minCategory
	}

	if len(merged) < threshold && c.fallback != nil {
		extra, err := c.fallback.Search(ctx, query, lang, category)
		if err != nil {
			slog.Warn("Fallback source query failed", "error", err)
		} else if len(extra) > 0 {
			added := 0
			for _, article := range extra {
				if _, dup := seenTitles[article.Title]; dup {
					continue
				}
				seenTitles[article.Title] = struct{}{}
				merged = append(merged, article)
				added++
			}
			slog.Info("Fallback source merged", "fetched", len(extra), "added", added)
		}
	}

	return merged
}

// fetchGuarded isolates worker panics so a misbehaving feed is logged and
// skipped rather than taking down the batch.
func (c *Coordinator) fetchGuarded(ctx context.Context, src sources.FeedSource) (articles []Article) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Feed fetch panicked", "url", src.URL, "panic", r)
			articles = nil
		}
	}()
	return c.fetcher.Fetch(ctx, src)
}
