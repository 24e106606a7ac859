package news

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/RJohnPaul/EchoNews/app/cache"
	"github.com/RJohnPaul/EchoNews/app/cluster"
	"github.com/RJohnPaul/EchoNews/app/feed"
	"github.com/RJohnPaul/EchoNews/app/search"
	"github.com/RJohnPaul/EchoNews/app/sources"
)

// Request carries one news lookup. Page and PageSize drive pagination; the
// legacy endpoint maps its max-results count to Page=1, PageSize=count.
type Request struct {
	Query            string
	Language         string
	Category         string
	Page             int
	PageSize         int
	PreferredSources []string
}

type Response struct {
	Articles         []feed.Article `json:"articles"`
	Message          string         `json:"message"`
	TotalFound       int            `json:"total_found"`
	TotalPages       int            `json:"total_pages"`
	Page             int            `json:"page"`
	AvailableSources []string       `json:"available_sources"`
	Categories       []string       `json:"categories"`
}

// NotFoundError marks requests for things the service does not know about,
// such as an unsupported language. The API layer maps it to a 404.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// Aggregator produces the merged article set for a feed list. Implemented by
// feed.Coordinator.
type Aggregator interface {
	FetchAll(ctx context.Context, feeds []sources.FeedSource, query, lang, category string) []feed.Article
}

// CategoryOracle suggests a category for a free-text query. An empty return
// means no suggestion; the oracle never fails a request.
type CategoryOracle interface {
	SuggestCategory(ctx context.Context, query string, known []string) string
}

type Service struct {
	directory       *sources.Directory
	aggregator      Aggregator
	store           *cache.Store
	scorer          *search.Scorer
	clusterer       *cluster.Clusterer
	oracle          CategoryOracle
	defaultPageSize int
}

func NewService(directory *sources.Directory, aggregator Aggregator, store *cache.Store, oracle CategoryOracle, defaultPageSize int) *Service {
	if defaultPageSize < 1 {
		defaultPageSize = 10
	}
	return &Service{
		directory:       directory,
		aggregator:      aggregator,
		store:           store,
		scorer:          search.NewScorer(),
		clusterer:       cluster.NewClusterer(),
		oracle:          oracle,
		defaultPageSize: defaultPageSize,
	}
}

// Get runs the full pipeline for one request: cache lookup (fetching on a
// miss), source filtering, relevance ranking, near-duplicate clustering and
// pagination.
func (s *Service) Get(ctx context.Context, req Request) (*Response, error) {
	lang := s.directory.NormalizeLanguage(req.Language)
	if !s.directory.Supported(lang) {
		return nil, &NotFoundError{Message: fmt.Sprintf("Language %s not supported", req.Language)}
	}

	category := req.Category
	if category == "" && req.Query != "" && s.oracle != nil {
		category = s.oracle.SuggestCategory(ctx, req.Query, s.directory.Categories())
		if category != "" {
			slog.Debug("Category suggested for query", "query", req.Query, "category", category)
		}
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = s.defaultPageSize
	}

	articles := s.snapshot(ctx, lang, category, req.Query)

	availableSources := availableSourceNames(articles)
	categories := s.directory.Categories()

	articles, matched := filterBySources(articles, req.PreferredSources)
	if !matched {
		return &Response{
			Articles:         []feed.Article{},
			Message:          "No articles found from your preferred sources. Try selecting different sources.",
			TotalPages:       0,
			Page:             page,
			AvailableSources: availableSources,
			Categories:       categories,
		}, nil
	}

	var (
		result  []feed.Article
		message string
	)

	if req.Query != "" {
		result = s.scorer.Rank(articles, req.Query)
		if len(result) > 0 {
			result = s.diversify(result)
			message = fmt.Sprintf("Found %d articles matching '%s'.", len(result), req.Query)
		} else {
			result = sortByRecency(articles)
			message = fmt.Sprintf("No exact matches for '%s'. Showing %d recent articles.",
				req.Query, min(pageSize, len(result)))
		}
	} else {
		result = sortByRecency(articles)
		message = fmt.Sprintf("Showing %d recent news articles.", min(pageSize, len(result)))
	}

	if len(result) == 0 {
		return &Response{
			Articles:         []feed.Article{},
			Message:          "No news articles found. Please try a different search query or language selection.",
			TotalPages:       0,
			Page:             page,
			AvailableSources: availableSources,
			Categories:       categories,
		}, nil
	}

	pageArticles, totalPages := paginate(result, page, pageSize)

	return &Response{
		Articles:         pageArticles,
		Message:          message,
		TotalFound:       len(result),
		TotalPages:       totalPages,
		Page:             page,
		AvailableSources: availableSources,
		Categories:       categories,
	}, nil
}

// Refresh fetches and caches the general snapshot for a language. Used by the
// background prefetch scheduler to keep popular languages warm.
func (s *Service) Refresh(ctx context.Context, language string) error {
	lang := s.directory.NormalizeLanguage(language)
	if !s.directory.Supported(lang) {
		return fmt.Errorf("unsupported language: %s", language)
	}

	feeds := s.directory.FeedsFor(lang, "")
	articles := s.aggregator.FetchAll(ctx, feeds, "", lang, "")
	s.store.Put(cache.Key(lang, ""), articles)

	slog.Info("Refreshed news snapshot", "language", lang, "articles", len(articles))
	return nil
}

// snapshot returns the cached article set for (lang, category), fetching and
// caching on a miss.
func (s *Service) snapshot(ctx context.Context, lang, category, query string) []feed.Article {
	key := cache.Key(lang, category)
	if articles, ok := s.store.Get(key); ok {
		slog.Debug("Cache hit", "key", key, "articles", len(articles))
		return articles
	}

	feeds := s.directory.FeedsFor(lang, category)
	articles := s.aggregator.FetchAll(ctx, feeds, query, lang, category)
	s.store.Put(key, articles)
	return articles
}

// diversify collapses near-duplicate stories: articles are clustered by title
// similarity and each cluster contributes its highest-relevance member, with
// the survivors reordered by relevance.
func (s *Service) diversify(ranked []feed.Article) []feed.Article {
	if len(ranked) <= 1 {
		return ranked
	}

	groups := s.clusterer.Cluster(ranked)
	representatives := make([]feed.Article, 0, len(groups))
	for _, group := range groups {
		if rep, ok := cluster.Representative(group, 1); ok {
			representatives = append(representatives, rep)
		}
	}

	sort.SliceStable(representatives, func(i, j int) bool {
		return representatives[i].Relevance > representatives[j].Relevance
	})
	return representatives
}

func sortByRecency(articles []feed.Article) []feed.Article {
	sorted := make([]feed.Article, len(articles))
	copy(sorted, articles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Published.After(sorted[j].Published)
	})
	return sorted
}
