package news

import (
	"strings"

	"github.com/RJohnPaul/EchoNews/app/feed"
)

// availableSourceNames collects the distinct source names in first-seen
// order, so the list is stable for a given snapshot.
func availableSourceNames(articles []feed.Article) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, article := range articles {
		if _, ok := seen[article.Source.Name]; ok {
			continue
		}
		seen[article.Source.Name] = struct{}{}
		names = append(names, article.Source.Name)
	}
	return names
}

// filterBySources keeps articles whose source name contains any preferred
// name, case-insensitively. An empty preference list keeps everything. The
// second return is false when the filter eliminated a non-empty input.
func filterBySources(articles []feed.Article, preferred []string) ([]feed.Article, bool) {
	if len(preferred) == 0 {
		return articles, true
	}

	filtered := make([]feed.Article, 0, len(articles))
	for _, article := range articles {
		name := strings.ToLower(article.Source.Name)
		for _, p := range preferred {
			if strings.Contains(name, strings.ToLower(p)) {
				filtered = append(filtered, article)
				break
			}
		}
	}

	if len(filtered) == 0 && len(articles) > 0 {
		return nil, false
	}
	return filtered, true
}

// paginate slices the requested 1-based page out of the result set and
// reports the total page count, ceil(total / pageSize). A page past the end
// yields an empty slice, not an error.
func paginate(articles []feed.Article, page, pageSize int) ([]feed.Article, int) {
	total := len(articles)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start >= total {
		return []feed.Article{}, totalPages
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return articles[start:end], totalPages
}
