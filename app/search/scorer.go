package search

import (
	"sort"
	"strings"
	"time"

	"github.com/RJohnPaul/EchoNews/app/feed"
)

const retainThreshold = 0.2

// Sports-context keywords and IPL team acronyms. A hard-coded special case
// for queries like "csk vs mi", not a general mechanism.
var sportsKeywords = []string{"vs", "cricket", "ipl", "match", "game", "score"}

var teamAcronyms = []string{"csk", "mi", "rcb", "kkr", "srh", "dc", "pkbs", "rr", "gt", "lsg"}

// Scorer computes a heuristic relevance score in [0, 1] blending exact-match,
// term-overlap, title-overlap, sports-context and recency signals.
type Scorer struct {
	now func() time.Time
}

func NewScorer() *Scorer {
	return &Scorer{now: time.Now}
}

// Score returns the article's relevance for a non-empty query, plus whether
// the article should be retained in the scored set. Retention admits any
// article with at least one literal term match even when its score falls
// under the threshold.
func (s *Scorer) Score(article feed.Article, query string) (float64, bool) {
	queryLower := strings.ToLower(query)
	queryTerms := strings.Fields(queryLower)
	if len(queryTerms) == 0 {
		return 0, false
	}

	titleLower := strings.ToLower(article.Title)
	combined := titleLower + " " + strings.ToLower(article.Summary)

	score := 0.0

	if strings.Contains(combined, queryLower) {
		score += 0.5
	}

	termMatches := 0
	titleMatches := 0
	for _, term := range queryTerms {
		if strings.Contains(combined, term) {
			termMatches++
		}
		if strings.Contains(titleLower, term) {
			titleMatches++
		}
	}
	score += 0.3 * float64(termMatches) / float64(len(queryTerms))
	score += 0.4 * float64(titleMatches) / float64(len(queryTerms))

	if isSportsQuery(queryLower) {
		teamMatches := 0
		for _, team := range teamAcronyms {
			if strings.Contains(combined, team) {
				teamMatches++
			}
		}
		score += 0.2 * min(1.0, float64(teamMatches))
	}

	if !article.Published.IsZero() {
		daysOld := int(s.now().Sub(article.Published).Hours() / 24)
		recency := 0.1 - float64(daysOld)*0.01
		if recency > 0 {
			score += recency
		}
	}

	if score > 1.0 {
		score = 1.0
	}

	return score, score > retainThreshold || termMatches > 0
}

// Rank scores every article against the query, drops the ones not retained,
// and returns the rest ordered by descending relevance. The sort is stable
// so equal scores keep their input order.
func (s *Scorer) Rank(articles []feed.Article, query string) []feed.Article {
	scored := make([]feed.Article, 0, len(articles))
	for _, article := range articles {
		score, keep := s.Score(article, query)
		if !keep {
			continue
		}
		article.Relevance = score
		scored = append(scored, article)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Relevance > scored[j].Relevance
	})

	return scored
}

func isSportsQuery(queryLower string) bool {
	for _, kw := range sportsKeywords {
		if strings.Contains(queryLower, kw) {
			return true
		}
	}
	return false
}
