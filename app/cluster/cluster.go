package cluster

import (
	"math"
	"sort"
	"strings"

	"github.com/RJohnPaul/EchoNews/app/feed"
)

// Clusterer groups near-duplicate articles by title similarity. Small inputs
// use exhaustive pairwise Jaccard comparison; larger inputs switch to a
// divide-and-conquer pass over term-frequency vectors with cosine similarity,
// which keeps the work near-linear in practice.
type Clusterer struct {
	threshold     float64
	pairwiseLimit int
}

func NewClusterer() *Clusterer {
	return &Clusterer{
		threshold:     0.6,
		pairwiseLimit: 5,
	}
}

// Cluster partitions articles into similarity groups. Every article lands in
// exactly one group, and each group preserves the relative order of its
// members. An article joins the first existing group containing any member it
// is similar enough to, so membership can chain: two articles may share a
// group through an intermediate match without being directly similar.
func (c *Clusterer) Cluster(articles []feed.Article) [][]feed.Article {
	if len(articles) == 0 {
		return nil
	}
	if len(articles) <= c.pairwiseLimit {
		return c.clusterPairwise(articles)
	}
	return c.clusterRecursive(articles, 0, len(articles))
}

func (c *Clusterer) clusterPairwise(articles []feed.Article) [][]feed.Article {
	var groups [][]feed.Article

	for _, article := range articles {
		terms := tokenize(article.Title)
		placed := false
		for i, group := range groups {
			if c.matchesGroup(terms, group) {
				groups[i] = append(groups[i], article)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, []feed.Article{article})
		}
	}

	return groups
}

func (c *Clusterer) matchesGroup(terms map[string]struct{}, group []feed.Article) bool {
	for _, member := range group {
		if jaccard(terms, tokenize(member.Title)) >= c.threshold {
			return true
		}
	}
	return false
}

// clusterRecursive splits [lo, hi) at the midpoint, clusters both halves,
// then merges groups across the boundary by comparing term vectors of the
// cross-boundary article pairs with cosine similarity.
func (c *Clusterer) clusterRecursive(articles []feed.Article, lo, hi int) [][]feed.Article {
	if hi-lo <= c.pairwiseLimit {
		return c.clusterPairwise(articles[lo:hi])
	}

	mid := lo + (hi-lo)/2
	left := c.clusterRecursive(articles, lo, mid)
	right := c.clusterRecursive(articles, mid, hi)

	return c.mergeGroups(left, right)
}

// mergeGroups folds right-side groups into the left set. Two groups merge if
// any article pair across them clears the cosine threshold; a right group
// joins at most the first matching left group, unmatched groups are appended.
func (c *Clusterer) mergeGroups(left, right [][]feed.Article) [][]feed.Article {
	merged := left
	for _, group := range right {
		placed := false
		for i, existing := range merged {
			if c.groupsSimilar(group, existing) {
				merged[i] = append(merged[i], group...)
				placed = true
				break
			}
		}
		if !placed {
			merged = append(merged, group)
		}
	}
	return merged
}

func (c *Clusterer) groupsSimilar(a, b []feed.Article) bool {
	for _, x := range a {
		vec := termVector(x.Title)
		for _, y := range b {
			if cosine(vec, termVector(y.Title)) >= c.threshold {
				return true
			}
		}
	}
	return false
}

// tokenize lowercases a title and keeps words longer than two characters.
func tokenize(title string) map[string]struct{} {
	terms := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(title)) {
		if len(word) > 2 {
			terms[word] = struct{}{}
		}
	}
	return terms
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for term := range a {
		if _, ok := b[term]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// termVector builds a term-frequency vector over the title's vocabulary,
// ordered lexically so vectors from the same vocabulary are comparable.
func termVector(title string) map[string]float64 {
	vec := make(map[string]float64)
	for _, word := range strings.Fields(strings.ToLower(title)) {
		if len(word) > 2 {
			vec[word]++
		}
	}
	return vec
}

func cosine(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	vocab := make([]string, 0, len(a)+len(b))
	seen := make(map[string]struct{}, len(a)+len(b))
	for term := range a {
		seen[term] = struct{}{}
	}
	for term := range b {
		seen[term] = struct{}{}
	}
	for term := range seen {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)

	var dot, magA, magB float64
	for _, term := range vocab {
		av, bv := a[term], b[term]
		dot += av * bv
		magA += av * av
		magB += bv * bv
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
