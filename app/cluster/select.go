package cluster

import "github.com/RJohnPaul/EchoNews/app/feed"

// Representative picks the k-th most relevant article of a group without
// fully sorting it, using quickselect over relevance scores. k is 1-based,
// so k=1 yields the highest-scoring member. Returns false when the group is
// empty or k is out of range.
func Representative(group []feed.Article, k int) (feed.Article, bool) {
	if len(group) == 0 || k < 1 || k > len(group) {
		return feed.Article{}, false
	}

	working := make([]feed.Article, len(group))
	copy(working, group)

	lo, hi := 0, len(working)-1
	target := k - 1
	for lo < hi {
		p := partition(working, lo, hi)
		if p >= target {
			hi = p
		} else {
			lo = p + 1
		}
	}
	return working[target], true
}

// partition is a Hoare partition by descending relevance: after it returns p,
// every element in [lo, p] scores at least as high as every element in
// (p, hi].
func partition(articles []feed.Article, lo, hi int) int {
	pivot := articles[lo+(hi-lo)/2].Relevance
	i, j := lo-1, hi+1
	for {
		for {
			i++
			if articles[i].Relevance <= pivot {
				break
			}
		}
		for {
			j--
			if articles[j].Relevance >= pivot {
				break
			}
		}
		if i >= j {
			return j
		}
		articles[i], articles[j] = articles[j], articles[i]
	}
}
