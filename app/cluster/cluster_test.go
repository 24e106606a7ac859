package cluster

import (
	"fmt"
	"testing"

	"github.com/RJohnPaul/EchoNews/app/feed"
)

func titles(group []feed.Article) []string {
	out := make([]string, len(group))
	for i, a := range group {
		out[i] = a.Title
	}
	return out
}

func TestClusterer_Cluster_Empty(t *testing.T) {
	clusterer := NewClusterer()

	if groups := clusterer.Cluster(nil); groups != nil {
		t.Errorf("Expected no groups for empty input, got %d", len(groups))
	}
}

func TestClusterer_Cluster_SingleArticle(t *testing.T) {
	clusterer := NewClusterer()

	groups := clusterer.Cluster([]feed.Article{{Title: "Lone story"}})
	if len(groups) != 1 || len(groups[0]) != 1 {
		t.Fatalf("Expected one singleton group, got %v", groups)
	}
}

func TestClusterer_Cluster_PairwiseGroupsDuplicates(t *testing.T) {
	clusterer := NewClusterer()

	articles := []feed.Article{
		{Title: "Parliament passes landmark education bill"},
		{Title: "Parliament passes landmark education bill today"},
		{Title: "Monsoon arrives early in Kerala"},
	}

	groups := clusterer.Cluster(articles)
	if len(groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d: %v", len(groups), groups)
	}
	if len(groups[0]) != 2 {
		t.Errorf("Near-duplicate titles should share a group, got %v", titles(groups[0]))
	}
}

func TestClusterer_Cluster_DissimilarStaySeparate(t *testing.T) {
	clusterer := NewClusterer()

	articles := []feed.Article{
		{Title: "Stock markets close higher"},
		{Title: "New vaccine trial begins"},
		{Title: "Film festival opens in Goa"},
	}

	groups := clusterer.Cluster(articles)
	if len(groups) != 3 {
		t.Errorf("Unrelated stories must not merge, got %d groups", len(groups))
	}
}

func TestClusterer_Cluster_EveryArticlePlacedOnce(t *testing.T) {
	clusterer := NewClusterer()

	// Above the pairwise limit, exercising the divide-and-conquer path.
	var articles []feed.Article
	for i := 0; i < 20; i++ {
		articles = append(articles, feed.Article{
			ID:    fmt.Sprintf("story-%d", i),
			Title: fmt.Sprintf("Completely distinct headline number %d about topic %d", i, i),
		})
	}

	groups := clusterer.Cluster(articles)

	seen := make(map[string]int)
	total := 0
	for _, group := range groups {
		for _, article := range group {
			seen[article.ID]++
			total++
		}
	}

	if total != len(articles) {
		t.Errorf("Expected %d placed articles, got %d", len(articles), total)
	}
	for id, count := range seen {
		if count != 1 {
			t.Errorf("Article %s placed %d times", id, count)
		}
	}
}

func TestClusterer_Cluster_RecursiveMergesDuplicatesAcrossHalves(t *testing.T) {
	clusterer := NewClusterer()

	// Two copies of the same headline far apart in the input so they land in
	// different halves of the recursive split.
	articles := []feed.Article{
		{Title: "Election commission announces poll schedule"},
		{Title: "Heavy rain floods city streets"},
		{Title: "Tech giant unveils new chip"},
		{Title: "Rupee gains against dollar"},
		{Title: "Farmers demand higher support prices"},
		{Title: "Airline adds new routes"},
		{Title: "Hospital opens new wing"},
		{Title: "Election commission announces poll schedule"},
	}

	groups := clusterer.Cluster(articles)

	for _, group := range groups {
		if group[0].Title == "Election commission announces poll schedule" {
			if len(group) != 2 {
				t.Errorf("Identical headlines should merge across halves, got group %v", titles(group))
			}
			return
		}
	}
	t.Error("Expected a group for the duplicated headline")
}

func TestClusterer_Cluster_ChainsThroughMembers(t *testing.T) {
	clusterer := NewClusterer()

	// B matches A and C matches B, but C does not match A directly. Member-wise
	// matching chains all three into one group.
	articles := []feed.Article{
		{ID: "a", Title: "aaa bbb ccc"},
		{ID: "b", Title: "aaa bbb ccc ddd eee"},
		{ID: "c", Title: "ccc ddd eee"},
	}

	groups := clusterer.Cluster(articles)
	if len(groups) != 1 {
		t.Fatalf("Expected one chained group, got %d: %v", len(groups), groups)
	}
	if len(groups[0]) != 3 {
		t.Errorf("All three articles should chain together, got %v", titles(groups[0]))
	}
}

func TestClusterer_Cluster_MergesWhenAnyCrossPairMatches(t *testing.T) {
	clusterer := NewClusterer()

	// Above the pairwise limit so the halves are clustered separately. The
	// left half groups a0 with a1; b0 in the right half clears the cosine
	// threshold against a1 only, not against a0. Any qualifying cross-pair
	// must still merge the groups.
	articles := []feed.Article{
		{ID: "a0", Title: "aaa bbb ccc"},
		{ID: "a1", Title: "aaa bbb ccc ddd eee"},
		{ID: "f1", Title: "fff ggg hhh"},
		{ID: "b0", Title: "ccc ddd eee"},
		{ID: "f2", Title: "iii jjj kkk"},
		{ID: "f3", Title: "lll mmm nnn"},
	}

	groups := clusterer.Cluster(articles)

	groupOf := make(map[string]int)
	for i, group := range groups {
		for _, article := range group {
			groupOf[article.ID] = i
		}
	}

	if groupOf["a1"] != groupOf["b0"] {
		t.Errorf("a1 and b0 should share a group, got %d and %d", groupOf["a1"], groupOf["b0"])
	}
	if groupOf["a0"] != groupOf["a1"] {
		t.Errorf("a0 and a1 should stay grouped, got %d and %d", groupOf["a0"], groupOf["a1"])
	}
	if groupOf["f1"] == groupOf["b0"] || groupOf["f2"] == groupOf["b0"] {
		t.Error("Dissimilar fillers must not join the merged group")
	}
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		a, b     string
		expected float64
	}{
		{"budget session begins", "budget session begins", 1.0},
		{"budget session begins", "cricket match today", 0.0},
		{"", "budget session", 0.0},
	}

	for _, tt := range tests {
		got := jaccard(tokenize(tt.a), tokenize(tt.b))
		if got != tt.expected {
			t.Errorf("jaccard(%q, %q) = %.2f, expected %.2f", tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestTokenize_DropsShortWords(t *testing.T) {
	terms := tokenize("A big win in an odd game")

	for _, short := range []string{"a", "in", "an"} {
		if _, ok := terms[short]; ok {
			t.Errorf("Short word %q should be dropped", short)
		}
	}
	for _, kept := range []string{"big", "win", "odd", "game"} {
		if _, ok := terms[kept]; !ok {
			t.Errorf("Word %q should be kept", kept)
		}
	}
}

func TestCosine(t *testing.T) {
	identical := cosine(termVector("markets rally sharply"), termVector("markets rally sharply"))
	if identical < 0.999 {
		t.Errorf("Identical titles should have cosine ~1.0, got %.4f", identical)
	}

	disjoint := cosine(termVector("markets rally sharply"), termVector("vaccine trial begins"))
	if disjoint != 0 {
		t.Errorf("Disjoint titles should have cosine 0, got %.4f", disjoint)
	}

	if got := cosine(termVector(""), termVector("markets rally")); got != 0 {
		t.Errorf("Empty vector should yield cosine 0, got %.4f", got)
	}
}
