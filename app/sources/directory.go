package sources

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Directory holds the injected feed tables: per-language feed URLs with optional
// category labels, plus the domain to display-name and placeholder-image maps.
// It is immutable after Load.
type Directory struct {
	languages         map[string][]FeedSource
	sourceNames       map[string]string
	placeholderImages map[string]string
	defaultImage      string
}

func Load(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var raw fileConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse sources file: %w", err)
	}

	if len(raw.Languages) == 0 {
		return nil, fmt.Errorf("sources file %s defines no languages", path)
	}

	d := &Directory{
		languages:         make(map[string][]FeedSource, len(raw.Languages)),
		sourceNames:       raw.SourceNames,
		placeholderImages: raw.PlaceholderImages,
		defaultImage:      raw.DefaultImage,
	}

	for lang, table := range raw.Languages {
		if len(table.Feeds) == 0 {
			return nil, fmt.Errorf("language %q has no feeds", lang)
		}
		for i, fs := range table.Feeds {
			if fs.URL == "" {
				return nil, fmt.Errorf("language %q: feed at index %d has no URL", lang, i)
			}
		}
		d.languages[strings.ToLower(lang)] = table.Feeds
	}

	slog.Debug("Source directory loaded",
		"languages", len(d.languages),
		"named_sources", len(d.sourceNames))

	return d, nil
}

// NormalizeLanguage reduces a BCP 47 tag to its base language ("en-US" -> "en").
// Unparseable input is lowercased and returned as-is.
func (d *Directory) NormalizeLanguage(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		return strings.ToLower(code)
	}
	base, _ := tag.Base()
	return base.String()
}

func (d *Directory) Supported(lang string) bool {
	_, ok := d.languages[d.NormalizeLanguage(lang)]
	return ok
}

func (d *Directory) Languages() []string {
	langs := make([]string, 0, len(d.languages))
	for lang := range d.languages {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// FeedsFor returns the feed table for a language, optionally narrowed to one
// category. Unknown languages fall back to the English table.
func (d *Directory) FeedsFor(lang, category string) []FeedSource {
	feeds, ok := d.languages[d.NormalizeLanguage(lang)]
	if !ok {
		feeds = d.languages["en"]
	}

	if category == "" {
		return feeds
	}

	matched := make([]FeedSource, 0, len(feeds))
	for _, fs := range feeds {
		if strings.EqualFold(fs.Category, category) {
			matched = append(matched, fs)
		}
	}
	return matched
}

// Categories returns the distinct category labels across all feed tables.
func (d *Directory) Categories() []string {
	seen := make(map[string]struct{})
	for _, feeds := range d.languages {
		for _, fs := range feeds {
			if fs.Category != "" {
				seen[strings.ToLower(fs.Category)] = struct{}{}
			}
		}
	}

	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories
}

// DisplayName resolves a feed URL to a friendly source name via the domain
// table, falling back to the raw domain.
func (d *Directory) DisplayName(feedURL string) string {
	domain := Domain(feedURL)
	if domain == "" {
		return feedURL
	}

	if name, ok := d.sourceNames[domain]; ok {
		return name
	}

	// Some table keys are partial domains (e.g. "swarajya" for an S3-hosted feed).
	for key, name := range d.sourceNames {
		if strings.Contains(domain, key) || strings.Contains(feedURL, key) {
			return name
		}
	}

	return domain
}

func (d *Directory) PlaceholderImage(feedURL string) string {
	domain := Domain(feedURL)
	if img, ok := d.placeholderImages[domain]; ok {
		return img
	}
	return d.defaultImage
}

// Descriptors returns the UI-facing source list for one language.
func (d *Directory) Descriptors(lang string) []SourceInfo {
	feeds, ok := d.languages[d.NormalizeLanguage(lang)]
	if !ok {
		return nil
	}

	infos := make([]SourceInfo, 0, len(feeds))
	for _, fs := range feeds {
		infos = append(infos, SourceInfo{
			ID:   Domain(fs.URL),
			Name: d.DisplayName(fs.URL),
			URL:  fs.URL,
		})
	}
	return infos
}

// Domain extracts the lowercased host of a URL, without any www prefix.
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Host)
	host = strings.TrimPrefix(host, "www.")
	if i := strings.Index(host, ":"); i >= 0 {
		host = host[:i]
	}
	return host
}
