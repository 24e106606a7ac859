package sources

// Static configuration types

type FeedSource struct {
	URL      string `yaml:"url"`
	Category string `yaml:"category,omitempty"`
}

type SourceInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type languageTable struct {
	Feeds []FeedSource `yaml:"feeds"`
}

type fileConfig struct {
	Languages         map[string]languageTable `yaml:"languages"`
	SourceNames       map[string]string        `yaml:"source_names"`
	PlaceholderImages map[string]string        `yaml:"placeholder_images"`
	DefaultImage      string                   `yaml:"default_image"`
}
