package cfg

type Cfg struct {
	// Application configuration
	SourcesFile string
	Port        string
	WorkerCount int

	// Fetch behavior
	FetchTimeout  int // seconds, per attempt
	FetchRetries  int
	RetryDelay    int // seconds between attempts
	CacheTTL      int // seconds
	MinGeneral    int // fallback threshold for uncategorized requests
	MinCategory   int // fallback threshold for category-scoped requests
	DefaultLimit  int // page size / max_articles default
	FallbackNews  bool
	GeminiAPIKey  string
	PrefetchLangs string // comma-separated language codes to keep warm
	PrefetchEvery int    // seconds between prefetch rounds

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
