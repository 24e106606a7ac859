package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Application configuration
	SourcesFile string `long:"sources-file" env:"SOURCES_FILE" default:"./configs/sources.yml" description:"YAML file with per-language feed tables"`
	Port        string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	WorkerCount int    `long:"worker-count" env:"WORKER_COUNT" default:"10" description:"Concurrent feed fetch workers"`

	// Fetch behavior
	FetchTimeout  int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"15" description:"Per-attempt feed fetch timeout in seconds"`
	FetchRetries  int    `long:"fetch-retries" env:"FETCH_RETRIES" default:"3" description:"Fetch attempts per feed"`
	RetryDelay    int    `long:"retry-delay" env:"RETRY_DELAY" default:"1" description:"Delay between fetch attempts in seconds"`
	CacheTTL      int    `long:"cache-ttl" env:"CACHE_TTL" default:"1800" description:"Article cache TTL in seconds"`
	MinGeneral    int    `long:"min-general" env:"MIN_GENERAL" default:"30" description:"Result count below which the fallback source is queried (no category)"`
	MinCategory   int    `long:"min-category" env:"MIN_CATEGORY" default:"10" description:"Result count below which the fallback source is queried (category-scoped)"`
	DefaultLimit  int    `long:"default-limit" env:"DEFAULT_LIMIT" default:"10" description:"Default page size / article limit"`
	FallbackNews  bool   `long:"fallback-news" env:"FALLBACK_NEWS" description:"Enable the Google News fallback source"`
	GeminiAPIKey  string `long:"gemini-api-key" env:"GEMINI_API_KEY" description:"Gemini API key for query categorization (optional)"`
	PrefetchLangs string `long:"prefetch-langs" env:"PREFETCH_LANGS" description:"Comma-separated languages to refresh in the background (optional)"`
	PrefetchEvery int    `long:"prefetch-every" env:"PREFETCH_EVERY" default:"1500" description:"Seconds between background refresh rounds"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"EchoNews/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Asia/Kolkata)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		SourcesFile:   raw.SourcesFile,
		Port:          raw.Port,
		WorkerCount:   raw.WorkerCount,
		FetchTimeout:  raw.FetchTimeout,
		FetchRetries:  raw.FetchRetries,
		RetryDelay:    raw.RetryDelay,
		CacheTTL:      raw.CacheTTL,
		MinGeneral:    raw.MinGeneral,
		MinCategory:   raw.MinCategory,
		DefaultLimit:  raw.DefaultLimit,
		FallbackNews:  raw.FallbackNews,
		GeminiAPIKey:  raw.GeminiAPIKey,
		PrefetchLangs: raw.PrefetchLangs,
		PrefetchEvery: raw.PrefetchEvery,
		UserAgent:     raw.UserAgent,
		Timezone:      raw.Timezone,
		Debug:         raw.Debug,
		Version:       GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
