package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/RJohnPaul/EchoNews/app/api"
	"github.com/RJohnPaul/EchoNews/app/cache"
	"github.com/RJohnPaul/EchoNews/app/cfg"
	"github.com/RJohnPaul/EchoNews/app/feed"
	"github.com/RJohnPaul/EchoNews/app/gemini"
	"github.com/RJohnPaul/EchoNews/app/gnews"
	"github.com/RJohnPaul/EchoNews/app/news"
	"github.com/RJohnPaul/EchoNews/app/sources"
	"github.com/RJohnPaul/EchoNews/app/tasks"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Load configuration from environment variables and command-line flags
	appConfig, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appConfig == nil {
		// Help was shown, exit gracefully
		return
	}

	if appConfig.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	log.Printf("Starting EchoNews server (version %s)...", appConfig.Version)

	// Load feed source tables
	log.Printf("Loading feed sources from %s...", appConfig.SourcesFile)
	directory, err := sources.Load(appConfig.SourcesFile)
	if err != nil {
		log.Fatalf("Failed to load feed sources: %v", err)
	}
	log.Printf("Loaded feed tables for %d languages", len(directory.Languages()))

	// Initialize core components
	httpClient := &http.Client{}

	fetcher := feed.NewFetcher(httpClient, directory, feed.FetcherOptions{
		UserAgent:  appConfig.UserAgent,
		Attempts:   appConfig.FetchRetries,
		RetryDelay: time.Duration(appConfig.RetryDelay) * time.Second,
		Timeout:    time.Duration(appConfig.FetchTimeout) * time.Second,
	})

	var fallback feed.FallbackSource
	if appConfig.FallbackNews {
		fallback = gnews.NewClient(httpClient, appConfig.UserAgent)
		log.Println("Google News fallback source enabled")
	}

	coordinator := feed.NewCoordinator(fetcher, fallback,
		appConfig.WorkerCount, appConfig.MinGeneral, appConfig.MinCategory)

	store := cache.New(time.Duration(appConfig.CacheTTL) * time.Second)

	var oracle news.CategoryOracle
	if appConfig.GeminiAPIKey != "" {
		geminiClient, err := gemini.NewClient(context.Background(), appConfig.GeminiAPIKey)
		if err != nil {
			log.Printf("Warning: Gemini client unavailable, continuing without categorization: %v", err)
		} else {
			defer geminiClient.Close()
			oracle = geminiClient
			log.Println("Gemini query categorization enabled")
		}
	}

	service := news.NewService(directory, coordinator, store, oracle, appConfig.DefaultLimit)

	// Initialize and start background prefetch scheduler
	var scheduler tasks.TaskSchedulerInterface
	if languages := prefetchLanguages(appConfig.PrefetchLangs); len(languages) > 0 {
		log.Printf("Starting background prefetch for languages: %s", strings.Join(languages, ", "))
		scheduler = tasks.NewScheduler(service, languages,
			time.Duration(appConfig.PrefetchEvery)*time.Second, appConfig.WorkerCount)
		scheduler.Start()
		defer scheduler.Stop()
	}

	// Initialize HTTP server
	log.Println("Initializing HTTP server...")
	apiHandler := api.NewHandler(service, directory, appConfig.Version)
	server := api.NewServer(apiHandler)

	// Create HTTP server with timeouts
	httpServer := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start HTTP server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on port %s", appConfig.Port)
		log.Printf("API endpoints available:")
		log.Printf("  News:          http://localhost:%s/api/news (POST)", appConfig.Port)
		log.Printf("  News (paged):  http://localhost:%s/api/v2/news (POST)", appConfig.Port)
		log.Printf("  Sources:       http://localhost:%s/api/news/sources/<language>", appConfig.Port)
		log.Printf("  Categories:    http://localhost:%s/api/news/categories", appConfig.Port)
		log.Printf("  Health check:  http://localhost:%s/health", appConfig.Port)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Println("EchoNews server started successfully!")
	log.Println("Press Ctrl+C to shutdown gracefully...")

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-serverErrChan:
		log.Printf("Server error: %v", err)
	}

	// Graceful shutdown
	log.Println("Shutting down server gracefully...")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped")
	}

	// Scheduler is stopped via defer
	log.Println("EchoNews server shutdown complete")
}

func prefetchLanguages(raw string) []string {
	if raw == "" {
		return nil
	}
	var languages []string
	for _, lang := range strings.Split(raw, ",") {
		if lang = strings.TrimSpace(lang); lang != "" {
			languages = append(languages, lang)
		}
	}
	return languages
}
