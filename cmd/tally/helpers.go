package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/ewisehart/tally/internal/config"
	"github.com/ewisehart/tally/internal/extract"
	"github.com/ewisehart/tally/internal/llm"
	"github.com/ewisehart/tally/internal/service"
	"github.com/ewisehart/tally/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// baseCurrency returns the configured reporting currency.
func baseCurrency() string {
	if c := viper.GetString("base_currency"); c != "" {
		return c
	}
	return "USD"
}

// newCascade builds the strategy cascade. The LLM stage is wired in only
// when a provider is configured; the returned cleanup closes its client.
func newCascade() (*extract.Cascade, func()) {
	cleanup := func() {}

	var completion extract.CompletionExtractor
	if provider := viper.GetString("llm.provider"); provider != "" {
		cfg := llm.Config{
			Provider:    provider,
			APIKey:      viper.GetString("llm.api_key"),
			Model:       viper.GetString("llm.model"),
			MaxRetries:  viper.GetInt("llm.max_retries"),
			RetryDelay:  viper.GetDuration("llm.retry_delay"),
			RateLimit:   viper.GetInt("llm.rate_limit"),
			Temperature: viper.GetFloat64("llm.temperature"),
			MaxTokens:   viper.GetInt("llm.max_tokens"),
		}

		extractor, err := llm.NewExtractor(cfg, baseCurrency(), slog.Default())
		if err != nil {
			slog.Warn("LLM provider unavailable, using deterministic strategies only",
				"provider", provider,
				"error", err)
		} else {
			completion = extractor
			cleanup = func() {
				if closeErr := extractor.Close(); closeErr != nil {
					slog.Warn("Failed to close LLM client", "error", closeErr)
				}
			}
		}
	}

	return extract.NewCascade(completion, nil, baseCurrency(), slog.Default()), cleanup
}
