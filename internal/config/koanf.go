// Watchly - Personalized Catalog Rows for Media Addons
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchly

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/watchly/config.yaml",
	"/etc/watchly/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8000,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Addon: AddonConfig{
			ID:          "com.bimal.watchly",
			Version:     "0.1.0",
			Name:        "Watchly",
			Description: "Movie and series recommendations based on your Stremio library",
		},
		TMDB: TMDBConfig{
			APIKey:            "",
			BaseURL:           "https://api.themoviedb.org/3",
			Language:          "en-US",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 40,
			Burst:             20,
			CacheTTL:          24 * time.Hour,
			CacheSize:         10000,
			NegativeCacheTTL:  time.Hour,
			Breaker: BreakerConfig{
				MaxRequests:  3,
				Interval:     time.Minute,
				Timeout:      30 * time.Second,
				MinRequests:  10,
				FailureRatio: 0.6,
			},
		},
		Scoring: ScoringConfig{
			CompletionWeight: 0.40,
			RecencyWeight:    0.30,
			RewatchWeight:    0.15,
			RepeatWeight:     0.05,
			LovedWeight:      0.50,
			LikedWeight:      0.25,
			RecentWindow:     30 * 24 * time.Hour,
			RecencyHalfLife:  30 * 24 * time.Hour,
		},
		Catalog: CatalogConfig{
			GenreSampleSize:   5,
			TopGenres:         2,
			NameMaxLength:     25,
			LookupConcurrency: 0,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// TMDB_API_KEY -> tmdb.api_key, PORT -> server.port
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings while the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Server mappings
	"port":         "server.port",
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"app_env":      "server.environment",
	"environment":  "server.environment",

	// Addon mappings
	"addon_id":          "addon.id",
	"addon_version":     "addon.version",
	"addon_name":        "addon.name",
	"addon_description": "addon.description",

	// TMDB mappings
	"tmdb_api_key":               "tmdb.api_key",
	"tmdb_base_url":              "tmdb.base_url",
	"tmdb_language":              "tmdb.language",
	"tmdb_timeout":               "tmdb.timeout",
	"tmdb_rate_limit":            "tmdb.requests_per_second",
	"tmdb_burst":                 "tmdb.burst",
	"tmdb_cache_ttl":             "tmdb.cache_ttl",
	"tmdb_cache_size":            "tmdb.cache_size",
	"tmdb_negative_cache_ttl":    "tmdb.negative_cache_ttl",
	"tmdb_breaker_max_requests":  "tmdb.breaker.max_requests",
	"tmdb_breaker_interval":      "tmdb.breaker.interval",
	"tmdb_breaker_timeout":       "tmdb.breaker.timeout",
	"tmdb_breaker_min_requests":  "tmdb.breaker.min_requests",
	"tmdb_breaker_failure_ratio": "tmdb.breaker.failure_ratio",

	// Scoring mappings
	"scoring_completion_weight": "scoring.completion_weight",
	"scoring_recency_weight":    "scoring.recency_weight",
	"scoring_rewatch_weight":    "scoring.rewatch_weight",
	"scoring_repeat_weight":     "scoring.repeat_weight",
	"scoring_loved_weight":      "scoring.loved_weight",
	"scoring_liked_weight":      "scoring.liked_weight",
	"scoring_recent_window":     "scoring.recent_window",
	"scoring_recency_half_life": "scoring.recency_half_life",

	// Catalog mappings
	"catalog_genre_sample_size":  "catalog.genre_sample_size",
	"catalog_top_genres":         "catalog.top_genres",
	"catalog_name_max_length":    "catalog.name_max_length",
	"catalog_lookup_concurrency": "catalog.lookup_concurrency",

	// Security mappings
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return an empty key and are skipped so unrelated
// environment does not pollute the config.
//
// Examples:
//   - TMDB_API_KEY -> tmdb.api_key
//   - PORT -> server.port
//   - APP_ENV -> server.environment
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
