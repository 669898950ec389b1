// Watchly - Personalized Catalog Rows for Media Addons
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchly

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/watchly/internal/recommend"
)

// Config holds all application configuration loaded from defaults, an
// optional config file and environment variables.
//
// Configuration Categories:
//
//  1. Server: HTTP listener settings and environment mode
//  2. Addon: Manifest identity served at /manifest.json
//  3. TMDB: Metadata provider connection, caching and resilience
//  4. Scoring and Catalog: Recommendation tunables
//  5. Security: Rate limiting and CORS
//  6. Logging: Log level and output format
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Addon    AddonConfig    `koanf:"addon"`
	TMDB     TMDBConfig     `koanf:"tmdb"`
	Scoring  ScoringConfig  `koanf:"scoring"`
	Catalog  CatalogConfig  `koanf:"catalog"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // "development", "staging", "production"
}

// AddonConfig holds the manifest identity.
type AddonConfig struct {
	ID          string `koanf:"id"`
	Version     string `koanf:"version"`
	Name        string `koanf:"name"`
	Description string `koanf:"description"`
}

// TMDBConfig holds metadata provider settings.
type TMDBConfig struct {
	APIKey   string        `koanf:"api_key"`
	BaseURL  string        `koanf:"base_url"`
	Language string        `koanf:"language"`
	Timeout  time.Duration `koanf:"timeout"`

	// RequestsPerSecond bounds outbound TMDB calls. Zero disables limiting.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`

	// CacheTTL and CacheSize bound the genre cache.
	CacheTTL  time.Duration `koanf:"cache_ttl"`
	CacheSize int           `koanf:"cache_size"`

	// NegativeCacheTTL is how long "title not found" answers are cached.
	NegativeCacheTTL time.Duration `koanf:"negative_cache_ttl"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig holds circuit breaker settings for TMDB calls.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// ScoringConfig holds the interest score weights.
type ScoringConfig struct {
	CompletionWeight float64       `koanf:"completion_weight"`
	RecencyWeight    float64       `koanf:"recency_weight"`
	RewatchWeight    float64       `koanf:"rewatch_weight"`
	RepeatWeight     float64       `koanf:"repeat_weight"`
	LovedWeight      float64       `koanf:"loved_weight"`
	LikedWeight      float64       `koanf:"liked_weight"`
	RecentWindow     time.Duration `koanf:"recent_window"`
	RecencyHalfLife  time.Duration `koanf:"recency_half_life"`
}

// CatalogConfig holds row synthesis limits.
type CatalogConfig struct {
	GenreSampleSize   int `koanf:"genre_sample_size"`
	TopGenres         int `koanf:"top_genres"`
	NameMaxLength     int `koanf:"name_max_length"`
	LookupConcurrency int `koanf:"lookup_concurrency"`
}

// SecurityConfig holds rate limiting and CORS settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// Addr returns the host:port listen address.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// RecommendConfig converts the scoring and catalog sections into the
// recommendation engine configuration.
func (c *Config) RecommendConfig() *recommend.Config {
	return &recommend.Config{
		Scoring: recommend.ScoringConfig{
			CompletionWeight: c.Scoring.CompletionWeight,
			RecencyWeight:    c.Scoring.RecencyWeight,
			RewatchWeight:    c.Scoring.RewatchWeight,
			RepeatWeight:     c.Scoring.RepeatWeight,
			LovedWeight:      c.Scoring.LovedWeight,
			LikedWeight:      c.Scoring.LikedWeight,
			RecentWindow:     c.Scoring.RecentWindow,
			RecencyHalfLife:  c.Scoring.RecencyHalfLife,
		},
		Catalog: recommend.CatalogConfig{
			GenreSampleSize:   c.Catalog.GenreSampleSize,
			TopGenres:         c.Catalog.TopGenres,
			NameMaxLength:     c.Catalog.NameMaxLength,
			LookupConcurrency: c.Catalog.LookupConcurrency,
		},
	}
}

// Load loads configuration from defaults, config file and environment.
func Load() (*Config, error) {
	cfg, err := LoadWithKoanf()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
