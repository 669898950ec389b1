// Watchly - Personalized Catalog Rows for Media Addons
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchly

package config

import (
	"testing"
	"time"

	"github.com/tomtom215/watchly/internal/recommend"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.TMDB.APIKey = "test-key"
	return cfg
}

func TestConfig_RecommendConfigMatchesEngineDefaults(t *testing.T) {
	got := validConfig().RecommendConfig()
	want := recommend.DefaultConfig()

	if got.Scoring != want.Scoring {
		t.Errorf("Scoring = %+v, want %+v", got.Scoring, want.Scoring)
	}
	if got.Catalog != want.Catalog {
		t.Errorf("Catalog = %+v, want %+v", got.Catalog, want.Catalog)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults with key", func(*Config) {}, false},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"zero timeout", func(c *Config) { c.Server.Timeout = 0 }, true},
		{"empty addon id", func(c *Config) { c.Addon.ID = " " }, true},
		{"negative rate", func(c *Config) { c.TMDB.RequestsPerSecond = -1 }, true},
		{"unlimited rate", func(c *Config) { c.TMDB.RequestsPerSecond = 0 }, false},
		{"zero cache size", func(c *Config) { c.TMDB.CacheSize = 0 }, true},
		{"negative loved weight", func(c *Config) { c.Scoring.LovedWeight = -1 }, true},
		{"zero half life", func(c *Config) { c.Scoring.RecencyHalfLife = 0 }, true},
		{"zero top genres", func(c *Config) { c.Catalog.TopGenres = 0 }, true},
		{"zero rate limit", func(c *Config) { c.Security.RateLimitReqs = 0 }, true},
		{"rate limit disabled", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, false},
		{"console logs", func(c *Config) { c.Logging.Format = "console" }, false},
		{"xml logs", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"staging", func(c *Config) { c.Server.Environment = "staging" }, false},
		{"short negative cache", func(c *Config) { c.TMDB.NegativeCacheTTL = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ShouldWarnAboutCORS(t *testing.T) {
	cfg := validConfig()
	if cfg.ShouldWarnAboutCORS() {
		t.Error("development should not warn")
	}

	cfg.Server.Environment = "production"
	if !cfg.ShouldWarnAboutCORS() {
		t.Error("production with wildcard should warn")
	}
}

func TestServerConfig_Addr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 8000}
	if got := s.Addr(); got != "127.0.0.1:8000" {
		t.Errorf("Addr() = %q", got)
	}
}
