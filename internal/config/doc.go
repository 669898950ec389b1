// Watchly - Personalized Catalog Rows for Media Addons
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchly

/*
Package config provides centralized configuration management for Watchly.

# Configuration Sources

Configuration is layered with Koanf v2, later sources overriding earlier ones:
  - Built-in defaults (defaultConfig)
  - Optional YAML file (config.yaml, config.yml, /etc/watchly/config.yaml,
    or the path in CONFIG_PATH)
  - Environment variables

# Environment Variables

Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - PORT / HTTP_PORT: Listen port (default: 8000)
  - HTTP_TIMEOUT: Read/write timeout (default: 30s)
  - APP_ENV: development, staging or production (default: development)

Addon manifest:
  - ADDON_ID, ADDON_VERSION, ADDON_NAME, ADDON_DESCRIPTION

TMDB:
  - TMDB_API_KEY: API key (required)
  - TMDB_BASE_URL, TMDB_LANGUAGE, TMDB_TIMEOUT
  - TMDB_RATE_LIMIT, TMDB_BURST: Outbound request budget
  - TMDB_CACHE_TTL, TMDB_CACHE_SIZE, TMDB_NEGATIVE_CACHE_TTL
  - TMDB_BREAKER_TIMEOUT, TMDB_BREAKER_MIN_REQUESTS, TMDB_BREAKER_FAILURE_RATIO

Scoring and catalogs:
  - SCORING_COMPLETION_WEIGHT, SCORING_RECENCY_WEIGHT, SCORING_REWATCH_WEIGHT,
    SCORING_REPEAT_WEIGHT, SCORING_LOVED_WEIGHT, SCORING_LIKED_WEIGHT
  - SCORING_RECENT_WINDOW, SCORING_RECENCY_HALF_LIFE
  - CATALOG_GENRE_SAMPLE_SIZE, CATALOG_TOP_GENRES, CATALOG_NAME_MAX_LENGTH,
    CATALOG_LOOKUP_CONCURRENCY

Security:
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - CORS_ORIGINS: Comma-separated list of allowed origins

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	svc := recommend.NewCatalogService(cfg.RecommendConfig(), lookup, logger)

# Thread Safety

Config is read-only after Load returns and may be shared between goroutines.
*/
package config
