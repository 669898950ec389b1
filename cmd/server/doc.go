// Watchly - Personalized Catalog Rows for Media Addons
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchly

/*
Package main is the entry point for the Watchly server.

Watchly scores a user's library history and turns it into personalized
catalog rows for a media addon: "Because you Loved ..." and "Because you
Watched ..." rows for the best movie and series, plus genre rows built
from TMDB genres of recently loved titles.

# Application Architecture

	RootSupervisor ("watchly")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── Genre cache janitor
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config file and environment
 2. Logging: zerolog, configured from LOG_LEVEL, LOG_FORMAT and LOG_CALLER
 3. TMDB client: rate limited, wrapped in a gobreaker circuit breaker
 4. Genre resolver: LRU+TTL cache with singleflight deduplication
 5. Catalog service: scoring engine and catalog synthesizer
 6. HTTP server: chi router with CORS, rate limiting and metrics

# Configuration

The only required setting is TMDB_API_KEY. See the config package for the
complete list of environment variables.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains
in-flight requests for up to 10s before the process exits.

# Example Usage

	export TMDB_API_KEY=your-tmdb-key
	export PORT=8000
	./watchly
*/
package main
