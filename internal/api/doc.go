// Watchly - Personalized Catalog Rows for Media Addons
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchly

/*
Package api provides the HTTP surface of Watchly using the Chi router.

# Endpoints

Addon:
  - GET /manifest.json: Addon manifest with the base "Recommended" rows

Catalogs (JSON body: library snapshot plus optional settings):
  - POST /api/v1/catalogs: Interaction rows followed by genre rows
  - POST /api/v1/catalogs/genres: Genre rows only
  - POST /api/v1/score: Scored items, highest first

Operations:
  - GET /api/v1/health/live: Liveness probe
  - GET /api/v1/health/ready: Readiness probe (pings TMDB)
  - GET /metrics: Prometheus metrics

# Middleware Stack

Global: request id, real IP, panic recovery, CORS, access log.
API routes add: rate limiting (go-chi/httprate), security headers,
Prometheus metrics and gzip compression.

# Response Format

/api/v1 endpoints answer with models.APIResponse. Errors use the codes
VALIDATION_ERROR, INVALID_JSON, REQUEST_TOO_LARGE, RATE_LIMIT_EXCEEDED,
SERVICE_UNAVAILABLE, NOT_FOUND and METHOD_NOT_ALLOWED.
*/
package api
