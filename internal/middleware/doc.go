// Watchly - Personalized Catalog Rows for Media Addons
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchly

/*
Package middleware provides HTTP middleware for the Watchly API.

# Middleware

  - RequestID: Assigns X-Request-ID and seeds the logging context
  - PrometheusMetrics: Request count, latency and in-flight gauge per route
  - AccessLog: One structured zerolog line per request
  - Compression: gzip for clients that accept it

All middleware use the http.HandlerFunc -> http.HandlerFunc shape; the api
package adapts them for chi's r.Use.

# Usage

	handler := middleware.RequestID(
	    middleware.PrometheusMetrics(
	        middleware.Compression(myHandler),
	    ),
	)
*/
package middleware
