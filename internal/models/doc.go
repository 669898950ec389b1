// Watchly - Personalized Catalog Rows for Media Addons
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchly

/*
Package models defines the wire types of the HTTP API.

# Response Envelope

Every /api/v1 endpoint answers with APIResponse:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "2026-03-01T12:00:00Z", "query_time_ms": 3}
	}

Errors carry an APIError with a machine-readable code (VALIDATION_ERROR,
INVALID_JSON, RATE_LIMIT_EXCEEDED, SERVICE_UNAVAILABLE).

# Addon Surface

The manifest (/manifest.json) is served bare, without the envelope, because
addon clients read it directly.

# Request Bodies

CatalogRequest carries a library snapshot and optional user settings. Item
fields keep the library source names (_id, _mtime, state.lastWatched) so a
snapshot can be posted as exported.
*/
package models
