// Watchly - Personalized Catalog Rows for Media Addons
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchly

package api

import (
	"context"
	"time"

	"github.com/tomtom215/watchly/internal/config"
	"github.com/tomtom215/watchly/internal/recommend"
)

// MetadataHealth reports on the metadata provider behind genre rows.
// *tmdb.CircuitBreakerClient implements it.
type MetadataHealth interface {
	Ping(ctx context.Context) error
	State() string
}

// Handler serves the Watchly endpoints.
type Handler struct {
	catalog   *recommend.CatalogService
	config    *config.Config
	metadata  MetadataHealth
	startTime time.Time

	// readyTimeout bounds the upstream ping of the readiness probe.
	readyTimeout time.Duration
}

// NewHandler creates a handler.
//
// Dependencies:
//   - catalog: Scoring and catalog synthesis
//   - cfg: Application configuration (addon identity for the manifest)
//   - metadata: Metadata provider health, may be nil
func NewHandler(catalog *recommend.CatalogService, cfg *config.Config, metadata MetadataHealth) *Handler {
	return &Handler{
		catalog:      catalog,
		config:       cfg,
		metadata:     metadata,
		startTime:    time.Now(),
		readyTimeout: 3 * time.Second,
	}
}
