// Watchly - Personalized Catalog Rows for Media Addons
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchly

package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/watchly/internal/logging"
	"github.com/tomtom215/watchly/internal/metrics"
	"github.com/tomtom215/watchly/internal/models"
	"github.com/tomtom215/watchly/internal/recommend"
)

// Manifest content that does not come from configuration.
var (
	manifestTypes      = []string{recommend.TypeMovie, recommend.TypeSeries}
	manifestIDPrefixes = []string{"tt"}
)

// Manifest serves the addon descriptor. It is served without the API
// envelope because addon clients read it directly.
func (h *Handler) Manifest(w http.ResponseWriter, _ *http.Request) {
	addon := h.config.Addon

	respondJSON(w, http.StatusOK, models.Manifest{
		ID:          addon.ID,
		Version:     addon.Version,
		Name:        addon.Name,
		Description: addon.Description,
		Resources: []models.ManifestResource{
			{Name: "catalog", Types: manifestTypes, IDPrefixes: manifestIDPrefixes},
			{Name: "stream", Types: manifestTypes, IDPrefixes: manifestIDPrefixes},
		},
		Types:      manifestTypes,
		IDPrefixes: manifestIDPrefixes,
		Catalogs:   recommend.CatalogsFromConfig(nil, recommend.RowIDRecommended, recommend.LabelRecommended, true, true),
	})
}

// catalogBuilder is one of the CatalogService row builders.
type catalogBuilder func(ctx context.Context, library recommend.Library, settings *recommend.UserSettings) []recommend.CatalogRow

// Catalogs synthesizes interaction rows followed by genre rows.
func (h *Handler) Catalogs(w http.ResponseWriter, r *http.Request) {
	h.serveCatalogs(w, r, "dynamic", h.catalog.DynamicCatalogs)
}

// GenreCatalogs synthesizes genre rows only.
func (h *Handler) GenreCatalogs(w http.ResponseWriter, r *http.Request) {
	h.serveCatalogs(w, r, "genre", h.catalog.GenreBasedCatalogs)
}

func (h *Handler) serveCatalogs(w http.ResponseWriter, r *http.Request, operation string, build catalogBuilder) {
	start := time.Now()

	req, ok := h.decodeCatalogRequest(w, r)
	if !ok {
		return
	}

	rows := build(r.Context(), req.Library.Library(), req.Settings)
	if rows == nil {
		rows = []recommend.CatalogRow{}
	}

	metrics.RecordCatalogGeneration(operation, time.Since(start), rowsByKind(rows))
	logging.Ctx(r.Context()).Info().
		Str("operation", operation).
		Int("loved", len(req.Library.Loved)).
		Int("watched", len(req.Library.Watched)).
		Int("rows", len(rows)).
		Dur("duration", time.Since(start)).
		Msg("Catalogs generated")

	respondSuccess(w, models.CatalogsResponse{Catalogs: rows, Count: len(rows)}, start)
}

// Score runs every library item through the scoring engine. Items appearing
// in several categories are reported once.
func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, ok := h.decodeCatalogRequest(w, r)
	if !ok {
		return
	}

	items := h.catalog.ScoreLibrary(req.Library.Library())
	if items == nil {
		items = []recommend.ScoredItem{}
	}
	metrics.RecordItemsScored(len(items))

	respondSuccess(w, models.ScoreResponse{Items: items, Count: len(items)}, start)
}

func (h *Handler) decodeCatalogRequest(w http.ResponseWriter, r *http.Request) (*models.CatalogRequest, bool) {
	var req models.CatalogRequest
	if !decodeJSONBody(w, r, &req) {
		return nil, false
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return nil, false
	}
	return &req, true
}

// rowsByKind counts rows per id family for metrics:
// "watchly.loved.tt1" counts as "loved", "watchly.genre.18_28" as "genre".
func rowsByKind(rows []recommend.CatalogRow) map[string]int {
	counts := make(map[string]int, 3)
	for _, row := range rows {
		kind := "other"
		switch {
		case strings.HasPrefix(row.ID, recommend.RowIDLoved+"."):
			kind = "loved"
		case strings.HasPrefix(row.ID, recommend.RowIDWatched+"."):
			kind = "watched"
		case strings.HasPrefix(row.ID, recommend.RowIDGenre+"."):
			kind = "genre"
		}
		counts[kind]++
	}
	return counts
}
