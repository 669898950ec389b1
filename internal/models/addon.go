// Watchly - Personalized Catalog Rows for Media Addons
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchly

package models

import (
	"github.com/tomtom215/watchly/internal/recommend"
)

// Manifest is the addon descriptor served at /manifest.json.
type Manifest struct {
	ID          string                 `json:"id"`
	Version     string                 `json:"version"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Resources   []ManifestResource     `json:"resources"`
	Types       []string               `json:"types"`
	IDPrefixes  []string               `json:"idPrefixes"`
	Catalogs    []recommend.CatalogRow `json:"catalogs"`
}

// ManifestResource declares one resource the addon serves.
type ManifestResource struct {
	Name       string   `json:"name"`
	Types      []string `json:"types"`
	IDPrefixes []string `json:"idPrefixes"`
}

// LibraryRequest is a library snapshot split into categories.
type LibraryRequest struct {
	Loved   []recommend.LibraryItem `json:"loved" validate:"dive"`
	Watched []recommend.LibraryItem `json:"watched" validate:"dive"`
}

// Library converts the request into the engine's category map. Items sent
// under "loved" are flagged as loved even when the client omits _is_loved.
// The request slices are not modified.
func (l *LibraryRequest) Library() recommend.Library {
	loved := make([]recommend.LibraryItem, len(l.Loved))
	copy(loved, l.Loved)
	for i := range loved {
		loved[i].IsLoved = true
	}

	return recommend.Library{
		recommend.CategoryLoved:   loved,
		recommend.CategoryWatched: l.Watched,
	}
}

// CatalogRequest is the body of the catalog and score endpoints.
//
// Example:
//
//	{
//	  "library": {
//	    "loved": [{"_id": "tt0133093", "type": "movie", "name": "The Matrix"}],
//	    "watched": []
//	  },
//	  "settings": {"catalogs": [{"id": "watchly.loved", "enabled": true}]}
//	}
type CatalogRequest struct {
	Library  LibraryRequest          `json:"library"`
	Settings *recommend.UserSettings `json:"settings,omitempty"`
}

// CatalogsResponse lists synthesized catalog rows.
type CatalogsResponse struct {
	Catalogs []recommend.CatalogRow `json:"catalogs"`
	Count    int                    `json:"count"`
}

// ScoreResponse lists scored items, highest score first.
type ScoreResponse struct {
	Items []recommend.ScoredItem `json:"items"`
	Count int                    `json:"count"`
}

// HealthResponse reports process health.
type HealthResponse struct {
	Status         string            `json:"status"`
	Version        string            `json:"version"`
	Uptime         float64           `json:"uptime_seconds"`
	Checks         map[string]string `json:"checks,omitempty"`
	CircuitBreaker string            `json:"circuit_breaker,omitempty"`
}
