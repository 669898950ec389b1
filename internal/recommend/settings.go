// Watchly - Personalized Catalog Rows for Media Addons
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchly

package recommend

import (
	"github.com/goccy/go-json"
)

// Well-known catalog row ids.
const (
	RowIDRecommended = "watchly.rec"
	RowIDLoved       = "watchly.loved"
	RowIDWatched     = "watchly.watched"
	RowIDGenre       = "watchly.genre"
)

// Row labels used when user settings do not override them.
const (
	LabelRecommended  = "Recommended"
	LabelLoved        = "Because you Loved"
	LabelWatched      = "Because you Watched"
	LabelGenreDefault = "You might also Like"
)

// CatalogSetting is the user's configuration for one catalog row.
type CatalogSetting struct {
	ID      string `json:"id" validate:"required"`
	Name    string `json:"name,omitempty"`
	Enabled bool   `json:"enabled"`

	// EnabledMovie and EnabledSeries are optional per-media-type switches.
	// Nil means "use the row's default".
	EnabledMovie  *bool `json:"enabled_movie,omitempty"`
	EnabledSeries *bool `json:"enabled_series,omitempty"`
}

// UnmarshalJSON decodes a setting, treating a missing "enabled" as true.
func (c *CatalogSetting) UnmarshalJSON(data []byte) error {
	type plain CatalogSetting
	out := plain{Enabled: true}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*c = CatalogSetting(out)
	return nil
}

// UserSettings is the ordered list of per-row settings.
type UserSettings struct {
	Catalogs []CatalogSetting `json:"catalogs" validate:"dive"`
}

// Find returns the first setting with the given row id.
func (s *UserSettings) Find(id string) (CatalogSetting, bool) {
	if s == nil {
		return CatalogSetting{}, false
	}
	for _, c := range s.Catalogs {
		if c.ID == id {
			return c, true
		}
	}
	return CatalogSetting{}, false
}

// RowConfig is a resolved row setting with defaults applied.
type RowConfig struct {
	Enabled       bool
	Name          string
	EnabledMovie  bool
	EnabledSeries bool
}

// Resolve applies the user's setting for a row on top of the given defaults.
// A missing setting leaves the row enabled with the default name.
func (s *UserSettings) Resolve(id, defaultName string, defaultMovie, defaultSeries bool) RowConfig {
	rc := RowConfig{
		Enabled:       true,
		Name:          defaultName,
		EnabledMovie:  defaultMovie,
		EnabledSeries: defaultSeries,
	}

	c, ok := s.Find(id)
	if !ok {
		return rc
	}

	rc.Enabled = c.Enabled
	if c.Name != "" {
		rc.Name = c.Name
	}
	if c.EnabledMovie != nil {
		rc.EnabledMovie = *c.EnabledMovie
	}
	if c.EnabledSeries != nil {
		rc.EnabledSeries = *c.EnabledSeries
	}
	return rc
}

// CatalogsFromConfig builds the static rows for a catalog id: one per
// enabled media type, or none when the row is disabled.
func CatalogsFromConfig(settings *UserSettings, id, defaultName string, defaultMovie, defaultSeries bool) []CatalogRow {
	rc := settings.Resolve(id, defaultName, defaultMovie, defaultSeries)
	rows := []CatalogRow{}
	if !rc.Enabled {
		return rows
	}
	if rc.EnabledMovie {
		rows = append(rows, newCatalogRow(TypeMovie, id, rc.Name))
	}
	if rc.EnabledSeries {
		rows = append(rows, newCatalogRow(TypeSeries, id, rc.Name))
	}
	return rows
}
