// Watchly - Personalized Catalog Rows for Media Addons
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchly

package recommend

import (
	"testing"

	"github.com/goccy/go-json"
)

func boolPtr(b bool) *bool { return &b }

func TestCatalogSetting_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantEnabled bool
	}{
		{"missing enabled defaults to true", `{"id":"watchly.genre"}`, true},
		{"explicit false", `{"id":"watchly.genre","enabled":false}`, false},
		{"explicit true", `{"id":"watchly.genre","enabled":true}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c CatalogSetting
			if err := json.Unmarshal([]byte(tt.input), &c); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if c.Enabled != tt.wantEnabled {
				t.Errorf("Enabled = %v, want %v", c.Enabled, tt.wantEnabled)
			}
		})
	}
}

func TestUserSettings_Resolve(t *testing.T) {
	settings := &UserSettings{Catalogs: []CatalogSetting{
		{ID: RowIDGenre, Enabled: true, Name: "Picked for you"},
		{ID: RowIDRecommended, Enabled: true, EnabledSeries: boolPtr(false)},
		{ID: RowIDGenre, Enabled: false},
	}}

	t.Run("first match wins and name overrides", func(t *testing.T) {
		rc := settings.Resolve(RowIDGenre, LabelGenreDefault, true, true)
		if !rc.Enabled || rc.Name != "Picked for you" {
			t.Errorf("Resolve() = %+v", rc)
		}
	})

	t.Run("empty name keeps default", func(t *testing.T) {
		rc := settings.Resolve(RowIDRecommended, "Recommended", true, true)
		if rc.Name != "Recommended" {
			t.Errorf("Name = %q, want Recommended", rc.Name)
		}
		if !rc.EnabledMovie || rc.EnabledSeries {
			t.Errorf("EnabledMovie = %v, EnabledSeries = %v", rc.EnabledMovie, rc.EnabledSeries)
		}
	})

	t.Run("missing setting uses defaults", func(t *testing.T) {
		rc := settings.Resolve("watchly.unknown", "Default", false, true)
		if !rc.Enabled || rc.Name != "Default" || rc.EnabledMovie || !rc.EnabledSeries {
			t.Errorf("Resolve() = %+v", rc)
		}
	})

	t.Run("nil settings use defaults", func(t *testing.T) {
		var nilSettings *UserSettings
		rc := nilSettings.Resolve(RowIDGenre, LabelGenreDefault, true, true)
		if !rc.Enabled || rc.Name != LabelGenreDefault {
			t.Errorf("Resolve() = %+v", rc)
		}
	})
}

func TestCatalogsFromConfig(t *testing.T) {
	tests := []struct {
		name      string
		settings  *UserSettings
		wantTypes []string
		wantName  string
	}{
		{
			name:      "no settings emits both types",
			settings:  nil,
			wantTypes: []string{TypeMovie, TypeSeries},
			wantName:  "Recommended",
		},
		{
			name: "disabled emits nothing",
			settings: &UserSettings{Catalogs: []CatalogSetting{
				{ID: RowIDRecommended, Enabled: false},
			}},
			wantTypes: []string{},
		},
		{
			name: "series switched off",
			settings: &UserSettings{Catalogs: []CatalogSetting{
				{ID: RowIDRecommended, Enabled: true, Name: "For You", EnabledSeries: boolPtr(false)},
			}},
			wantTypes: []string{TypeMovie},
			wantName:  "For You",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := CatalogsFromConfig(tt.settings, RowIDRecommended, "Recommended", true, true)
			if len(rows) != len(tt.wantTypes) {
				t.Fatalf("len = %d, want %d", len(rows), len(tt.wantTypes))
			}
			for i, row := range rows {
				if row.Type != tt.wantTypes[i] {
					t.Errorf("rows[%d].Type = %q, want %q", i, row.Type, tt.wantTypes[i])
				}
				if row.ID != RowIDRecommended || row.Name != tt.wantName {
					t.Errorf("rows[%d] = %+v", i, row)
				}
				if row.Extra == nil {
					t.Errorf("rows[%d].Extra is nil, want empty list", i)
				}
			}
		})
	}
}
