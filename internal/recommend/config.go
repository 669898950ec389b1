// Watchly - Personalized Catalog Rows for Media Addons
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchly

package recommend

import (
	"fmt"
	"time"
)

// Config contains all tunables for scoring and catalog synthesis.
type Config struct {
	// Scoring contains the interest score weights.
	Scoring ScoringConfig `json:"scoring"`

	// Catalog contains row synthesis limits.
	Catalog CatalogConfig `json:"catalog"`
}

// ScoringConfig defines the interest score formula:
//
//	score = CompletionWeight * completion
//	      + RecencyWeight    * exp(-ln2 * age / RecencyHalfLife)
//	      + RewatchWeight    * [times_watched > 1]
//	      + RepeatWeight     * min(log2(times_watched), 4) / 4
//	      + LovedWeight      * [is_loved]
//	      + LikedWeight      * [is_liked]
//
// All weights must be non-negative so the score stays monotone in each input.
type ScoringConfig struct {
	CompletionWeight float64 `json:"completion_weight"`
	RecencyWeight    float64 `json:"recency_weight"`
	RewatchWeight    float64 `json:"rewatch_weight"`
	RepeatWeight     float64 `json:"repeat_weight"`
	LovedWeight      float64 `json:"loved_weight"`
	LikedWeight      float64 `json:"liked_weight"`

	// RecentWindow bounds how old last_watched may be for an item to count
	// as recent.
	// Default: 30 days.
	RecentWindow time.Duration `json:"recent_window"`

	// RecencyHalfLife is the age at which the recency term halves.
	// Default: 30 days.
	RecencyHalfLife time.Duration `json:"recency_half_life"`
}

// CatalogConfig contains row synthesis limits.
type CatalogConfig struct {
	// GenreSampleSize caps how many loved items per media type are looked up
	// when building genre rows.
	// Default: 5.
	GenreSampleSize int `json:"genre_sample_size"`

	// TopGenres is the number of genres combined into one genre row.
	// Default: 2.
	TopGenres int `json:"top_genres"`

	// NameMaxLength is the number of characters of an item name kept in a
	// row label before it is truncated.
	// Default: 25.
	NameMaxLength int `json:"name_max_length"`

	// LookupConcurrency limits in-flight metadata lookups. Zero issues every
	// lookup of a request at once.
	LookupConcurrency int `json:"lookup_concurrency"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			CompletionWeight: 0.40,
			RecencyWeight:    0.30,
			RewatchWeight:    0.15,
			RepeatWeight:     0.05,
			LovedWeight:      0.50,
			LikedWeight:      0.25,
			RecentWindow:     30 * 24 * time.Hour,
			RecencyHalfLife:  30 * 24 * time.Hour,
		},
		Catalog: CatalogConfig{
			GenreSampleSize:   5,
			TopGenres:         2,
			NameMaxLength:     25,
			LookupConcurrency: 0,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if err := c.Scoring.Validate(); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	if err := c.Catalog.Validate(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	return nil
}

// Validate checks the scoring weights and windows.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (s ScoringConfig) Validate() error {
	weights := map[string]float64{
		"completion_weight": s.CompletionWeight,
		"recency_weight":    s.RecencyWeight,
		"rewatch_weight":    s.RewatchWeight,
		"repeat_weight":     s.RepeatWeight,
		"loved_weight":      s.LovedWeight,
		"liked_weight":      s.LikedWeight,
	}
	for name, w := range weights {
		if w < 0 {
			return fmt.Errorf("%s must be >= 0, got %f", name, w)
		}
	}
	if s.RecentWindow <= 0 {
		return fmt.Errorf("recent_window must be positive, got %v", s.RecentWindow)
	}
	if s.RecencyHalfLife <= 0 {
		return fmt.Errorf("recency_half_life must be positive, got %v", s.RecencyHalfLife)
	}
	return nil
}

// Validate checks the catalog limits.
func (c CatalogConfig) Validate() error {
	if c.GenreSampleSize <= 0 {
		return fmt.Errorf("genre_sample_size must be positive, got %d", c.GenreSampleSize)
	}
	if c.TopGenres <= 0 {
		return fmt.Errorf("top_genres must be positive, got %d", c.TopGenres)
	}
	if c.NameMaxLength <= 0 {
		return fmt.Errorf("name_max_length must be positive, got %d", c.NameMaxLength)
	}
	if c.LookupConcurrency < 0 {
		return fmt.Errorf("lookup_concurrency must be >= 0, got %d", c.LookupConcurrency)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
