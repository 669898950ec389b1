// Watchly - Personalized Catalog Rows for Media Addons
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchly

package recommend

import (
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Media types as reported by the library source.
const (
	TypeMovie  = "movie"
	TypeSeries = "series"
	TypeTV     = "tv"
)

// Library categories.
const (
	CategoryLoved   = "loved"
	CategoryWatched = "watched"
)

// NormalizeType maps the metadata "tv" type onto the addon "series" type.
// Other values are returned unchanged.
func NormalizeType(t string) string {
	if t == TypeTV {
		return TypeSeries
	}
	return t
}

// SourceType tags which library signal produced a scored item.
type SourceType string

const (
	// SourceLoved marks items the user explicitly loved.
	SourceLoved SourceType = "loved"
	// SourceLiked marks items the user liked.
	SourceLiked SourceType = "liked"
	// SourceWatched marks items that only have watch history.
	SourceWatched SourceType = "watched"
)

// Timestamp is a lenient RFC3339 timestamp. Null, empty, or unparseable
// values decode to the zero time, which means "never watched".
type Timestamp struct {
	time.Time
}

// UnmarshalJSON accepts RFC3339 strings (including a trailing "Z") and null.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		ts.Time = time.Time{}
		return nil //nolint:nilerr // malformed timestamps are treated as absent
	}

	s := strings.TrimSpace(*raw)
	if s == "" {
		ts.Time = time.Time{}
		return nil
	}

	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		ts.Time = time.Time{}
		return nil //nolint:nilerr // malformed timestamps are treated as absent
	}
	ts.Time = parsed
	return nil
}

// MarshalJSON encodes the zero time as null.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.UTC().Format(time.RFC3339Nano))
}

// WatchState is the playback state the library source keeps for an item.
// Durations and watch times are in milliseconds.
type WatchState struct {
	LastWatched        Timestamp `json:"lastWatched"`
	TimeWatched        int64     `json:"timeWatched"`
	TimeOffset         int64     `json:"timeOffset"`
	OverallTimeWatched int64     `json:"overallTimeWatched"`
	TimesWatched       int       `json:"timesWatched"`
	FlaggedWatched     int       `json:"flaggedWatched"`
	Duration           int64     `json:"duration"`
	VideoID            string    `json:"video_id,omitempty"`
	Watched            string    `json:"watched,omitempty"`
	NoNotif            bool      `json:"noNotif"`
	Season             int       `json:"season"`
	Episode            int       `json:"episode"`
}

// LibraryItem is a raw library record plus the enrichment flags added by
// the service. Only ID and Type are structurally required.
type LibraryItem struct {
	ID      string     `json:"_id" validate:"required"`
	Type    string     `json:"type" validate:"required,oneof=movie series tv"`
	Name    string     `json:"name"`
	State   WatchState `json:"state"`
	MTime   string     `json:"_mtime,omitempty"`
	Poster  string     `json:"poster,omitempty"`
	Temp    bool       `json:"temp"`
	Removed bool       `json:"removed"`

	IsLoved       bool    `json:"_is_loved"`
	IsLiked       bool    `json:"_is_liked"`
	InterestScore float64 `json:"_interest_score"`
}

// Library is a snapshot of the user's library keyed by category
// (CategoryLoved, CategoryWatched). It is read-only to this package.
type Library map[string][]LibraryItem

// Loved returns the loved category.
func (l Library) Loved() []LibraryItem {
	return l[CategoryLoved]
}

// Watched returns the watched category.
func (l Library) Watched() []LibraryItem {
	return l[CategoryWatched]
}

// ScoredItem is the scoring engine's view of one library item.
type ScoredItem struct {
	// Item is a copy of the source item with InterestScore populated.
	Item LibraryItem `json:"item"`

	// Score ranks items against each other; higher is more relevant.
	Score float64 `json:"score"`

	// CompletionRate is the watched fraction in [0, 1].
	CompletionRate float64 `json:"completion_rate"`

	IsRewatched bool       `json:"is_rewatched"`
	IsRecent    bool       `json:"is_recent"`
	SourceType  SourceType `json:"source_type"`
}

// CatalogExtra describes an optional catalog parameter. Rows built here
// never carry extras, but the field is always serialized as a list.
type CatalogExtra struct {
	Name       string   `json:"name"`
	IsRequired bool     `json:"isRequired,omitempty"`
	Options    []string `json:"options,omitempty"`
}

// CatalogRow describes one catalog shelf offered to the client.
type CatalogRow struct {
	Type  string         `json:"type"`
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Extra []CatalogExtra `json:"extra"`
}

func newCatalogRow(mediaType, id, name string) CatalogRow {
	return CatalogRow{
		Type:  mediaType,
		ID:    id,
		Name:  name,
		Extra: []CatalogExtra{},
	}
}
