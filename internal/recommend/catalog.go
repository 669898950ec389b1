// Watchly - Personalized Catalog Rows for Media Addons
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchly

package recommend

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/watchly/internal/logging"
)

// imdbPrefix marks ids in the library source's IMDb-style format.
const imdbPrefix = "tt"

// ellipsis is appended to truncated item names.
const ellipsis = "..."

// MediaKind is the metadata service's media type.
type MediaKind string

const (
	MediaKindMovie MediaKind = "movie"
	MediaKindTV    MediaKind = "tv"
)

// KindForType maps a library item type onto the metadata media kind.
func KindForType(itemType string) MediaKind {
	if itemType == TypeMovie {
		return MediaKindMovie
	}
	return MediaKindTV
}

// GenreLookup resolves an external id to TMDB genre names.
// Implementations must be safe for concurrent use.
type GenreLookup interface {
	LookupGenres(ctx context.Context, externalID string, kind MediaKind) ([]string, error)
}

// GenreLookupFunc adapts a function to the GenreLookup interface.
type GenreLookupFunc func(ctx context.Context, externalID string, kind MediaKind) ([]string, error)

// LookupGenres calls f.
func (f GenreLookupFunc) LookupGenres(ctx context.Context, externalID string, kind MediaKind) ([]string, error) {
	return f(ctx, externalID, kind)
}

// CatalogService synthesizes catalog rows from a library snapshot.
// It borrows the snapshot read-only; every returned item is a new record.
type CatalogService struct {
	cfg    *Config
	scorer *Scorer
	lookup GenreLookup
	logger zerolog.Logger
	now    func() time.Time
}

// NewCatalogService creates a catalog service. A nil cfg uses DefaultConfig.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCatalogService(cfg *Config, lookup GenreLookup, logger zerolog.Logger) *CatalogService {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &CatalogService{
		cfg:    cfg.Clone(),
		scorer: NewScorer(cfg.Scoring),
		lookup: lookup,
		logger: logger,
		now:    time.Now,
	}
}

// SetClock replaces the evaluation clock. Used by tests.
func (s *CatalogService) SetClock(now func() time.Time) {
	s.now = now
}

// Config returns a copy of the service configuration.
func (s *CatalogService) Config() *Config {
	return s.cfg.Clone()
}

// ScoreLibrary merges the loved and watched lists, deduplicates them by id
// and scores every unique item. The result is sorted by descending score;
// ties keep merge order.
//
// Deduplication keeps the position of the first occurrence of an id and the
// record of its last occurrence.
func (s *CatalogService) ScoreLibrary(library Library) []ScoredItem {
	merged := make([]LibraryItem, 0, len(library.Loved())+len(library.Watched()))
	merged = append(merged, library.Loved()...)
	merged = append(merged, library.Watched()...)

	index := make(map[string]int, len(merged))
	unique := make([]LibraryItem, 0, len(merged))
	for i := range merged {
		if pos, ok := index[merged[i].ID]; ok {
			unique[pos] = merged[i]
			continue
		}
		index[merged[i].ID] = len(unique)
		unique = append(unique, merged[i])
	}

	now := s.now()
	scored := make([]ScoredItem, 0, len(unique))
	for i := range unique {
		scored = append(scored, s.scorer.ProcessItemAt(unique[i], now))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// InteractionCatalogs builds the "Because you ..." rows: at most one row for
// the best movie and one for the best series, in that order.
func (s *CatalogService) InteractionCatalogs(library Library) []CatalogRow {
	scored := s.ScoreLibrary(library)

	var topMovie, topSeries *ScoredItem
	for i := range scored {
		switch NormalizeType(scored[i].Item.Type) {
		case TypeMovie:
			if topMovie == nil {
				topMovie = &scored[i]
			}
		case TypeSeries:
			if topSeries == nil {
				topSeries = &scored[i]
			}
		}
		if topMovie != nil && topSeries != nil {
			break
		}
	}

	rows := []CatalogRow{}
	for _, candidate := range []*ScoredItem{topMovie, topSeries} {
		if candidate == nil {
			continue
		}
		label, prefix := LabelWatched, RowIDWatched
		if candidate.Item.IsLoved {
			label, prefix = LabelLoved, RowIDLoved
		}
		rows = append(rows, s.BuildCatalogEntry(candidate.Item, label, prefix))
	}
	return rows
}

// BuildCatalogEntry builds the row descriptor for one source item.
// IMDb-style ids under the loved or watched prefixes become
// "{prefix}.{id}"; every other id is used as is.
//
//nolint:gocritic // hugeParam: item passed by value, read-only
func (s *CatalogService) BuildCatalogEntry(item LibraryItem, label, rowPrefix string) CatalogRow {
	id := item.ID
	if strings.HasPrefix(id, imdbPrefix) && (rowPrefix == RowIDLoved || rowPrefix == RowIDWatched) {
		id = rowPrefix + "." + id
	}
	return newCatalogRow(NormalizeType(item.Type), id, label+" "+TruncateName(item.Name, s.cfg.Catalog.NameMaxLength))
}

// TruncateName shortens names longer than maxLen characters to their first
// maxLen characters followed by "...".
func TruncateName(name string, maxLen int) string {
	runes := []rune(name)
	if maxLen <= 0 || len(runes) <= maxLen {
		return name
	}
	return string(runes[:maxLen]) + ellipsis
}

// GenreBasedCatalogs builds at most one movie and one series row named after
// the user's most frequent genres among recently loved items.
//
// Lookups for both media types run concurrently. A failed lookup is logged
// and contributes no genres; it never fails the batch.
func (s *CatalogService) GenreBasedCatalogs(ctx context.Context, library Library, settings *UserSettings) []CatalogRow {
	rc := settings.Resolve(RowIDGenre, LabelGenreDefault, true, true)
	if !rc.Enabled {
		return []CatalogRow{}
	}

	var movies, series []LibraryItem
	for _, item := range library.Loved() {
		switch NormalizeType(item.Type) {
		case TypeMovie:
			movies = append(movies, item)
		case TypeSeries:
			series = append(series, item)
		}
	}
	movies = headItems(movies, s.cfg.Catalog.GenreSampleSize)
	series = headItems(series, s.cfg.Catalog.GenreSampleSize)

	movieGenres, seriesGenres := s.fetchGenres(ctx, movies, series)

	rows := []CatalogRow{}
	if ids := s.topGenreIDs(movieGenres, GenreMapFor(KindForType(TypeMovie))); len(ids) > 0 {
		rows = append(rows, newCatalogRow(TypeMovie, genreRowID(ids), rc.Name))
	}
	if ids := s.topGenreIDs(seriesGenres, GenreMapFor(KindForType(TypeSeries))); len(ids) > 0 {
		rows = append(rows, newCatalogRow(TypeSeries, genreRowID(ids), rc.Name))
	}
	return rows
}

// DynamicCatalogs returns the interaction rows followed by the genre rows.
func (s *CatalogService) DynamicCatalogs(ctx context.Context, library Library, settings *UserSettings) []CatalogRow {
	start := time.Now()

	rows := s.InteractionCatalogs(library)
	interaction := len(rows)
	rows = append(rows, s.GenreBasedCatalogs(ctx, library, settings)...)

	s.log(ctx).Debug().
		Int("interaction_rows", interaction).
		Int("genre_rows", len(rows)-interaction).
		Dur("duration", time.Since(start)).
		Msg("Dynamic catalogs generated")
	return rows
}

// WatchedLovedCatalogs is kept for callers of the older update flow.
//
// Deprecated: use DynamicCatalogs.
func (s *CatalogService) WatchedLovedCatalogs(ctx context.Context, library Library, settings *UserSettings) []CatalogRow {
	return s.DynamicCatalogs(ctx, library, settings)
}

// fetchGenres looks up every item of both batches concurrently and waits for
// all of them. Results keep input order.
func (s *CatalogService) fetchGenres(ctx context.Context, movies, series []LibraryItem) (movieGenres, seriesGenres [][]string) {
	movieGenres = make([][]string, len(movies))
	seriesGenres = make([][]string, len(series))
	if s.lookup == nil {
		return movieGenres, seriesGenres
	}

	var g errgroup.Group
	if limit := s.cfg.Catalog.LookupConcurrency; limit > 0 {
		g.SetLimit(limit)
	}

	schedule := func(items []LibraryItem, out [][]string) {
		for i := range items {
			id := strings.TrimSpace(items[i].ID)
			kind := KindForType(NormalizeType(items[i].Type))
			g.Go(func() error {
				out[i] = s.lookupItem(ctx, id, kind)
				return nil
			})
		}
	}
	schedule(movies, movieGenres)
	schedule(series, seriesGenres)

	_ = g.Wait() //nolint:errcheck // goroutines never return errors
	return movieGenres, seriesGenres
}

func (s *CatalogService) lookupItem(ctx context.Context, id string, kind MediaKind) (genres []string) {
	defer func() {
		if r := recover(); r != nil {
			s.log(ctx).Error().
				Interface("panic", r).
				Str("item_id", id).
				Str("kind", string(kind)).
				Msg("Genre lookup panicked")
			genres = nil
		}
	}()

	genres, err := s.lookup.LookupGenres(ctx, id, kind)
	if err != nil {
		s.log(ctx).Warn().
			Err(err).
			Str("item_id", id).
			Str("kind", string(kind)).
			Msg("Failed to fetch genres")
		return nil
	}
	return genres
}

// topGenreIDs counts known genre names across a batch into a taste profile
// and returns the ids of its strongest genres. Ties keep first-seen order.
func (s *CatalogService) topGenreIDs(batch [][]string, known map[string]int) []int {
	var profile TasteProfile
	for _, genres := range batch {
		for _, name := range genres {
			if id, ok := known[name]; ok {
				profile.Genres.Add(id, 1)
			}
		}
	}

	top := profile.TopGenres(s.cfg.Catalog.TopGenres)
	ids := make([]int, 0, len(top))
	for _, f := range top {
		ids = append(ids, f.ID)
	}
	return ids
}

func (s *CatalogService) log(ctx context.Context) *zerolog.Logger {
	l := s.logger
	if requestID := logging.RequestIDFromContext(ctx); requestID != "" {
		l = l.With().Str("request_id", requestID).Logger()
	}
	return &l
}

func genreRowID(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return RowIDGenre + "." + strings.Join(parts, "_")
}

func headItems(items []LibraryItem, n int) []LibraryItem {
	if n >= 0 && len(items) > n {
		return items[:n]
	}
	return items
}
