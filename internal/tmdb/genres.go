// Watchly - Personalized Catalog Rows for Media Addons
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchly

package tmdb

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/watchly/internal/cache"
	"github.com/tomtom215/watchly/internal/metrics"
	"github.com/tomtom215/watchly/internal/recommend"
)

const (
	imdbPrefix = "tt"
	tmdbPrefix = "tmdb:"

	// sharedLookupTimeout bounds one upstream resolution shared by
	// concurrent callers.
	sharedLookupTimeout = 30 * time.Second
)

// Lookup results used as metric labels.
const (
	resultSuccess     = "success"
	resultNotFound    = "not_found"
	resultUnsupported = "unsupported"
	resultError       = "error"
)

var _ recommend.GenreLookup = (*GenreResolver)(nil)

// GenreResolver resolves library ids to TMDB genre names.
//
// IMDb ids go through /find first; "tmdb:N" ids are used directly. Results,
// including "no genres" for unknown titles, are cached per media kind and id.
// Concurrent lookups of the same key share one upstream call.
type GenreResolver struct {
	api         API
	cache       *cache.Cache[[]string]
	negativeTTL time.Duration
	group       singleflight.Group
	logger      zerolog.Logger
}

// NewGenreResolver creates a resolver. negativeTTL bounds how long a
// not-found answer is remembered; zero uses the cache default.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewGenreResolver(api API, c *cache.Cache[[]string], negativeTTL time.Duration, logger zerolog.Logger) *GenreResolver {
	return &GenreResolver{
		api:         api,
		cache:       c,
		negativeTTL: negativeTTL,
		logger:      logger,
	}
}

// LookupGenres implements recommend.GenreLookup. Unknown titles and
// unsupported id formats yield no genres and no error.
func (r *GenreResolver) LookupGenres(ctx context.Context, externalID string, kind recommend.MediaKind) ([]string, error) {
	externalID = strings.TrimSpace(externalID)
	key := string(kind) + ":" + externalID

	if r.cache != nil {
		if genres, ok := r.cache.Get(key); ok {
			metrics.RecordMetadataCache(true)
			return genres, nil
		}
		metrics.RecordMetadataCache(false)
	}

	// The shared call must outlive any single caller's cancellation.
	ch := r.group.DoChan(key, func() (interface{}, error) {
		sharedCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLookupTimeout)
		defer cancel()
		return r.resolve(sharedCtx, externalID, kind)
	})

	var v interface{}
	var err error
	select {
	case res := <-ch:
		v, err = res.Val, res.Err
	case <-ctx.Done():
		metrics.RecordMetadataLookup(string(kind), resultError)
		return nil, fmt.Errorf("lookup genres for %s: %w", externalID, ctx.Err())
	}

	switch {
	case err == nil:
		genres, _ := v.([]string)
		metrics.RecordMetadataLookup(string(kind), resultSuccess)
		r.store(key, genres, 0)
		return genres, nil

	case errors.Is(err, ErrNotFound):
		metrics.RecordMetadataLookup(string(kind), resultNotFound)
		r.store(key, []string{}, r.negativeTTL)
		return nil, nil

	case errors.Is(err, ErrUnsupportedID):
		metrics.RecordMetadataLookup(string(kind), resultUnsupported)
		r.logger.Debug().Str("item_id", externalID).Msg("Skipping genre lookup for unsupported id")
		return nil, nil

	default:
		metrics.RecordMetadataLookup(string(kind), resultError)
		return nil, fmt.Errorf("lookup genres for %s: %w", externalID, err)
	}
}

func (r *GenreResolver) resolve(ctx context.Context, externalID string, kind recommend.MediaKind) ([]string, error) {
	tmdbID, err := r.tmdbID(ctx, externalID)
	if err != nil {
		return nil, err
	}

	var details *Details
	if kind == recommend.MediaKindMovie {
		details, err = r.api.MovieDetails(ctx, tmdbID)
	} else {
		details, err = r.api.TVDetails(ctx, tmdbID)
	}
	if err != nil {
		return nil, err
	}
	return details.GenreNames(), nil
}

func (r *GenreResolver) tmdbID(ctx context.Context, externalID string) (int, error) {
	switch {
	case strings.HasPrefix(externalID, imdbPrefix):
		found, err := r.api.FindByIMDbID(ctx, externalID)
		if err != nil {
			return 0, err
		}
		return found.ID, nil

	case strings.HasPrefix(externalID, tmdbPrefix):
		raw := strings.SplitN(strings.TrimPrefix(externalID, tmdbPrefix), ":", 2)[0]
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return 0, fmt.Errorf("%q: %w", externalID, ErrUnsupportedID)
		}
		return id, nil

	default:
		return 0, fmt.Errorf("%q: %w", externalID, ErrUnsupportedID)
	}
}

func (r *GenreResolver) store(key string, genres []string, ttl time.Duration) {
	if r.cache == nil {
		return
	}
	if ttl > 0 {
		r.cache.SetWithTTL(key, genres, ttl)
	} else {
		r.cache.Set(key, genres)
	}
	metrics.MetadataCacheEntries.Set(float64(r.cache.Len()))
}
