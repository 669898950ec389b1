// Watchly - Personalized Catalog Rows for Media Addons
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchly

package tmdb

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/watchly/internal/cache"
	"github.com/tomtom215/watchly/internal/recommend"
)

func newFakeCatalog() *fakeAPI {
	return &fakeAPI{
		find: map[string]*FindResult{
			"tt0133093": {ID: 603, MediaType: "movie"},
			"tt0903747": {ID: 1396, MediaType: "tv"},
		},
		movies: map[int]*Details{
			603: {ID: 603, Genres: []Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}}},
			27205: {ID: 27205, Genres: []Genre{{ID: 53, Name: "Thriller"}}},
		},
		shows: map[int]*Details{
			1396: {ID: 1396, Genres: []Genre{{ID: 18, Name: "Drama"}, {ID: 80, Name: "Crime"}}},
		},
	}
}

func TestGenreResolver_LookupGenres(t *testing.T) {
	resolver := NewGenreResolver(newFakeCatalog(), cache.New[[]string](100, time.Hour), time.Minute, zerolog.Nop())
	ctx := context.Background()

	tests := []struct {
		name string
		id   string
		kind recommend.MediaKind
		want []string
	}{
		{"imdb movie", "tt0133093", recommend.MediaKindMovie, []string{"Action", "Science Fiction"}},
		{"imdb series", "tt0903747", recommend.MediaKindTV, []string{"Drama", "Crime"}},
		{"tmdb id", "tmdb:27205", recommend.MediaKindMovie, []string{"Thriller"}},
		{"padded id", "  tt0133093 ", recommend.MediaKindMovie, []string{"Action", "Science Fiction"}},
		{"unknown imdb id", "tt9999999", recommend.MediaKindMovie, nil},
		{"unsupported id", "kitsu:1", recommend.MediaKindTV, nil},
		{"malformed tmdb id", "tmdb:abc", recommend.MediaKindMovie, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.LookupGenres(ctx, tt.id, tt.kind)
			if err != nil {
				t.Fatalf("LookupGenres() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("LookupGenres() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("genres[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestGenreResolver_Caches(t *testing.T) {
	api := newFakeCatalog()
	c := cache.New[[]string](100, time.Hour)
	resolver := NewGenreResolver(api, c, time.Minute, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := resolver.LookupGenres(ctx, "tt0133093", recommend.MediaKindMovie); err != nil {
			t.Fatalf("LookupGenres() error = %v", err)
		}
	}
	if got := api.calls.Load(); got != 2 {
		t.Errorf("upstream calls = %d, want 2 (find + details)", got)
	}

	if _, err := resolver.LookupGenres(ctx, "tt9999999", recommend.MediaKindMovie); err != nil {
		t.Fatalf("LookupGenres() error = %v", err)
	}
	calls := api.calls.Load()
	if _, err := resolver.LookupGenres(ctx, "tt9999999", recommend.MediaKindMovie); err != nil {
		t.Fatalf("LookupGenres() error = %v", err)
	}
	if api.calls.Load() != calls {
		t.Error("not-found answer should be cached")
	}
}

func TestGenreResolver_UpstreamError(t *testing.T) {
	api := newFakeCatalog()
	api.setErr(errors.New("connection reset"))
	c := cache.New[[]string](100, time.Hour)
	resolver := NewGenreResolver(api, c, time.Minute, zerolog.Nop())

	_, err := resolver.LookupGenres(context.Background(), "tt0133093", recommend.MediaKindMovie)
	if err == nil {
		t.Fatal("expected error")
	}
	if c.Len() != 0 {
		t.Error("errors must not be cached")
	}

	api.setErr(nil)
	got, err := resolver.LookupGenres(context.Background(), "tt0133093", recommend.MediaKindMovie)
	if err != nil || len(got) != 2 {
		t.Errorf("LookupGenres() after recovery = %v, %v", got, err)
	}
}

func TestGenreResolver_SharesConcurrentLookups(t *testing.T) {
	api := newFakeCatalog()
	api.delay = 50 * time.Millisecond
	resolver := NewGenreResolver(api, nil, 0, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := resolver.LookupGenres(context.Background(), "tt0903747", recommend.MediaKindTV); err != nil {
				t.Errorf("LookupGenres() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if got := api.calls.Load(); got >= 20 {
		t.Errorf("upstream calls = %d, want concurrent lookups to be shared", got)
	}
}

func TestGenreResolver_CanceledCallerDoesNotFailOthers(t *testing.T) {
	api := newFakeCatalog()
	api.delay = 100 * time.Millisecond
	resolver := NewGenreResolver(api, nil, 0, zerolog.Nop())

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := resolver.LookupGenres(firstCtx, "tt0903747", recommend.MediaKindTV)
		firstErr <- err
	}()

	// Let the first caller start the shared upstream call.
	time.Sleep(20 * time.Millisecond)

	secondDone := make(chan []string, 1)
	go func() {
		genres, err := resolver.LookupGenres(context.Background(), "tt0903747", recommend.MediaKindTV)
		if err != nil {
			t.Errorf("second LookupGenres() error = %v", err)
		}
		secondDone <- genres
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Errorf("first LookupGenres() error = %v, want context.Canceled", err)
	}
	if got := <-secondDone; len(got) != 2 || got[0] != "Drama" {
		t.Errorf("second LookupGenres() = %v, want [Drama Crime]", got)
	}
}
