// Watchly - Personalized Catalog Rows for Media Addons
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchly

package tmdb

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// fakeAPI is an in-memory API.
type fakeAPI struct {
	mu      sync.Mutex
	find    map[string]*FindResult
	movies  map[int]*Details
	shows   map[int]*Details
	err     error
	delay   time.Duration
	calls   atomic.Int32
	pingErr error
}

func (f *fakeAPI) FindByIMDbID(ctx context.Context, imdbID string) (*FindResult, error) {
	f.calls.Add(1)
	select {
	case <-time.After(f.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.find[imdbID]; ok {
		return r, nil
	}
	return nil, ErrNotFound
}

func (f *fakeAPI) MovieDetails(_ context.Context, id int) (*Details, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if d, ok := f.movies[id]; ok {
		return d, nil
	}
	return nil, ErrNotFound
}

func (f *fakeAPI) TVDetails(_ context.Context, id int) (*Details, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if d, ok := f.shows[id]; ok {
		return d, nil
	}
	return nil, ErrNotFound
}

func (f *fakeAPI) Ping(_ context.Context) error {
	return f.pingErr
}

func (f *fakeAPI) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}
