// Watchly - Personalized Catalog Rows for Media Addons
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchly

package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock is a settable time source.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

func newTestCache(capacity int, ttl time.Duration) (*Cache[[]string], *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New[[]string](capacity, ttl)
	c.now = clock.Now
	return c, clock
}

func TestCacheBasicOperations(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)

	c.Set("movie:tt1", []string{"Drama"})
	got, ok := c.Get("movie:tt1")
	if !ok || len(got) != 1 || got[0] != "Drama" {
		t.Errorf("Get() = %v, %v", got, ok)
	}

	if _, ok := c.Get("movie:tt2"); ok {
		t.Error("Get() found a key that was never set")
	}

	stats := c.GetStats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.TotalKeys != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if c.HitRate() != 50 {
		t.Errorf("HitRate() = %f, want 50", c.HitRate())
	}
}

func TestCacheExpiration(t *testing.T) {
	c, clock := newTestCache(10, time.Minute)

	c.Set("a", nil)
	c.SetWithTTL("b", nil, time.Hour)

	clock.Advance(2 * time.Minute)

	if _, ok := c.Get("a"); ok {
		t.Error("expected a to be expired")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("expected b to survive its longer TTL")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCacheLRUEviction(t *testing.T) {
	c, _ := newTestCache(2, time.Minute)

	c.Set("a", nil)
	c.Set("b", nil)
	c.Get("a")
	c.Set("c", nil)

	if _, ok := c.Get("b"); ok {
		t.Error("least recently used entry b should be evicted")
	}
	for _, key := range []string{"a", "c"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("expected %s to be cached", key)
		}
	}
	if got := c.GetStats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestCacheOverwrite(t *testing.T) {
	c, _ := newTestCache(2, time.Minute)

	c.Set("a", []string{"Action"})
	c.Set("a", []string{"Comedy"})

	got, _ := c.Get("a")
	if got[0] != "Comedy" {
		t.Errorf("Get() = %v, want [Comedy]", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)
	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("k%d", i), nil)
	}

	c.Delete("k0")
	c.Delete("missing")
	if c.Len() != 4 {
		t.Errorf("Len() = %d, want 4", c.Len())
	}

	c.Clear()
	if c.Len() != 0 || c.GetStats().TotalKeys != 0 {
		t.Errorf("Len() = %d after Clear", c.Len())
	}
}

func TestCacheCleanup(t *testing.T) {
	c, clock := newTestCache(10, time.Minute)
	c.Set("short1", nil)
	c.Set("short2", nil)
	c.SetWithTTL("long", nil, time.Hour)

	clock.Advance(5 * time.Minute)

	if removed := c.Cleanup(); removed != 2 {
		t.Errorf("Cleanup() = %d, want 2", removed)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if c.GetStats().LastCleanup.IsZero() {
		t.Error("LastCleanup not recorded")
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c, _ := newTestCache(100, time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (g*200+i)%150)
				c.Set(key, []string{key})
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 100 {
		t.Errorf("Len() = %d, want <= capacity", c.Len())
	}
}

func TestJanitor(t *testing.T) {
	c, clock := newTestCache(10, time.Minute)
	c.Set("a", nil)
	clock.Advance(time.Hour)

	swept := make(chan int, 1)
	j := NewJanitor("metadata-cache-janitor", c, 10*time.Millisecond, func(removed, _ int) {
		select {
		case swept <- removed:
		default:
		}
	})
	if j.String() != "metadata-cache-janitor" {
		t.Errorf("String() = %q", j.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- j.Serve(ctx) }()

	select {
	case removed := <-swept:
		if removed != 1 {
			t.Errorf("removed = %d, want 1", removed)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("janitor did not sweep")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() error = %v, want context.Canceled", err)
	}
}
