// Watchly - Personalized Catalog Rows for Media Addons
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchly

package recommend

import (
	"math"
	"time"
)

// maxRepeatLog caps the log2(times_watched) term.
const maxRepeatLog = 4.0

// Scorer turns library items into ScoredItems.
// It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	cfg ScoringConfig
	now func() time.Time
}

// NewScorer creates a scorer. Zero windows fall back to the defaults.
//
//nolint:gocritic // hugeParam: config passed by value for immutability
func NewScorer(cfg ScoringConfig) *Scorer {
	defaults := DefaultConfig().Scoring
	if cfg.RecentWindow <= 0 {
		cfg.RecentWindow = defaults.RecentWindow
	}
	if cfg.RecencyHalfLife <= 0 {
		cfg.RecencyHalfLife = defaults.RecencyHalfLife
	}
	return &Scorer{cfg: cfg, now: time.Now}
}

// WithClock returns a copy of the scorer that reads the evaluation time
// from now.
func (s *Scorer) WithClock(now func() time.Time) *Scorer {
	return &Scorer{cfg: s.cfg, now: now}
}

// ProcessItem scores an item against the scorer's clock.
//
//nolint:gocritic // hugeParam: item passed by value, the result owns its copy
func (s *Scorer) ProcessItem(item LibraryItem) ScoredItem {
	return s.ProcessItemAt(item, s.now())
}

// ProcessItemAt scores an item as of the given evaluation time. Missing
// watch-state fields count as zero and a missing timestamp is never recent.
//
//nolint:gocritic // hugeParam: item passed by value, the result owns its copy
func (s *Scorer) ProcessItemAt(item LibraryItem, now time.Time) ScoredItem {
	state := item.State

	completion := CompletionRate(state.TimeWatched, state.Duration)
	rewatched := state.TimesWatched > 1

	recency := 0.0
	recent := false
	if !state.LastWatched.IsZero() {
		age := now.Sub(state.LastWatched.Time)
		if age < 0 {
			age = 0
		}
		recent = age <= s.cfg.RecentWindow
		recency = math.Exp(-math.Ln2 * float64(age) / float64(s.cfg.RecencyHalfLife))
	}

	score := s.cfg.CompletionWeight*completion + s.cfg.RecencyWeight*recency
	if rewatched {
		score += s.cfg.RewatchWeight
	}
	if state.TimesWatched > 1 {
		score += s.cfg.RepeatWeight * math.Min(math.Log2(float64(state.TimesWatched)), maxRepeatLog) / maxRepeatLog
	}
	if item.IsLoved {
		score += s.cfg.LovedWeight
	}
	if item.IsLiked {
		score += s.cfg.LikedWeight
	}
	score = round4(score)

	item.InterestScore = score

	return ScoredItem{
		Item:           item,
		Score:          score,
		CompletionRate: completion,
		IsRewatched:    rewatched,
		IsRecent:       recent,
		SourceType:     sourceTypeOf(item),
	}
}

// CompletionRate returns watched/duration clamped to [0, 1], or 0 when the
// duration is unknown.
func CompletionRate(watched, duration int64) float64 {
	if duration <= 0 || watched <= 0 {
		return 0
	}
	rate := float64(watched) / float64(duration)
	if rate > 1 {
		return 1
	}
	return rate
}

//nolint:gocritic // hugeParam: read-only access
func sourceTypeOf(item LibraryItem) SourceType {
	switch {
	case item.IsLoved:
		return SourceLoved
	case item.IsLiked:
		return SourceLiked
	default:
		return SourceWatched
	}
}
