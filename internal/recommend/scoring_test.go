// Watchly - Personalized Catalog Rows for Media Addons
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchly

package recommend

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func watchedItem(id string, completion float64, times int, ago time.Duration) LibraryItem {
	return LibraryItem{
		ID:   id,
		Type: TypeMovie,
		Name: id,
		State: WatchState{
			LastWatched:  Timestamp{testNow.Add(-ago)},
			Duration:     1000,
			TimeWatched:  int64(completion * 1000),
			TimesWatched: times,
		},
	}
}

func TestScorer_ProcessItemAt(t *testing.T) {
	scorer := NewScorer(DefaultConfig().Scoring)

	tests := []struct {
		name           string
		item           LibraryItem
		wantCompletion float64
		wantRewatched  bool
		wantRecent     bool
		wantSource     SourceType
	}{
		{
			name:           "fully watched today",
			item:           watchedItem("tt1", 1, 1, 0),
			wantCompletion: 1,
			wantRecent:     true,
			wantSource:     SourceWatched,
		},
		{
			name:           "rewatched",
			item:           watchedItem("tt2", 0.5, 3, 24*time.Hour),
			wantCompletion: 0.5,
			wantRewatched:  true,
			wantRecent:     true,
			wantSource:     SourceWatched,
		},
		{
			name:           "old item is not recent",
			item:           watchedItem("tt3", 0.5, 1, 90*24*time.Hour),
			wantCompletion: 0.5,
			wantSource:     SourceWatched,
		},
		{
			name:       "missing state",
			item:       LibraryItem{ID: "tt4", Type: TypeMovie},
			wantSource: SourceWatched,
		},
		{
			name: "overshoot clamps to 1",
			item: LibraryItem{ID: "tt5", Type: TypeMovie, State: WatchState{
				TimeWatched: 5000, Duration: 1000,
			}},
			wantCompletion: 1,
			wantSource:     SourceWatched,
		},
		{
			name:       "loved wins over liked",
			item:       LibraryItem{ID: "tt6", Type: TypeMovie, IsLoved: true, IsLiked: true},
			wantSource: SourceLoved,
		},
		{
			name:       "liked",
			item:       LibraryItem{ID: "tt7", Type: TypeMovie, IsLiked: true},
			wantSource: SourceLiked,
		},
		{
			name: "future timestamp counts as recent",
			item: LibraryItem{ID: "tt8", Type: TypeMovie, State: WatchState{
				LastWatched: Timestamp{testNow.Add(time.Hour)},
			}},
			wantRecent: true,
			wantSource: SourceWatched,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.ProcessItemAt(tt.item, testNow)

			if got.CompletionRate != tt.wantCompletion {
				t.Errorf("CompletionRate = %f, want %f", got.CompletionRate, tt.wantCompletion)
			}
			if got.IsRewatched != tt.wantRewatched {
				t.Errorf("IsRewatched = %v, want %v", got.IsRewatched, tt.wantRewatched)
			}
			if got.IsRecent != tt.wantRecent {
				t.Errorf("IsRecent = %v, want %v", got.IsRecent, tt.wantRecent)
			}
			if got.SourceType != tt.wantSource {
				t.Errorf("SourceType = %q, want %q", got.SourceType, tt.wantSource)
			}
			if got.Item.InterestScore != got.Score {
				t.Errorf("Item.InterestScore = %f, want %f", got.Item.InterestScore, got.Score)
			}
			if got.Score < 0 {
				t.Errorf("Score = %f, want >= 0", got.Score)
			}
		})
	}
}

func TestScorer_Formula(t *testing.T) {
	scorer := NewScorer(DefaultConfig().Scoring)

	// 0.40*1 + 0.30*1 + 0.15 + 0.05*log2(2)/4 + 0.50
	item := watchedItem("tt1", 1, 2, 0)
	item.IsLoved = true

	got := scorer.ProcessItemAt(item, testNow).Score
	want := 1.3625
	if got != want {
		t.Errorf("Score = %f, want %f", got, want)
	}

	// One half-life ago halves the recency term: 0.40*1 + 0.30*0.5
	half := watchedItem("tt2", 1, 1, 30*24*time.Hour)
	if got := scorer.ProcessItemAt(half, testNow).Score; got != 0.55 {
		t.Errorf("Score = %f, want 0.55", got)
	}
}

func TestScorer_Monotone(t *testing.T) {
	scorer := NewScorer(DefaultConfig().Scoring)
	score := func(item LibraryItem) float64 {
		return scorer.ProcessItemAt(item, testNow).Score
	}

	base := watchedItem("tt1", 0.5, 1, 10*24*time.Hour)

	t.Run("completion", func(t *testing.T) {
		more := watchedItem("tt1", 0.9, 1, 10*24*time.Hour)
		if score(more) <= score(base) {
			t.Error("higher completion should score higher")
		}
	})

	t.Run("recency", func(t *testing.T) {
		newer := watchedItem("tt1", 0.5, 1, 24*time.Hour)
		if score(newer) <= score(base) {
			t.Error("more recent item should score higher")
		}
	})

	t.Run("rewatch", func(t *testing.T) {
		rewatched := watchedItem("tt1", 0.5, 4, 10*24*time.Hour)
		if score(rewatched) <= score(base) {
			t.Error("rewatched item should score higher")
		}
	})

	t.Run("loved beats liked beats plain", func(t *testing.T) {
		loved, liked := base, base
		loved.IsLoved = true
		liked.IsLiked = true
		if !(score(loved) > score(liked) && score(liked) > score(base)) {
			t.Errorf("scores loved=%f liked=%f plain=%f", score(loved), score(liked), score(base))
		}
	})
}

func TestScorer_DoesNotMutateInput(t *testing.T) {
	scorer := NewScorer(DefaultConfig().Scoring)
	item := watchedItem("tt1", 1, 1, 0)

	_ = scorer.ProcessItemAt(item, testNow)
	if item.InterestScore != 0 {
		t.Errorf("input InterestScore = %f, want 0", item.InterestScore)
	}
}

func TestScorer_WithClock(t *testing.T) {
	scorer := NewScorer(DefaultConfig().Scoring).WithClock(func() time.Time { return testNow })
	item := watchedItem("tt1", 1, 1, 0)

	if got, want := scorer.ProcessItem(item).Score, scorer.ProcessItemAt(item, testNow).Score; got != want {
		t.Errorf("ProcessItem() = %f, want %f", got, want)
	}
}

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		watched, duration int64
		want              float64
	}{
		{0, 0, 0},
		{100, 0, 0},
		{50, 100, 0.5},
		{200, 100, 1},
		{-10, 100, 0},
	}
	for _, tt := range tests {
		if got := CompletionRate(tt.watched, tt.duration); got != tt.want {
			t.Errorf("CompletionRate(%d, %d) = %f, want %f", tt.watched, tt.duration, got, tt.want)
		}
	}
}

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantZero bool
	}{
		{"rfc3339 with Z", `"2026-02-28T10:00:00.000Z"`, false},
		{"with offset", `"2026-02-28T10:00:00+02:00"`, false},
		{"null", `null`, true},
		{"empty", `""`, true},
		{"garbage", `"yesterday"`, true},
		{"number", `12345`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			if err := json.Unmarshal([]byte(tt.input), &ts); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if ts.IsZero() != tt.wantZero {
				t.Errorf("IsZero() = %v, want %v", ts.IsZero(), tt.wantZero)
			}
		})
	}
}

func TestLibraryItem_DecodeWireFormat(t *testing.T) {
	raw := `{
		"_id": "tt0111161",
		"type": "movie",
		"name": "The Shawshank Redemption",
		"_is_loved": true,
		"state": {"lastWatched": null, "timesWatched": 2, "duration": 8520000, "timeWatched": 8520000}
	}`

	var item LibraryItem
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if item.ID != "tt0111161" || !item.IsLoved || item.State.TimesWatched != 2 {
		t.Errorf("decoded item = %+v", item)
	}
	if !item.State.LastWatched.IsZero() {
		t.Error("null lastWatched should decode to zero time")
	}
}
