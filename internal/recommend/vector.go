// Watchly - Personalized Catalog Rows for Media Addons
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchly

package recommend

import (
	"math"
	"sort"
	"strconv"

	"github.com/goccy/go-json"
)

// DefaultTopFeatures is the number of features returned by TopFeatures when
// the caller passes a non-positive limit.
const DefaultTopFeatures = 5

// Feature is a single (feature id, weight) pair of a SparseVector.
type Feature struct {
	ID     int     `json:"id"`
	Weight float64 `json:"weight"`
}

// SparseVector is a weighted mapping from integer feature id to weight.
// Absent ids implicitly have weight 0.
//
// The vector remembers the order in which ids were first inserted so that
// ranking ties resolve the same way on every run. The zero value is an empty
// vector ready for use. A SparseVector is not safe for concurrent mutation;
// concurrent reads are fine.
type SparseVector struct {
	values map[int]float64
	order  []int
}

// NewSparseVector creates a vector from an initial weight map.
// Ids are inserted in ascending order.
func NewSparseVector(values map[int]float64) *SparseVector {
	v := &SparseVector{}
	ids := make([]int, 0, len(values))
	for id := range values {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		v.Set(id, values[id])
	}
	return v
}

// Set assigns the weight of a feature, inserting it if absent.
func (v *SparseVector) Set(id int, weight float64) {
	if v.values == nil {
		v.values = make(map[int]float64)
	}
	if _, ok := v.values[id]; !ok {
		v.order = append(v.order, id)
	}
	v.values[id] = weight
}

// Add accumulates evidence for a feature.
func (v *SparseVector) Add(id int, weight float64) {
	v.Set(id, v.Get(id)+weight)
}

// Get returns the weight of a feature, or 0 when absent.
func (v *SparseVector) Get(id int) float64 {
	return v.values[id]
}

// Len returns the number of features present.
func (v *SparseVector) Len() int {
	return len(v.order)
}

// Values returns a copy of the weight map.
func (v *SparseVector) Values() map[int]float64 {
	out := make(map[int]float64, len(v.values))
	for id, w := range v.values {
		out[id] = w
	}
	return out
}

// Normalize scales all weights so the maximum becomes 1.0, rounding to 4
// decimals. Empty vectors and vectors whose maximum is not positive are
// left unchanged.
func (v *SparseVector) Normalize() {
	if len(v.order) == 0 {
		return
	}

	maxVal := math.Inf(-1)
	for _, id := range v.order {
		if w := v.values[id]; w > maxVal {
			maxVal = w
		}
	}
	if maxVal <= 0 {
		return
	}

	for _, id := range v.order {
		v.values[id] = round4(v.values[id] / maxVal)
	}
}

// TopFeatures returns up to limit features sorted by descending weight.
// Ties keep insertion order. A non-positive limit means DefaultTopFeatures.
func (v *SparseVector) TopFeatures(limit int) []Feature {
	if limit <= 0 {
		limit = DefaultTopFeatures
	}

	features := make([]Feature, 0, len(v.order))
	for _, id := range v.order {
		features = append(features, Feature{ID: id, Weight: v.values[id]})
	}

	sort.SliceStable(features, func(i, j int) bool {
		return features[i].Weight > features[j].Weight
	})

	if len(features) > limit {
		features = features[:limit]
	}
	return features
}

// sparseVectorJSON is the wire form of a SparseVector.
type sparseVectorJSON struct {
	Values map[string]float64 `json:"values"`
}

// MarshalJSON encodes the vector as {"values": {"<id>": weight}}.
func (v SparseVector) MarshalJSON() ([]byte, error) {
	out := sparseVectorJSON{Values: make(map[string]float64, len(v.values))}
	for id, w := range v.values {
		out.Values[strconv.Itoa(id)] = w
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the wire form. Ids are inserted in ascending order.
func (v *SparseVector) UnmarshalJSON(data []byte) error {
	var in sparseVectorJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	values := make(map[int]float64, len(in.Values))
	for key, w := range in.Values {
		id, err := strconv.Atoi(key)
		if err != nil {
			return err
		}
		values[id] = w
	}
	*v = *NewSparseVector(values)
	return nil
}

// TasteProfile aggregates a user's preferences across five independent
// feature namespaces.
type TasteProfile struct {
	Genres   SparseVector `json:"genres"`
	Keywords SparseVector `json:"keywords"`
	Cast     SparseVector `json:"cast"`
	Crew     SparseVector `json:"crew"`
	Years    SparseVector `json:"years"`
}

// NormalizeAll normalizes every component vector independently.
// Calling it more than once has no further effect.
func (p *TasteProfile) NormalizeAll() {
	p.Genres.Normalize()
	p.Keywords.Normalize()
	p.Cast.Normalize()
	p.Crew.Normalize()
	p.Years.Normalize()
}

// TopGenres returns the strongest genres (default 3).
func (p *TasteProfile) TopGenres(limit int) []Feature {
	if limit <= 0 {
		limit = 3
	}
	return p.Genres.TopFeatures(limit)
}

// TopKeywords returns the strongest keywords (default 5).
func (p *TasteProfile) TopKeywords(limit int) []Feature {
	if limit <= 0 {
		limit = 5
	}
	return p.Keywords.TopFeatures(limit)
}

// TopCrew returns the strongest crew members (default 2).
func (p *TasteProfile) TopCrew(limit int) []Feature {
	if limit <= 0 {
		limit = 2
	}
	return p.Crew.TopFeatures(limit)
}

func round4(x float64) float64 {
	return math.Round(x*1e4) / 1e4
}
