// Watchly - Personalized Catalog Rows for Media Addons
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchly

package recommend

// MovieGenreToID maps TMDB movie genre names to their ids.
var MovieGenreToID = map[string]int{
	"Action":          28,
	"Adventure":       12,
	"Animation":       16,
	"Comedy":          35,
	"Crime":           80,
	"Documentary":     99,
	"Drama":           18,
	"Family":          10751,
	"Fantasy":         14,
	"History":         36,
	"Horror":          27,
	"Music":           10402,
	"Mystery":         9648,
	"Romance":         10749,
	"Science Fiction": 878,
	"TV Movie":        10770,
	"Thriller":        53,
	"War":             10752,
	"Western":         37,
}

// SeriesGenreToID maps TMDB TV genre names to their ids.
var SeriesGenreToID = map[string]int{
	"Action & Adventure": 10759,
	"Animation":          16,
	"Comedy":             35,
	"Crime":              80,
	"Documentary":        99,
	"Drama":              18,
	"Family":             10751,
	"Kids":               10762,
	"Mystery":            9648,
	"News":               10763,
	"Reality":            10764,
	"Sci-Fi & Fantasy":   10765,
	"Soap":               10766,
	"Talk":               10767,
	"War & Politics":     10768,
	"Western":            37,
}

// GenreMapFor returns the genre name to id mapping for a media kind.
func GenreMapFor(kind MediaKind) map[string]int {
	if kind == MediaKindTV {
		return SeriesGenreToID
	}
	return MovieGenreToID
}
