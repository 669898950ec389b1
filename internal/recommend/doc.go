// Watchly - Personalized Catalog Rows for Media Addons
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchly

// Package recommend turns a user's library history into personalized
// catalog rows.
//
// # Architecture
//
// The pipeline is linear and runs once per request:
//
//	library snapshot -> Scorer -> ScoredItems -> CatalogService -> []CatalogRow
//
// Components, leaves first:
//
//   - SparseVector: weighted feature id to weight mapping with normalization
//     and top-N extraction
//   - TasteProfile: five independent SparseVectors (genres, keywords, cast,
//     crew, years)
//   - Scorer: pure per-item interest scoring
//   - CatalogService: interaction rows ("Because you Loved ...") and genre rows
//     ("watchly.genre.{ids}") backed by a GenreLookup collaborator
//
// # Determinism
//
// Given identical inputs and identical lookup responses, the output is
// identical. Sorting is stable, deduplication keeps first-occurrence order
// and genre ties resolve by first-seen order.
//
// # Concurrency
//
// Scorer and SparseVector reads are safe for concurrent use. Genre lookups
// for one request fan out through an errgroup and are joined before counting;
// a failed lookup only removes that item's genres.
//
// # Example Usage
//
//	svc := recommend.NewCatalogService(recommend.DefaultConfig(), lookup, logging.WithComponent("catalog"))
//	rows := svc.DynamicCatalogs(ctx, library, settings)
package recommend
