// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

/*
Package recommend produces "more like this" movie recommendations.

# Architecture

The Engine owns a set of Algorithms and an optional chain of Rerankers:

	DataProvider ──► Train ──► Algorithm.Train (each registered algorithm)
	                   │
	                   ▼
	              catalog snapshot (items by id, candidate list)

	Recommend(item, k) ──► cache ──► PredictSimilar (parallel, per algorithm)
	                                   │
	                                   ▼
	             min-max normalize ► weighted sum ► sort ► rerank ► top k

Algorithms live in the algorithms subpackage:
  - overview: TF or TF-IDF vectors over the overview text, cosine similarity
  - popularity: 1 - |Δpopularity| / popularity range

# Ordering

Results are sorted by combined score descending, then popularity descending,
then id ascending, so equal inputs always produce equal outputs. The query
movie is never part of its own results.

# Training

Train loads every item from the DataProvider, refuses to run concurrently
with itself and fails when fewer than Training.MinItems items exist. Until the
first successful Train, Recommend returns ErrNotTrained.

# Caching

With Cache.Enabled, responses are kept in a cache.Cache named
"recommendations", bounded by Cache.MaxEntries and cleared after each
successful Train. Call Close to stop its sweeper.
*/
package recommend
