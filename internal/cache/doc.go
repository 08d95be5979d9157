// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

/*
Package cache provides the in-memory structures behind query caching and
title suggestions.

# Cache

Cache is a thread-safe key-value store with per-entry TTL. Expired entries
are dropped lazily on Get and swept by a background goroutine every five
minutes until Close is called. GetOrLoad collapses concurrent loads for the
same key into one call using golang.org/x/sync/singleflight.

Caches created with NewNamed export hits and misses to Prometheus:

	c := cache.NewNamed("queries", 5*time.Minute)
	defer c.Close()

	key := cache.GenerateKey("score_titulo", params)
	v, err := c.GetOrLoad(key, func() (interface{}, error) {
	    return db.TitleScore(ctx, params.Titulo)
	})

Failed loads are not cached.

# TitleIndex

TitleIndex is a rune-keyed prefix tree used for title autocomplete. Keys are
folded to lower case with whitespace collapsed. When two movies share a
title the more popular one is kept, and suggestions rank by popularity, then
alphabetically. The catalog builds a fresh index on every load and swaps it
in under a lock.

# Thread Safety

All exported methods are safe for concurrent use.
*/
package cache
