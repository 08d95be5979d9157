// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

// Package algorithms holds the similarity measures the recommendation
// engine combines. Each type satisfies recommend.Algorithm.
//
// Train holds an exclusive lock for the whole run, so predictions never
// observe a half-built model; predictions share a read lock.
package algorithms

import (
	"sync"
	"time"
)

// model is the bookkeeping every algorithm embeds. Version counts
// successful Train calls; zero means untrained.
type model struct {
	name string

	mu        sync.RWMutex
	version   int
	trainedAt time.Time
}

func (m *model) Name() string { return m.name }

func (m *model) IsTrained() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.version > 0
}

func (m *model) Version() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.version
}

func (m *model) LastTrainedAt() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.trainedAt
}

// commit records a finished training run. m.mu must be held for writing.
func (m *model) commit() {
	m.version++
	m.trainedAt = time.Now()
}
