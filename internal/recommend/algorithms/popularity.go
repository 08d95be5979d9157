// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package algorithms

import (
	"context"
	"math"

	"github.com/tomtom215/filmoteca/internal/recommend"
)

// Popularity scores movies by how close their popularity is to the query's:
//
//	sim(a, b) = 1 - |pop(a) - pop(b)| / (maxPop - minPop)
//
// When every movie has the same popularity the range is zero and every
// similarity is 1.
type Popularity struct {
	model

	// Built by Train
	popularity map[int64]float64
	rang       float64
}

// NewPopularity creates a new popularity algorithm.
func NewPopularity() *Popularity {
	return &Popularity{
		model:      model{name: "popularity"},
		popularity: make(map[int64]float64),
	}
}

// Train records each item's popularity and the catalog range.
//
//nolint:gocritic // rangeValCopy: Item is read-only here
func (p *Popularity) Train(ctx context.Context, items []recommend.Item) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	pop := make(map[int64]float64, len(items))
	minPop, maxPop := math.Inf(1), math.Inf(-1)
	for _, item := range items {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		pop[item.ID] = item.Popularity
		minPop = math.Min(minPop, item.Popularity)
		maxPop = math.Max(maxPop, item.Popularity)
	}

	rang := 0.0
	if len(items) > 0 {
		rang = maxPop - minPop
	}

	p.popularity = pop
	p.rang = rang
	p.commit()
	return nil
}

// PredictSimilar returns the popularity proximity of each known candidate.
func (p *Popularity) PredictSimilar(_ context.Context, itemID int64, candidates []int64) (map[int64]float64, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.version == 0 {
		return nil, nil
	}

	base, ok := p.popularity[itemID]
	if !ok {
		return nil, nil
	}

	scores := make(map[int64]float64, len(candidates))
	for _, id := range candidates {
		if id == itemID {
			continue
		}
		other, ok := p.popularity[id]
		if !ok {
			continue
		}
		if p.rang == 0 {
			scores[id] = 1
			continue
		}
		scores[id] = 1 - math.Abs(base-other)/p.rang
	}
	return scores, nil
}

// Ensure Popularity implements the interface.
var _ recommend.Algorithm = (*Popularity)(nil)
