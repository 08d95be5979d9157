// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package algorithms

import (
	"context"
	"math"
	"sort"

	"github.com/tomtom215/filmoteca/internal/recommend"
)

// Overview scores movies by the cosine similarity of their overview texts.
//
// Each overview becomes a sparse term vector:
//
//	tf(t, d)  = count(t, d) / tokens(d)
//	idf(t)    = ln((1 + n) / (1 + df(t))) + 1      (only with UseIDF)
//	w(t, d)   = tf(t, d) * idf(t)
//
// Vectors are L2-normalized, so similarity is a dot product. Movies whose
// overview has no tokens left after stop-word removal get no vector and are
// never scored.
type Overview struct {
	model

	useIDF bool

	// Built by Train
	vectors map[int64]sparseVector
}

// sparseVector is a unit-length term vector, terms sorted by id.
type sparseVector struct {
	terms   []int
	weights []float64
}

// OverviewConfig contains configuration for the overview algorithm.
type OverviewConfig struct {
	// UseIDF weights terms by smoothed inverse document frequency.
	UseIDF bool
}

// NewOverview creates a new overview similarity algorithm.
func NewOverview(cfg OverviewConfig) *Overview {
	return &Overview{
		model:   model{name: "overview"},
		useIDF:  cfg.UseIDF,
		vectors: make(map[int64]sparseVector),
	}
}

// Train builds one vector per item with a non-empty overview.
//
//nolint:gocritic // rangeValCopy: Item is read-only here
func (o *Overview) Train(ctx context.Context, items []recommend.Item) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	vocab := make(map[string]int)
	docs := make(map[int64]map[int]int, len(items))
	docLen := make(map[int64]int, len(items))
	df := make(map[int]int)

	for _, item := range items {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		tokens := Tokenize(item.Overview)
		if len(tokens) == 0 {
			continue
		}
		counts := make(map[int]int, len(tokens))
		for _, tok := range tokens {
			id, ok := vocab[tok]
			if !ok {
				id = len(vocab)
				vocab[tok] = id
			}
			counts[id]++
		}
		for id := range counts {
			df[id]++
		}
		docs[item.ID] = counts
		docLen[item.ID] = len(tokens)
	}

	n := float64(len(items))
	vectors := make(map[int64]sparseVector, len(docs))
	for itemID, counts := range docs {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		vec := sparseVector{
			terms:   make([]int, 0, len(counts)),
			weights: make([]float64, 0, len(counts)),
		}
		for id := range counts {
			vec.terms = append(vec.terms, id)
		}
		sort.Ints(vec.terms)

		total := float64(docLen[itemID])
		var norm float64
		for _, id := range vec.terms {
			w := float64(counts[id]) / total
			if o.useIDF {
				w *= math.Log((1+n)/(1+float64(df[id]))) + 1
			}
			vec.weights = append(vec.weights, w)
			norm += w * w
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			continue
		}
		for i := range vec.weights {
			vec.weights[i] /= norm
		}
		vectors[itemID] = vec
	}

	o.vectors = vectors
	o.commit()
	return nil
}

// PredictSimilar returns the cosine similarity between itemID and each
// candidate that has a vector. An item without a vector yields no scores.
func (o *Overview) PredictSimilar(ctx context.Context, itemID int64, candidates []int64) (map[int64]float64, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if o.version == 0 {
		return nil, nil
	}

	query, ok := o.vectors[itemID]
	if !ok {
		return nil, nil
	}

	scores := make(map[int64]float64, len(candidates))
	for i, id := range candidates {
		if i%1024 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if id == itemID {
			continue
		}
		vec, ok := o.vectors[id]
		if !ok {
			continue
		}
		scores[id] = dot(query, vec)
	}
	return scores, nil
}

// dot merges two sorted sparse vectors.
func dot(a, b sparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.terms) && j < len(b.terms) {
		switch {
		case a.terms[i] == b.terms[j]:
			sum += a.weights[i] * b.weights[j]
			i++
			j++
		case a.terms[i] < b.terms[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Ensure Overview implements the interface.
var _ recommend.Algorithm = (*Overview)(nil)
