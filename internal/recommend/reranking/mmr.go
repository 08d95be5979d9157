// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

// Package reranking implements post-processing for recommendation diversity.
package reranking

import (
	"context"
	"math"
	"strings"

	"github.com/tomtom215/filmoteca/internal/recommend"
)

// maxRerankSize limits slice allocations; k is also bounded by len(items).
const maxRerankSize = 10000

// MMR is Maximal Marginal Relevance reranking. Each step picks the
// remaining movie maximizing
//
//	lambda * score(i) - (1 - lambda) * max over picked s of sim(i, s)
//
// where sim is the Jaccard overlap of cast plus directors. Lowering lambda
// spreads results across different crews.
type MMR struct {
	lambda float64
}

// NewMMR creates a new MMR reranker. Lambda is clamped to [0, 1].
func NewMMR(lambda float64) *MMR {
	if lambda < 0 {
		lambda = 0
	}
	if lambda > 1 {
		lambda = 1
	}
	return &MMR{lambda: lambda}
}

// Name returns the reranker identifier.
func (m *MMR) Name() string {
	return "mmr"
}

// Lambda returns the effective lambda.
func (m *MMR) Lambda() float64 {
	return m.lambda
}

// Rerank returns the first k picks. Ties keep the incoming order, and a
// canceled ctx returns what was picked so far.
func (m *MMR) Rerank(ctx context.Context, items []recommend.ScoredItem, k int) []recommend.ScoredItem {
	if len(items) == 0 || k <= 0 {
		return items
	}

	if k > maxRerankSize {
		k = maxRerankSize
	}
	if k > len(items) {
		k = len(items)
	}

	if m.lambda >= 1.0 {
		return items[:k]
	}

	people := make([]map[string]struct{}, len(items))
	for i := range items {
		people[i] = peopleSet(items[i].Item)
	}

	// maxSim[i] is item i's highest overlap with anything picked so far;
	// it only needs updating against the latest pick.
	maxSim := make([]float64, len(items))
	picked := make([]bool, len(items))
	out := make([]recommend.ScoredItem, 0, k)

	for len(out) < k && ctx.Err() == nil {
		best, bestScore := -1, math.Inf(-1)
		for i := range items {
			if picked[i] {
				continue
			}
			if score := m.lambda*items[i].Score - (1-m.lambda)*maxSim[i]; score > bestScore {
				best, bestScore = i, score
			}
		}
		if best < 0 {
			break
		}

		picked[best] = true
		out = append(out, items[best])
		for i := range items {
			if !picked[i] {
				maxSim[i] = math.Max(maxSim[i], jaccard(people[i], people[best]))
			}
		}
	}
	return out
}

//nolint:gocritic // hugeParam: Item is read-only
func peopleSet(item recommend.Item) map[string]struct{} {
	set := make(map[string]struct{}, len(item.Actors)+len(item.Directors))
	for _, a := range item.Actors {
		set["a:"+strings.ToLower(a)] = struct{}{}
	}
	for _, d := range item.Directors {
		set["d:"+strings.ToLower(d)] = struct{}{}
	}
	return set
}

// jaccard returns |a ∩ b| / |a ∪ b|, 0 when both are empty.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	intersection := 0
	for key := range small {
		if _, ok := large[key]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

var _ recommend.Reranker = (*MMR)(nil)
