// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Weights defines the relative contribution of each algorithm.
	// Weights are normalized at runtime, so they don't need to sum to 1.0.
	Weights AlgorithmWeights `json:"weights"`

	// Diversity contains parameters for MMR reranking.
	Diversity DiversityConfig `json:"diversity"`

	// Training contains training parameters.
	Training TrainingConfig `json:"training"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains caching parameters.
	Cache CacheConfig `json:"cache"`
}

// AlgorithmWeights defines the relative contribution of each algorithm.
type AlgorithmWeights struct {
	// Overview is the weight for overview text similarity.
	Overview float64 `json:"overview"`

	// Popularity is the weight for popularity proximity.
	Popularity float64 `json:"popularity"`
}

// Normalize returns a copy with weights normalized to sum to 1.0.
// All-zero weights become equal weights.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w AlgorithmWeights) Normalize() AlgorithmWeights {
	sum := w.Overview + w.Popularity
	if sum == 0 {
		return AlgorithmWeights{Overview: 0.5, Popularity: 0.5}
	}
	return AlgorithmWeights{
		Overview:   w.Overview / sum,
		Popularity: w.Popularity / sum,
	}
}

// ToMap returns the weights keyed by algorithm name.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w AlgorithmWeights) ToMap() map[string]float64 {
	return map[string]float64{
		"overview":   w.Overview,
		"popularity": w.Popularity,
	}
}

// DiversityConfig contains parameters for diversity reranking.
type DiversityConfig struct {
	// MMRLambda balances relevance (1.0) against cast/director diversity (0.0).
	// 1.0 disables reranking.
	MMRLambda float64 `json:"mmr_lambda"`

	// PoolMultiplier sets how many ranked items (k * PoolMultiplier) are
	// offered to the reranker.
	PoolMultiplier int `json:"pool_multiplier"`
}

// TrainingConfig contains training parameters.
type TrainingConfig struct {
	// MinItems is the minimum catalog size required to train.
	MinItems int `json:"min_items"`

	// Timeout bounds a single training run.
	Timeout time.Duration `json:"timeout"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultK is used when a request does not specify K.
	DefaultK int `json:"default_k"`

	// MaxK caps K.
	MaxK int `json:"max_k"`

	// MaxCandidates caps the candidate list, most popular first.
	MaxCandidates int `json:"max_candidates"`

	// PredictionTimeout bounds a single algorithm's PredictSimilar call.
	PredictionTimeout time.Duration `json:"prediction_timeout"`
}

// CacheConfig contains caching parameters.
type CacheConfig struct {
	Enabled           bool          `json:"enabled"`
	TTL               time.Duration `json:"ttl"`
	MaxEntries        int           `json:"max_entries"`
	InvalidateOnTrain bool          `json:"invalidate_on_train"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() *Config {
	return &Config{
		Weights: AlgorithmWeights{
			Overview:   1.0,
			Popularity: 1.0,
		},
		Diversity: DiversityConfig{
			MMRLambda:      1.0,
			PoolMultiplier: 5,
		},
		Training: TrainingConfig{
			MinItems: 2,
			Timeout:  5 * time.Minute,
		},
		Limits: LimitsConfig{
			DefaultK:          5,
			MaxK:              50,
			MaxCandidates:     50000,
			PredictionTimeout: 5 * time.Second,
		},
		Cache: CacheConfig{
			Enabled:           true,
			TTL:               10 * time.Minute,
			MaxEntries:        10000,
			InvalidateOnTrain: true,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Weights.Overview < 0 || c.Weights.Popularity < 0 {
		return fmt.Errorf("weights must be non-negative")
	}
	if c.Diversity.MMRLambda < 0 || c.Diversity.MMRLambda > 1 {
		return fmt.Errorf("diversity.mmr_lambda must be in [0, 1], got %v", c.Diversity.MMRLambda)
	}
	if c.Diversity.PoolMultiplier < 1 {
		return fmt.Errorf("diversity.pool_multiplier must be at least 1")
	}
	if c.Training.MinItems < 2 {
		return fmt.Errorf("training.min_items must be at least 2, got %d", c.Training.MinItems)
	}
	if c.Training.Timeout <= 0 {
		return fmt.Errorf("training.timeout must be positive")
	}
	if c.Limits.MaxK < 1 {
		return fmt.Errorf("limits.max_k must be at least 1")
	}
	if c.Limits.DefaultK < 1 || c.Limits.DefaultK > c.Limits.MaxK {
		return fmt.Errorf("limits.default_k must be in [1, %d], got %d", c.Limits.MaxK, c.Limits.DefaultK)
	}
	if c.Limits.MaxCandidates < 1 {
		return fmt.Errorf("limits.max_candidates must be positive")
	}
	if c.Limits.PredictionTimeout <= 0 {
		return fmt.Errorf("limits.prediction_timeout must be positive")
	}
	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive when cache is enabled")
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive when cache is enabled")
		}
	}
	return nil
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
