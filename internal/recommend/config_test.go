// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package recommend

import (
	"testing"
	"time"
)

func TestDefaultConfig_Valid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"negative weight", func(c *Config) { c.Weights.Overview = -1 }, true},
		{"lambda above one", func(c *Config) { c.Diversity.MMRLambda = 1.5 }, true},
		{"lambda zero", func(c *Config) { c.Diversity.MMRLambda = 0 }, false},
		{"pool multiplier zero", func(c *Config) { c.Diversity.PoolMultiplier = 0 }, true},
		{"min items one", func(c *Config) { c.Training.MinItems = 1 }, true},
		{"zero timeout", func(c *Config) { c.Training.Timeout = 0 }, true},
		{"default k above max", func(c *Config) { c.Limits.DefaultK = 100 }, true},
		{"max k zero", func(c *Config) { c.Limits.MaxK = 0 }, true},
		{"zero candidates", func(c *Config) { c.Limits.MaxCandidates = 0 }, true},
		{"zero prediction timeout", func(c *Config) { c.Limits.PredictionTimeout = 0 }, true},
		{"cache ttl zero", func(c *Config) { c.Cache.TTL = 0 }, true},
		{"cache disabled ignores ttl", func(c *Config) {
			c.Cache.Enabled = false
			c.Cache.TTL = 0
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAlgorithmWeights_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   AlgorithmWeights
		want AlgorithmWeights
	}{
		{"equal", AlgorithmWeights{Overview: 1, Popularity: 1}, AlgorithmWeights{Overview: 0.5, Popularity: 0.5}},
		{"skewed", AlgorithmWeights{Overview: 3, Popularity: 1}, AlgorithmWeights{Overview: 0.75, Popularity: 0.25}},
		{"all zero", AlgorithmWeights{}, AlgorithmWeights{Overview: 0.5, Popularity: 0.5}},
		{"single", AlgorithmWeights{Popularity: 2}, AlgorithmWeights{Popularity: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalize(); got != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.Limits.MaxK = 1
	clone.Cache.TTL = time.Second
	if cfg.Limits.MaxK == 1 || cfg.Cache.TTL == time.Second {
		t.Error("Clone() shares state with original")
	}
}
