// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/filmoteca/internal/config"
	"github.com/tomtom215/filmoteca/internal/recommend"
	"github.com/tomtom215/filmoteca/internal/recommend/algorithms"
	"github.com/tomtom215/filmoteca/internal/recommend/reranking"
	"github.com/tomtom215/filmoteca/internal/supervisor"
	"github.com/tomtom215/filmoteca/internal/supervisor/services"
)

// RecommendComponents holds all recommendation-related components.
type RecommendComponents struct {
	Engine  *recommend.Engine
	Service *services.RecommendService
}

// initRecommend builds the engine, registers the configured algorithms and
// adds the training service to the catalog layer of the tree. It returns
// nil, nil when recommendations are disabled.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(cfg *config.Config, dp recommend.DataProvider, logger zerolog.Logger, tree *supervisor.SupervisorTree) (*RecommendComponents, error) {
	if !cfg.Recommend.Enabled {
		logger.Info().Msg("Recommendation engine disabled (RECOMMEND_ENABLED=false)")
		return nil, nil
	}

	logger.Info().
		Strs("algorithms", cfg.Recommend.Algorithms).
		Bool("train_on_startup", cfg.Recommend.TrainOnStartup).
		Dur("train_interval", cfg.Recommend.TrainInterval).
		Msg("initializing recommendation engine")

	engine, err := recommend.NewEngine(buildEngineConfig(cfg), logger)
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}
	engine.SetDataProvider(dp)

	if err := registerAlgorithms(engine, cfg, logger); err != nil {
		return nil, err
	}

	if cfg.Recommend.DiversityLambda < 1 {
		engine.RegisterReranker(reranking.NewMMR(cfg.Recommend.DiversityLambda))
		logger.Debug().Float64("lambda", cfg.Recommend.DiversityLambda).Msg("registered MMR reranker")
	}

	service := services.NewRecommendService(engine, services.RecommendServiceConfig{
		TrainOnStartup: cfg.Recommend.TrainOnStartup,
		TrainInterval:  cfg.Recommend.TrainInterval,
		RetryInterval:  cfg.Recommend.RetryInterval,
	}, logger)
	tree.AddCatalogService(service)
	logger.Info().Msg("recommendation service added to supervisor tree")

	return &RecommendComponents{
		Engine:  engine,
		Service: service,
	}, nil
}

// buildEngineConfig maps application config onto the engine's own config,
// starting from its defaults.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	rc := recommend.DefaultConfig()
	rc.Weights = recommend.AlgorithmWeights{
		Overview:   cfg.Recommend.OverviewWeight,
		Popularity: cfg.Recommend.PopularityWeight,
	}
	rc.Diversity.MMRLambda = cfg.Recommend.DiversityLambda
	rc.Training.MinItems = cfg.Recommend.MinItems
	if cfg.Recommend.TrainTimeout > 0 {
		rc.Training.Timeout = cfg.Recommend.TrainTimeout
	}
	rc.Limits.DefaultK = cfg.Recommend.DefaultK
	rc.Limits.MaxK = cfg.Recommend.MaxK
	rc.Limits.MaxCandidates = cfg.Recommend.MaxCandidates
	rc.Cache.TTL = cfg.Recommend.CacheTTL
	rc.Cache.Enabled = cfg.Recommend.CacheTTL > 0
	return rc
}

//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func registerAlgorithms(engine *recommend.Engine, cfg *config.Config, logger zerolog.Logger) error {
	for _, name := range cfg.Recommend.Algorithms {
		switch name {
		case "overview":
			engine.RegisterAlgorithm(algorithms.NewOverview(algorithms.OverviewConfig{
				UseIDF: cfg.Recommend.UseIDF,
			}))
		case "popularity":
			engine.RegisterAlgorithm(algorithms.NewPopularity())
		default:
			return fmt.Errorf("unknown recommendation algorithm %q", name)
		}
		logger.Debug().Str("algorithm", name).Msg("registered algorithm")
	}
	return nil
}
