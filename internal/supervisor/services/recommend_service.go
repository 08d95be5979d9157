// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/filmoteca/internal/metrics"
	"github.com/tomtom215/filmoteca/internal/recommend"
)

// Training results recorded in recommend_training_total.
const (
	TrainResultSuccess      = "success"
	TrainResultFailure      = "failure"
	TrainResultInProgress   = "in_progress"
	TrainResultInsufficient = "insufficient_items"
)

// RecommendEngine is the part of the recommendation engine the service drives.
type RecommendEngine interface {
	Train(ctx context.Context) error
	GetStatus() recommend.TrainingStatus
}

// RecommendServiceConfig holds configuration for the recommendation service.
type RecommendServiceConfig struct {
	// TrainOnStartup triggers training when the service starts.
	TrainOnStartup bool

	// TrainInterval is how often to retrain. Zero disables retraining;
	// the catalog is loaded once, so a single successful run is enough.
	TrainInterval time.Duration

	// RetryInterval is the delay before retrying after a failed run while
	// no model has been trained yet. Zero disables retries.
	RetryInterval time.Duration
}

// RecommendService trains the recommendation engine under suture
// supervision, once at startup and then on an optional schedule.
type RecommendService struct {
	engine RecommendEngine
	config RecommendServiceConfig
	logger zerolog.Logger
	name   string
}

// NewRecommendService creates a new recommendation service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRecommendService(engine RecommendEngine, cfg RecommendServiceConfig, logger zerolog.Logger) *RecommendService {
	return &RecommendService{
		engine: engine,
		config: cfg,
		logger: logger.With().Str("service", "recommend").Logger(),
		name:   "recommend-service",
	}
}

// Serve implements suture.Service.
func (s *RecommendService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("train_on_startup", s.config.TrainOnStartup).
		Dur("train_interval", s.config.TrainInterval).
		Msg("recommendation service starting")

	trained := false
	if s.config.TrainOnStartup {
		trained = s.train(ctx) == nil
	}

	for {
		wait := s.nextRun(trained)
		if wait <= 0 {
			<-ctx.Done()
			s.logger.Info().Msg("recommendation service shutting down")
			return ctx.Err()
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info().Msg("recommendation service shutting down")
			return ctx.Err()
		case <-timer.C:
			if s.train(ctx) == nil {
				trained = true
			}
		}
	}
}

// nextRun returns the delay until the next training attempt, or 0 when
// nothing is scheduled.
func (s *RecommendService) nextRun(trained bool) time.Duration {
	if !trained && s.config.RetryInterval > 0 {
		if s.config.TrainInterval > 0 && s.config.TrainInterval < s.config.RetryInterval {
			return s.config.TrainInterval
		}
		return s.config.RetryInterval
	}
	return s.config.TrainInterval
}

// train runs one training cycle and records its outcome.
func (s *RecommendService) train(ctx context.Context) error {
	start := time.Now()
	err := s.engine.Train(ctx)
	duration := time.Since(start)

	status := s.engine.GetStatus()
	result := trainResult(err)
	metrics.RecordTraining(result, duration, status.ItemCount, status.ModelVersion)

	switch result {
	case TrainResultSuccess:
		s.logger.Info().
			Int("version", status.ModelVersion).
			Int("items", status.ItemCount).
			Dur("duration", duration).
			Msg("model training complete")
	case TrainResultInProgress:
		s.logger.Debug().Msg("training already running, skipped")
	default:
		s.logger.Warn().Err(err).Str("result", result).Msg("model training failed")
	}
	return err
}

func trainResult(err error) string {
	switch {
	case err == nil:
		return TrainResultSuccess
	case errors.Is(err, recommend.ErrTrainingInProgress):
		return TrainResultInProgress
	case errors.Is(err, recommend.ErrInsufficientItems):
		return TrainResultInsufficient
	default:
		return TrainResultFailure
	}
}

// String returns the service name for logging.
func (s *RecommendService) String() string {
	return s.name
}
