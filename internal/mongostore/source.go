// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/filmoteca/internal/config"
	"github.com/tomtom215/filmoteca/internal/logging"
	"github.com/tomtom215/filmoteca/internal/metrics"
	"github.com/tomtom215/filmoteca/internal/models"
)

const breakerName = "mongo-catalog"

// Sink receives decoded rows. *database.DB satisfies it.
type Sink interface {
	InsertMovies(ctx context.Context, movies []models.Movie) error
	InsertCredits(ctx context.Context, credits []models.Credit) error
}

// Source reads movies and credits from two MongoDB collections.
type Source struct {
	client *mongo.Client
	cfg    config.MongoConfig
	cb     *gobreaker.CircuitBreaker[interface{}]

	// find reads a whole collection. It is findAll outside tests.
	find func(ctx context.Context, collection string) ([]bson.M, error)
}

// New connects to MongoDB and verifies the connection with a ping.
func New(ctx context.Context, cfg *config.MongoConfig) (*Source, error) {
	connectTimeout := cfg.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 10 * time.Second
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(connectTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logging.Info().
		Str("database", cfg.Database).
		Str("movies", cfg.MoviesCollection).
		Str("credits", cfg.CreditsCollection).
		Msg("Connected to Mongo catalog source")

	s := &Source{
		client: client,
		cfg:    *cfg,
		cb:     newBreaker(),
	}
	s.find = s.findAll
	return s, nil
}

// newBreaker opens after 3 consecutive failures and probes again after 30s,
// which is longer than any retry delay Load waits. Once it opens, Load stops
// retrying.
func newBreaker() *gobreaker.CircuitBreaker[interface{}] {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(breakerName).Set(0)

	return gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})
}

// execute runs fn through the circuit breaker and records the outcome.
func (s *Source) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := s.cb.Execute(fn)
	if err != nil {
		if breakerRejected(err) {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Mongo fetch rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(breakerName).
				Set(float64(s.cb.Counts().ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(breakerName).Set(0)
	return result, nil
}

// breakerRejected reports whether err came from the breaker refusing a call.
func breakerRejected(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// FetchMovies reads every document of the movies collection. Documents
// without a usable id are skipped.
func (s *Source) FetchMovies(ctx context.Context) ([]models.Movie, error) {
	result, err := s.execute(func() (interface{}, error) {
		docs, err := s.find(ctx, s.cfg.MoviesCollection)
		if err != nil {
			return nil, err
		}
		movies := make([]models.Movie, 0, len(docs))
		skipped := 0
		for _, doc := range docs {
			m, ok := decodeMovie(doc)
			if !ok {
				skipped++
				continue
			}
			movies = append(movies, m)
		}
		if skipped > 0 {
			logging.Warn().Int("skipped", skipped).Msg("Movie documents without a numeric id were skipped")
		}
		return movies, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch movies: %w", err)
	}
	return result.([]models.Movie), nil
}

// FetchCredits reads every document of the credits collection.
func (s *Source) FetchCredits(ctx context.Context) ([]models.Credit, error) {
	result, err := s.execute(func() (interface{}, error) {
		docs, err := s.find(ctx, s.cfg.CreditsCollection)
		if err != nil {
			return nil, err
		}
		credits := make([]models.Credit, 0, len(docs))
		for _, doc := range docs {
			if c, ok := decodeCredit(doc); ok {
				credits = append(credits, c)
			}
		}
		return credits, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch credits: %w", err)
	}
	return result.([]models.Credit), nil
}

// Load fetches both collections and hands them to sink. A failed fetch is
// retried up to LoadAttempts times, RetryDelay apart, unless the breaker has
// opened. Nothing is inserted until both fetches succeed in one attempt.
func (s *Source) Load(ctx context.Context, sink Sink) (movies, credits int, err error) {
	attempts := max(s.cfg.LoadAttempts, 1)

	var (
		m []models.Movie
		c []models.Credit
	)
	for attempt := 1; ; attempt++ {
		m, c, err = s.fetch(ctx)
		if err == nil {
			break
		}
		if attempt >= attempts || breakerRejected(err) || ctx.Err() != nil {
			return 0, 0, fmt.Errorf("mongo catalog unavailable after %d attempt(s): %w", attempt, err)
		}

		logging.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_attempts", attempts).
			Dur("retry_in", s.cfg.RetryDelay).
			Msg("Mongo catalog fetch failed, retrying")

		timer := time.NewTimer(s.cfg.RetryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return 0, 0, ctx.Err()
		case <-timer.C:
		}
	}

	if err := sink.InsertMovies(ctx, m); err != nil {
		return 0, 0, err
	}
	if err := sink.InsertCredits(ctx, c); err != nil {
		return len(m), 0, err
	}
	return len(m), len(c), nil
}

// fetch reads both collections concurrently.
func (s *Source) fetch(ctx context.Context) ([]models.Movie, []models.Credit, error) {
	var (
		m []models.Movie
		c []models.Credit
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var ferr error
		m, ferr = s.FetchMovies(gctx)
		return ferr
	})
	g.Go(func() error {
		var ferr error
		c, ferr = s.FetchCredits(gctx)
		return ferr
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return m, c, nil
}

// Close disconnects the client.
func (s *Source) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

func (s *Source) findAll(ctx context.Context, collection string) ([]bson.M, error) {
	queryTimeout := s.cfg.QueryTimeout
	if queryTimeout <= 0 {
		queryTimeout = 2 * time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	coll := s.client.Database(s.cfg.Database).Collection(collection)
	cursor, err := coll.Find(ctx, bson.D{}, options.Find().SetProjection(bson.D{{Key: "_id", Value: 0}}))
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := cursor.Close(context.Background()); cerr != nil {
			logging.Warn().Err(cerr).Msg("Failed to close mongo cursor")
		}
	}()

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
