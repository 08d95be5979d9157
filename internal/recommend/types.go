// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package recommend

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotTrained is returned by Recommend before the first successful Train.
	ErrNotTrained = errors.New("recommendation model not trained")

	// ErrNotFound is returned when the query title or item is unknown.
	ErrNotFound = errors.New("item not found")

	// ErrTrainingInProgress is returned by Train when another run holds the lock.
	ErrTrainingInProgress = errors.New("training already in progress")

	// ErrInsufficientItems is returned by Train when the catalog is too small.
	ErrInsufficientItems = errors.New("insufficient items")
)

// Item represents a movie with the attributes the algorithms use.
type Item struct {
	// ID is the catalog movie id.
	ID int64 `json:"id"`

	// Title is the movie title.
	Title string `json:"title"`

	// Overview is the free-text synopsis.
	Overview string `json:"overview,omitempty"`

	// Popularity is the catalog popularity score.
	Popularity float64 `json:"popularity"`

	// VoteAverage is the mean user rating.
	VoteAverage float64 `json:"vote_average,omitempty"`

	// Year is the release year, 0 when unknown.
	Year int `json:"year,omitempty"`

	// Actors is the parsed cast list.
	Actors []string `json:"actors,omitempty"`

	// Directors holds the director names.
	Directors []string `json:"directors,omitempty"`
}

// ScoredItem represents an item with a recommendation score.
type ScoredItem struct {
	// Item is the movie metadata.
	Item Item `json:"item"`

	// Score is the combined recommendation score (0-1, higher is better).
	Score float64 `json:"score"`

	// Scores is a breakdown of normalized scores by algorithm.
	Scores map[string]float64 `json:"scores,omitempty"`
}

// Request represents a recommendation request.
type Request struct {
	// ItemID is the movie to find similar movies for.
	ItemID int64 `json:"item_id"`

	// K is the number of recommendations to return.
	// Zero means Config.Limits.DefaultK; values are clamped to [1, MaxK].
	K int `json:"k,omitempty"`

	// RequestID is a unique identifier for tracing.
	RequestID string `json:"request_id,omitempty"`
}

// Response represents a recommendation response.
type Response struct {
	// Query is the resolved query movie.
	Query Item `json:"query"`

	// Items is the ordered list of recommended movies.
	Items []ScoredItem `json:"items"`

	// TotalCandidates is the number of candidate items considered.
	TotalCandidates int `json:"total_candidates"`

	// Metadata contains timing and diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	RequestID      string    `json:"request_id"`
	ItemID         int64     `json:"item_id"`
	AlgorithmsUsed []string  `json:"algorithms_used"`
	LatencyMS      int64     `json:"latency_ms"`
	CacheHit       bool      `json:"cache_hit"`
	ModelVersion   int       `json:"model_version"`
	TrainedAt      time.Time `json:"trained_at"`
	Timestamp      time.Time `json:"timestamp"`
}

// Algorithm defines the interface all similarity algorithms implement.
type Algorithm interface {
	// Name returns the algorithm identifier ("overview", "popularity").
	Name() string

	// Train builds the model from the catalog items.
	Train(ctx context.Context, items []Item) error

	// PredictSimilar returns raw similarity scores between itemID and each
	// candidate it can score. Candidates it cannot score are omitted.
	PredictSimilar(ctx context.Context, itemID int64, candidates []int64) (map[int64]float64, error)

	// IsTrained returns whether the model has been trained.
	IsTrained() bool

	// Version returns the model version (incremented on each train).
	Version() int

	// LastTrainedAt returns when the model was last trained.
	LastTrainedAt() time.Time
}

// Reranker modifies a ranked list for diversity or other objectives.
type Reranker interface {
	// Name returns the reranker identifier.
	Name() string

	// Rerank reorders items, which arrive sorted by relevance, and returns at
	// most k of them.
	Rerank(ctx context.Context, items []ScoredItem, k int) []ScoredItem
}

// DataProvider supplies the catalog to the engine. It is implemented by the
// database layer.
type DataProvider interface {
	// GetRecommendationItems returns every movie eligible for recommendation.
	GetRecommendationItems(ctx context.Context) ([]Item, error)

	// ResolveTitle maps a title to a movie id. It returns ErrNotFound for
	// unknown titles.
	ResolveTitle(ctx context.Context, title string) (int64, error)
}

// TrainingStatus represents the current training state.
type TrainingStatus struct {
	IsTraining             bool      `json:"is_training"`
	Progress               int       `json:"progress"`
	CurrentAlgorithm       string    `json:"current_algorithm,omitempty"`
	LastTrainedAt          time.Time `json:"last_trained_at"`
	LastTrainingDurationMS int64     `json:"last_training_duration_ms"`
	LastError              string    `json:"last_error,omitempty"`
	ItemCount              int       `json:"item_count"`
	ModelVersion           int       `json:"model_version"`
}

// Metrics contains recommendation counters for observability.
type Metrics struct {
	RequestCount  int64 `json:"request_count"`
	CacheHits     int64 `json:"cache_hits"`
	CacheMisses   int64 `json:"cache_misses"`
	ErrorCount    int64 `json:"error_count"`
	TrainingCount int64 `json:"training_count"`
}
