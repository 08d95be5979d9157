// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/filmoteca/internal/cache"
)

// responseCacheName labels the engine's cache in cache_hits_total.
const responseCacheName = "recommendations"

// Engine coordinates the similarity algorithms and produces final
// recommendations. It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	// Registered algorithms and rerankers
	algorithms []Algorithm
	rerankers  []Reranker
	algMu      sync.RWMutex

	// Training state. trainMu serializes Train; statusMu guards trainStatus.
	trainMu      sync.Mutex
	statusMu     sync.RWMutex
	trainStatus  TrainingStatus
	modelVersion atomic.Int32
	snapshot     atomic.Pointer[catalogSnapshot]

	// Metrics
	requestCount  atomic.Int64
	cacheHits     atomic.Int64
	cacheMisses   atomic.Int64
	errorCount    atomic.Int64
	trainingCount atomic.Int64

	// responses is nil when caching is disabled.
	responses *cache.Cache

	requestSeq atomic.Uint64

	dataProvider DataProvider
}

// catalogSnapshot is the item set the current model was trained on.
type catalogSnapshot struct {
	items      map[int64]Item
	candidates []int64 // popularity desc, id asc, capped at Limits.MaxCandidates
	trainedAt  time.Time
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config:     cfg,
		logger:     logger.With().Str("component", "recommend").Logger(),
		algorithms: make([]Algorithm, 0),
		rerankers:  make([]Reranker, 0),
	}
	if cfg.Cache.Enabled {
		e.responses = cache.NewNamed(responseCacheName, cfg.Cache.TTL, cache.WithMaxEntries(cfg.Cache.MaxEntries))
	}
	return e, nil
}

// Close stops the response cache sweeper.
func (e *Engine) Close() {
	if e.responses != nil {
		e.responses.Close()
	}
}

// SetDataProvider sets the data provider for training and title resolution.
func (e *Engine) SetDataProvider(dp DataProvider) {
	e.dataProvider = dp
}

// RegisterAlgorithm adds an algorithm to the ensemble.
func (e *Engine) RegisterAlgorithm(alg Algorithm) {
	e.algMu.Lock()
	defer e.algMu.Unlock()

	e.algorithms = append(e.algorithms, alg)
	e.logger.Info().
		Str("algorithm", alg.Name()).
		Msg("registered algorithm")
}

// RegisterReranker adds a reranker to the post-processing pipeline.
func (e *Engine) RegisterReranker(rr Reranker) {
	e.algMu.Lock()
	defer e.algMu.Unlock()

	e.rerankers = append(e.rerankers, rr)
	e.logger.Info().
		Str("reranker", rr.Name()).
		Msg("registered reranker")
}

// AlgorithmNames returns the names of the registered algorithms.
func (e *Engine) AlgorithmNames() []string {
	algs := e.getAlgorithms()
	names := make([]string, len(algs))
	for i, a := range algs {
		names[i] = a.Name()
	}
	return names
}

// RecommendByTitle resolves title through the data provider and returns
// the movies most similar to it.
func (e *Engine) RecommendByTitle(ctx context.Context, title string, k int) (*Response, error) {
	if e.snapshot.Load() == nil {
		return nil, ErrNotTrained
	}
	if e.dataProvider == nil {
		return nil, fmt.Errorf("data provider not set")
	}

	id, err := e.dataProvider.ResolveTitle(ctx, title)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		e.errorCount.Add(1)
		return nil, fmt.Errorf("resolve title: %w", err)
	}

	return e.Recommend(ctx, Request{ItemID: id, K: k})
}

// Recommend returns the movies most similar to req.ItemID.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	snap := e.snapshot.Load()
	if snap == nil {
		return nil, ErrNotTrained
	}

	req = e.prepareRequest(req)
	logger := e.createRequestLogger(req)
	logger.Debug().Msg("processing recommendation request")

	if resp := e.tryGetCachedResponse(req, start, logger); resp != nil {
		return resp, nil
	}

	query, ok := snap.items[req.ItemID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, req.ItemID)
	}

	candidates := excludeItem(snap.candidates, req.ItemID)
	if len(candidates) == 0 {
		logger.Debug().Msg("no candidates available")
		return e.emptyResponse(req, query, start), nil
	}

	scoredItems, algorithmsUsed, err := e.scoreAndRankItems(ctx, req, snap, candidates)
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("score candidates: %w", err)
	}

	resp := &Response{
		Query:           query,
		Items:           scoredItems,
		TotalCandidates: len(candidates),
		Metadata:        e.buildResponseMetadata(req, algorithmsUsed, start, false),
	}
	e.cacheResponse(req, resp)

	logger.Debug().
		Int("candidates", len(candidates)).
		Int("returned", len(scoredItems)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// prepareRequest applies defaults, clamps K and assigns a request ID.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = fmt.Sprintf("rec-%d-%d", time.Now().UnixNano(), e.requestSeq.Add(1))
	}

	if req.K == 0 {
		req.K = e.config.Limits.DefaultK
	}
	if req.K < 1 {
		req.K = 1
	}
	if req.K > e.config.Limits.MaxK {
		req.K = e.config.Limits.MaxK
	}

	return req
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Int64("item_id", req.ItemID).
		Int("k", req.K).
		Logger()
}

// tryGetCachedResponse attempts to retrieve a cached response.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) tryGetCachedResponse(req Request, start time.Time, logger zerolog.Logger) *Response {
	if e.responses == nil {
		return nil
	}

	resp := e.checkCache(e.cacheKey(req))
	if resp == nil {
		e.cacheMisses.Add(1)
		return nil
	}

	e.cacheHits.Add(1)
	resp.Metadata.CacheHit = true
	resp.Metadata.RequestID = req.RequestID
	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	logger.Debug().Msg("cache hit")
	return resp
}

// excludeItem returns candidates without id.
func excludeItem(candidates []int64, id int64) []int64 {
	filtered := make([]int64, 0, len(candidates))
	for _, c := range candidates {
		if c != id {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// scoreAndRankItems scores candidates, sorts them and applies reranking.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) scoreAndRankItems(ctx context.Context, req Request, snap *catalogSnapshot, candidates []int64) ([]ScoredItem, []string, error) {
	algorithms := e.getAlgorithms()
	if len(algorithms) == 0 {
		return nil, nil, fmt.Errorf("no algorithms registered")
	}

	weights := e.config.Weights.Normalize().ToMap()
	results := e.runAlgorithmPredictions(ctx, req, algorithms, candidates)
	scoredItems, algorithmsUsed := e.combineAlgorithmScores(results, weights, snap)

	sortScoredItems(scoredItems)

	pool := req.K * e.config.Diversity.PoolMultiplier
	if len(scoredItems) > pool {
		scoredItems = scoredItems[:pool]
	}

	scoredItems = e.applyRerankers(ctx, scoredItems, req.K)

	if len(scoredItems) > req.K {
		scoredItems = scoredItems[:req.K]
	}

	return scoredItems, algorithmsUsed, nil
}

// sortScoredItems orders by score desc, popularity desc, id asc.
func sortScoredItems(items []ScoredItem) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Item.Popularity != b.Item.Popularity {
			return a.Item.Popularity > b.Item.Popularity
		}
		return a.Item.ID < b.Item.ID
	})
}

// getAlgorithms returns a copy of registered algorithms.
func (e *Engine) getAlgorithms() []Algorithm {
	e.algMu.RLock()
	defer e.algMu.RUnlock()
	out := make([]Algorithm, len(e.algorithms))
	copy(out, e.algorithms)
	return out
}

// algResult holds the result of a single algorithm prediction.
type algResult struct {
	name   string
	scores map[int64]float64
	err    error
}

// runAlgorithmPredictions runs all algorithms in parallel.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) runAlgorithmPredictions(ctx context.Context, req Request, algorithms []Algorithm, candidates []int64) []algResult {
	results := make([]algResult, len(algorithms))
	var wg sync.WaitGroup

	for i, alg := range algorithms {
		wg.Add(1)
		go func(idx int, a Algorithm) {
			defer wg.Done()
			results[idx] = e.runSingleAlgorithm(ctx, req, a, candidates)
		}(i, alg)
	}

	wg.Wait()
	return results
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) runSingleAlgorithm(ctx context.Context, req Request, alg Algorithm, candidates []int64) algResult {
	result := algResult{name: alg.Name()}

	if !alg.IsTrained() {
		return result
	}

	algCtx, cancel := context.WithTimeout(ctx, e.config.Limits.PredictionTimeout)
	defer cancel()

	result.scores, result.err = alg.PredictSimilar(algCtx, req.ItemID, candidates)
	return result
}

// combineAlgorithmScores normalizes each algorithm's scores and sums them
// with the configured weights.
func (e *Engine) combineAlgorithmScores(results []algResult, weights map[string]float64, snap *catalogSnapshot) ([]ScoredItem, []string) {
	combinedScores := make(map[int64]float64)
	scoreBreakdown := make(map[int64]map[string]float64)
	algorithmsUsed := make([]string, 0, len(results))

	for _, result := range results {
		if !e.shouldUseResult(result, weights) {
			continue
		}

		algorithmsUsed = append(algorithmsUsed, result.name)
		weight := weights[result.name]

		for itemID, score := range NormalizeScores(result.scores) {
			combinedScores[itemID] += weight * score
			if scoreBreakdown[itemID] == nil {
				scoreBreakdown[itemID] = make(map[string]float64)
			}
			scoreBreakdown[itemID][result.name] = score
		}
	}

	items := make([]ScoredItem, 0, len(combinedScores))
	for itemID, score := range combinedScores {
		items = append(items, ScoredItem{
			Item:   snap.items[itemID],
			Score:  score,
			Scores: scoreBreakdown[itemID],
		})
	}
	return items, algorithmsUsed
}

// shouldUseResult checks if an algorithm result should be used.
func (e *Engine) shouldUseResult(result algResult, weights map[string]float64) bool {
	if result.err != nil {
		e.logger.Warn().
			Str("algorithm", result.name).
			Err(result.err).
			Msg("algorithm prediction failed")
		return false
	}

	if len(result.scores) == 0 {
		return false
	}

	return weights[result.name] > 0
}

// NormalizeScores returns a min-max normalized copy of scores in [0, 1].
// When every score is equal each becomes 0.5.
func NormalizeScores(scores map[int64]float64) map[int64]float64 {
	out := make(map[int64]float64, len(scores))
	if len(scores) == 0 {
		return out
	}

	var minScore, maxScore float64
	first := true
	for _, s := range scores {
		if first {
			minScore, maxScore = s, s
			first = false
			continue
		}
		if s < minScore {
			minScore = s
		}
		if s > maxScore {
			maxScore = s
		}
	}

	rang := maxScore - minScore
	for id, s := range scores {
		if rang == 0 {
			out[id] = 0.5
			continue
		}
		out[id] = (s - minScore) / rang
	}
	return out
}

// applyRerankers applies post-processing rerankers to the scored items.
func (e *Engine) applyRerankers(ctx context.Context, items []ScoredItem, k int) []ScoredItem {
	e.algMu.RLock()
	rerankers := e.rerankers
	e.algMu.RUnlock()

	for _, rr := range rerankers {
		items = rr.Rerank(ctx, items, k)
	}

	return items
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) buildResponseMetadata(req Request, algorithmsUsed []string, start time.Time, cacheHit bool) ResponseMetadata {
	var trainedAt time.Time
	if snap := e.snapshot.Load(); snap != nil {
		trainedAt = snap.trainedAt
	}

	return ResponseMetadata{
		RequestID:      req.RequestID,
		ItemID:         req.ItemID,
		AlgorithmsUsed: algorithmsUsed,
		LatencyMS:      time.Since(start).Milliseconds(),
		CacheHit:       cacheHit,
		ModelVersion:   int(e.modelVersion.Load()),
		TrainedAt:      trainedAt,
		Timestamp:      time.Now(),
	}
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) emptyResponse(req Request, query Item, start time.Time) *Response {
	return &Response{
		Query:    query,
		Items:    []ScoredItem{},
		Metadata: e.buildResponseMetadata(req, []string{}, start, false),
	}
}

// Train trains all registered algorithms on the catalog items.
// Returns ErrTrainingInProgress immediately if another Train is running.
func (e *Engine) Train(ctx context.Context) error {
	if !e.trainMu.TryLock() {
		return ErrTrainingInProgress
	}
	defer e.trainMu.Unlock()

	if e.dataProvider == nil {
		return fmt.Errorf("data provider not set")
	}

	start := time.Now()
	e.updateStatus(func(s *TrainingStatus) {
		s.IsTraining = true
		s.Progress = 0
		s.LastError = ""
	})
	e.logger.Info().Msg("starting model training")

	defer e.updateStatus(func(s *TrainingStatus) {
		s.IsTraining = false
		s.CurrentAlgorithm = ""
		s.LastTrainingDurationMS = time.Since(start).Milliseconds()
	})

	trainCtx, cancel := context.WithTimeout(ctx, e.config.Training.Timeout)
	defer cancel()

	items, err := e.loadTrainingData(trainCtx)
	if err == nil {
		err = e.trainAllAlgorithms(trainCtx, items)
	}
	if err != nil {
		e.updateStatus(func(s *TrainingStatus) { s.LastError = err.Error() })
		return err
	}

	e.completeTraining(items)

	status := e.GetStatus()
	e.logger.Info().
		Int("version", status.ModelVersion).
		Int("items", status.ItemCount).
		Dur("duration", time.Since(start)).
		Msg("model training complete")

	return nil
}

// loadTrainingData loads items, drops duplicate ids and checks the minimum.
func (e *Engine) loadTrainingData(ctx context.Context) ([]Item, error) {
	raw, err := e.dataProvider.GetRecommendationItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}

	seen := make(map[int64]struct{}, len(raw))
	items := make([]Item, 0, len(raw))
	for i := range raw {
		if _, dup := seen[raw[i].ID]; dup {
			continue
		}
		seen[raw[i].ID] = struct{}{}
		items = append(items, raw[i])
	}

	if len(items) < e.config.Training.MinItems {
		return nil, fmt.Errorf("%w: %d < %d", ErrInsufficientItems, len(items), e.config.Training.MinItems)
	}

	e.updateStatus(func(s *TrainingStatus) { s.ItemCount = len(items) })
	e.logger.Info().Int("items", len(items)).Msg("loaded training data")
	return items, nil
}

// trainAllAlgorithms trains each registered algorithm. Individual failures
// are logged; training fails only when no algorithm succeeds.
func (e *Engine) trainAllAlgorithms(ctx context.Context, items []Item) error {
	algorithms := e.getAlgorithms()
	if len(algorithms) == 0 {
		return fmt.Errorf("no algorithms registered")
	}

	var lastErr error
	trained := 0
	for i, alg := range algorithms {
		e.updateStatus(func(s *TrainingStatus) {
			s.CurrentAlgorithm = alg.Name()
			s.Progress = (i * 100) / len(algorithms)
		})

		if err := alg.Train(ctx, items); err != nil {
			e.logger.Error().
				Str("algorithm", alg.Name()).
				Err(err).
				Msg("algorithm training failed")
			lastErr = err
			continue
		}
		trained++

		e.logger.Debug().
			Str("algorithm", alg.Name()).
			Msg("algorithm training complete")
	}

	if trained == 0 {
		return fmt.Errorf("all algorithms failed to train: %w", lastErr)
	}
	return nil
}

// completeTraining publishes the new snapshot and bumps the model version.
func (e *Engine) completeTraining(items []Item) {
	snap := &catalogSnapshot{
		items:     make(map[int64]Item, len(items)),
		trainedAt: time.Now(),
	}
	for i := range items {
		snap.items[items[i].ID] = items[i]
	}

	ordered := make([]Item, len(items))
	copy(ordered, items)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Popularity != ordered[j].Popularity {
			return ordered[i].Popularity > ordered[j].Popularity
		}
		return ordered[i].ID < ordered[j].ID
	})
	if len(ordered) > e.config.Limits.MaxCandidates {
		ordered = ordered[:e.config.Limits.MaxCandidates]
	}
	snap.candidates = make([]int64, len(ordered))
	for i := range ordered {
		snap.candidates[i] = ordered[i].ID
	}

	e.snapshot.Store(snap)
	version := e.modelVersion.Add(1)
	e.trainingCount.Add(1)

	e.updateStatus(func(s *TrainingStatus) {
		s.LastTrainedAt = snap.trainedAt
		s.ModelVersion = int(version)
		s.Progress = 100
	})

	if e.config.Cache.InvalidateOnTrain {
		e.clearCache()
	}
}

func (e *Engine) updateStatus(fn func(*TrainingStatus)) {
	e.statusMu.Lock()
	fn(&e.trainStatus)
	e.statusMu.Unlock()
}

// IsTrained reports whether at least one Train has completed.
func (e *Engine) IsTrained() bool {
	return e.snapshot.Load() != nil
}

// ModelVersion returns the number of completed training runs.
func (e *Engine) ModelVersion() int {
	return int(e.modelVersion.Load())
}

// GetStatus returns the current training status.
func (e *Engine) GetStatus() TrainingStatus {
	e.statusMu.RLock()
	defer e.statusMu.RUnlock()
	return e.trainStatus
}

// GetMetrics returns the current engine counters.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		RequestCount:  e.requestCount.Load(),
		CacheHits:     e.cacheHits.Load(),
		CacheMisses:   e.cacheMisses.Load(),
		ErrorCount:    e.errorCount.Load(),
		TrainingCount: e.trainingCount.Load(),
	}
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

//nolint:gocritic // hugeParam: req passed by value for simplicity
func (e *Engine) cacheKey(req Request) string {
	return fmt.Sprintf("rec:%d:%d", req.ItemID, req.K)
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) cacheResponse(req Request, resp *Response) {
	if e.responses != nil {
		e.responses.Set(e.cacheKey(req), resp)
	}
}

// checkCache returns a copy of a live cached response, or nil.
func (e *Engine) checkCache(key string) *Response {
	v, ok := e.responses.Get(key)
	if !ok {
		return nil
	}
	cached, ok := v.(*Response)
	if !ok {
		return nil
	}

	out := *cached
	out.Items = make([]ScoredItem, len(cached.Items))
	copy(out.Items, cached.Items)
	return &out
}

func (e *Engine) clearCache() {
	if e.responses == nil {
		return
	}
	e.responses.Clear()
	e.logger.Debug().Msg("cache cleared")
}
