// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package api

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/filmoteca/internal/metrics"
	"github.com/tomtom215/filmoteca/internal/models"
	"github.com/tomtom215/filmoteca/internal/recommend"
)

// recommendTimeout bounds a single recommendation request.
const recommendTimeout = 10 * time.Second

// Outcomes recorded in recommend_requests_total.
const (
	recommendSuccess     = "success"
	recommendNotFound    = "not_found"
	recommendNotReady    = "not_ready"
	recommendRateLimited = "rate_limited"
	recommendError       = "error"
)

// Recomendacion returns the movies most similar to a title.
//
// @Summary Similar movies
// @Description Ranks catalog movies by content similarity to the given title. The title itself is never recommended.
// @Tags Recommendations
// @Produce json
// @Param titulo path string true "Movie title"
// @Param k query int false "Number of recommendations (default 5, capped at recommend.max_k)"
// @Success 200 {object} models.APIResponse{data=models.Recommendation}
// @Failure 400 {object} models.APIResponse "VALIDATION_ERROR"
// @Failure 404 {object} models.APIResponse "TITLE_NOT_FOUND"
// @Failure 429 {object} models.APIResponse "RATE_LIMITED"
// @Failure 503 {object} models.APIResponse "MODEL_NOT_READY"
// @Router /recomendacion/{titulo} [get]
func (h *Handler) Recomendacion(w http.ResponseWriter, r *http.Request) {
	title, ok := h.pathText(w, r, "titulo")
	if !ok {
		return
	}

	k, apiErr := parseIntQuery(r, "k", 0)
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	req := RecommendationRequest{K: k}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	if h.engine == nil {
		respondError(w, r, http.StatusServiceUnavailable, CodeModelNotReady, "Las recomendaciones están deshabilitadas", nil)
		return
	}

	if h.limiter != nil && !h.limiter.Allow() {
		metrics.APIRateLimitHits.WithLabelValues("recommend").Inc()
		metrics.RecordRecommendation(recommendRateLimited, 0)
		w.Header().Set("Retry-After", strconv.Itoa(h.retryAfterSeconds()))
		respondError(w, r, http.StatusTooManyRequests, CodeRateLimited, msgRateLimited, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), recommendTimeout)
	defer cancel()

	start := time.Now()
	resp, err := h.engine.RecommendByTitle(ctx, title, req.K)
	duration := time.Since(start)
	if err != nil {
		h.respondRecommendError(w, r, title, err, duration)
		return
	}
	metrics.RecordRecommendation(recommendSuccess, duration)

	items := make([]models.RecommendedMovie, len(resp.Items))
	for i, it := range resp.Items {
		items[i] = models.RecommendedMovie{
			ID:     it.Item.ID,
			Titulo: it.Item.Title,
			Score:  it.Score,
		}
	}

	meta := newMetadata(r)
	meta.Cached = resp.Metadata.CacheHit
	meta.QueryTimeMS = duration.Milliseconds()
	respondSuccess(w, r, &models.Recommendation{
		Titulo:          resp.Query.Title,
		Recomendaciones: items,
		Algoritmos:      resp.Metadata.AlgorithmsUsed,
		ModelVersion:    int64(resp.Metadata.ModelVersion),
	}, meta)
}

func (h *Handler) respondRecommendError(w http.ResponseWriter, r *http.Request, title string, err error, duration time.Duration) {
	switch {
	case errors.Is(err, recommend.ErrNotTrained):
		metrics.RecordRecommendation(recommendNotReady, duration)
		w.Header().Set("Retry-After", "30")
		respondError(w, r, http.StatusServiceUnavailable, CodeModelNotReady, msgModelNotReady, nil)
	case errors.Is(err, recommend.ErrNotFound):
		metrics.RecordRecommendation(recommendNotFound, duration)
		respondAPIError(w, r, http.StatusNotFound, h.titleNotFoundError(title), nil)
	default:
		metrics.RecordRecommendation(recommendError, duration)
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "Failed to compute recommendations", err)
	}
}

// retryAfterSeconds estimates when the limiter will admit the next request.
func (h *Handler) retryAfterSeconds() int {
	limit := float64(h.limiter.Limit())
	if limit <= 0 {
		return 1
	}
	return int(math.Max(1, math.Ceil(1/limit)))
}

// ModelStatus reports the state of the recommendation model.
//
// @Summary Recommendation model status
// @Description Training progress, last training time and model version.
// @Tags Recommendations
// @Produce json
// @Success 200 {object} models.APIResponse{data=recommend.TrainingStatus}
// @Failure 503 {object} models.APIResponse "recommendations disabled"
// @Router /modelo/estado [get]
func (h *Handler) ModelStatus(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		respondError(w, r, http.StatusServiceUnavailable, CodeModelNotReady, "Las recomendaciones están deshabilitadas", nil)
		return
	}
	respondSuccess(w, r, h.engine.GetStatus(), newMetadata(r))
}
