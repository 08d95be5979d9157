// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/filmoteca/internal/metrics"
	"github.com/tomtom215/filmoteca/internal/models"
	"github.com/tomtom215/filmoteca/internal/recommend"
)

func TestRecomendacion_Success(t *testing.T) {
	rec := &fakeRecommender{trained: true}
	_, srv := newTestServer(t, newFakeStore(), rec, nil)

	before := testutil.ToFloat64(metrics.RecommendRequests.WithLabelValues(recommendSuccess))

	w, env := get(t, srv, "/api/v1/recomendacion/Toy%20Story?k=2")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var got models.Recommendation
	decodeData(t, env, &got)
	if got.Titulo != "Toy Story" {
		t.Errorf("titulo = %q", got.Titulo)
	}
	if len(got.Recomendaciones) != 2 {
		t.Fatalf("got %d recommendations", len(got.Recomendaciones))
	}
	if got.Recomendaciones[0].Titulo != "Toy Story 2" || got.Recomendaciones[0].Score != 0.91 {
		t.Errorf("first recommendation = %+v", got.Recomendaciones[0])
	}
	if got.ModelVersion != 2 {
		t.Errorf("model_version = %d", got.ModelVersion)
	}
	if rec.lastK != 2 {
		t.Errorf("k passed to engine = %d, want 2", rec.lastK)
	}

	after := testutil.ToFloat64(metrics.RecommendRequests.WithLabelValues(recommendSuccess))
	if after-before != 1 {
		t.Errorf("success counter delta = %v, want 1", after-before)
	}
}

func TestRecomendacion_DefaultK(t *testing.T) {
	rec := &fakeRecommender{trained: true}
	_, srv := newTestServer(t, newFakeStore(), rec, nil)

	get(t, srv, "/api/v1/recomendacion/Toy%20Story")
	if rec.lastK != 0 {
		t.Errorf("k = %d, want 0 so the engine applies its default", rec.lastK)
	}
}

func TestRecomendacion_Errors(t *testing.T) {
	tests := []struct {
		name       string
		rec        Recommender
		path       string
		wantStatus int
		wantCode   string
	}{
		{"not trained", &fakeRecommender{}, "/api/v1/recomendacion/Toy%20Story", http.StatusServiceUnavailable, CodeModelNotReady},
		{"unknown title", &fakeRecommender{trained: true}, "/api/v1/recomendacion/Toy", http.StatusNotFound, CodeTitleNotFound},
		{"engine failure", &fakeRecommender{trained: true, err: errors.New("boom")}, "/api/v1/recomendacion/Toy%20Story", http.StatusInternalServerError, CodeInternal},
		{"disabled", nil, "/api/v1/recomendacion/Toy%20Story", http.StatusServiceUnavailable, CodeModelNotReady},
		{"k not a number", &fakeRecommender{trained: true}, "/api/v1/recomendacion/Toy%20Story?k=abc", http.StatusBadRequest, CodeValidation},
		{"negative k", &fakeRecommender{trained: true}, "/api/v1/recomendacion/Toy%20Story?k=-1", http.StatusBadRequest, CodeValidation},
		{"blank title", &fakeRecommender{trained: true}, "/api/v1/recomendacion/%20", http.StatusBadRequest, CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, srv := newTestServer(t, newFakeStore(), tt.rec, nil)
			w, env := get(t, srv, tt.path)
			wantError(t, w, env, tt.wantStatus, tt.wantCode)
		})
	}
}

func TestRecomendacion_NotTrainedRetryAfter(t *testing.T) {
	_, srv := newTestServer(t, newFakeStore(), &fakeRecommender{}, nil)

	w, _ := get(t, srv, "/api/v1/recomendacion/Toy%20Story")
	if w.Header().Get("Retry-After") == "" {
		t.Error("503 MODEL_NOT_READY should carry Retry-After")
	}
}

func TestRecomendacion_NotFoundSuggests(t *testing.T) {
	_, srv := newTestServer(t, newFakeStore(), &fakeRecommender{trained: true}, nil)

	w, env := get(t, srv, "/api/v1/recomendacion/Toy")
	wantError(t, w, env, http.StatusNotFound, CodeTitleNotFound)
	if s, ok := env.Error.Details["sugerencias"].([]interface{}); !ok || len(s) == 0 {
		t.Errorf("expected suggestions, got %v", env.Error.Details)
	}
}

func TestRecomendacion_GlobalRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Security.RecommendRPS = 0.001
	cfg.Security.RecommendBurst = 1
	_, srv := newTestServer(t, newFakeStore(), &fakeRecommender{trained: true}, cfg)

	before := testutil.ToFloat64(metrics.APIRateLimitHits.WithLabelValues("recommend"))

	w, _ := get(t, srv, "/api/v1/recomendacion/Toy%20Story")
	if w.Code != http.StatusOK {
		t.Fatalf("first request status = %d", w.Code)
	}

	w, env := get(t, srv, "/api/v1/recomendacion/Toy%20Story")
	wantError(t, w, env, http.StatusTooManyRequests, CodeRateLimited)
	if w.Header().Get("Retry-After") == "" {
		t.Error("429 should carry Retry-After")
	}

	after := testutil.ToFloat64(metrics.APIRateLimitHits.WithLabelValues("recommend"))
	if after-before != 1 {
		t.Errorf("rate limit counter delta = %v, want 1", after-before)
	}

	// Catalog endpoints are not affected by the recommendation limiter.
	w, _ = get(t, srv, "/api/v1/score_titulo/Toy%20Story")
	if w.Code != http.StatusOK {
		t.Errorf("catalog status = %d", w.Code)
	}
}

func TestRecomendacion_RejectedBeforeEngine(t *testing.T) {
	cfg := testConfig()
	cfg.Security.RecommendRPS = 0.001
	cfg.Security.RecommendBurst = 1
	rec := &fakeRecommender{trained: true}
	_, srv := newTestServer(t, newFakeStore(), rec, cfg)

	get(t, srv, "/api/v1/recomendacion/Toy%20Story?k=3")
	get(t, srv, "/api/v1/recomendacion/Toy%20Story?k=4")
	if rec.lastK != 3 {
		t.Errorf("rate limited request reached the engine (last k = %d)", rec.lastK)
	}
}

func TestModelStatus(t *testing.T) {
	_, srv := newTestServer(t, newFakeStore(), &fakeRecommender{trained: true}, nil)

	w, env := get(t, srv, "/api/v1/modelo/estado")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var got recommend.TrainingStatus
	decodeData(t, env, &got)
	if got.ModelVersion != 2 || got.ItemCount != 3 {
		t.Errorf("unexpected status %+v", got)
	}

	_, disabled := newTestServer(t, newFakeStore(), nil, nil)
	w, env = get(t, disabled, "/api/v1/modelo/estado")
	wantError(t, w, env, http.StatusServiceUnavailable, CodeModelNotReady)
}
