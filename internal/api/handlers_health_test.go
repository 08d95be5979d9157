// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/tomtom215/filmoteca/internal/models"
)

func TestHealth(t *testing.T) {
	tests := []struct {
		name        string
		pingErr     error
		rec         Recommender
		wantStatus  string
		wantTrained bool
	}{
		{"healthy", nil, &fakeRecommender{trained: true}, "healthy", true},
		{"model not trained", nil, &fakeRecommender{}, "degraded", false},
		{"database down", errors.New("closed"), &fakeRecommender{trained: true}, "degraded", true},
		{"recommendations disabled", nil, nil, "healthy", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			store.pingErr = tt.pingErr
			h, srv := newTestServer(t, store, tt.rec, nil)
			h.SetVersion("1.0.0")

			w, env := get(t, srv, "/api/v1/health")
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d", w.Code)
			}
			var got models.HealthStatus
			decodeData(t, env, &got)
			if got.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", got.Status, tt.wantStatus)
			}
			if got.ModelTrained != tt.wantTrained {
				t.Errorf("model_trained = %v, want %v", got.ModelTrained, tt.wantTrained)
			}
			if got.DatabaseConnected != (tt.pingErr == nil) {
				t.Errorf("database_connected = %v", got.DatabaseConnected)
			}
			if got.Version != "1.0.0" || got.CatalogSource != "csv" {
				t.Errorf("version/source = %q/%q", got.Version, got.CatalogSource)
			}
		})
	}
}

func TestHealth_TrainedAt(t *testing.T) {
	_, srv := newTestServer(t, newFakeStore(), &fakeRecommender{trained: true}, nil)

	_, env := get(t, srv, "/api/v1/health")
	var got models.HealthStatus
	decodeData(t, env, &got)
	if got.ModelTrainedAt == nil || got.ModelTrainedAt.Year() != 2026 {
		t.Errorf("model_trained_at = %v", got.ModelTrainedAt)
	}
}

func TestHealthLive(t *testing.T) {
	store := newFakeStore()
	store.pingErr = errors.New("closed")
	_, srv := newTestServer(t, store, &fakeRecommender{}, nil)

	w, env := get(t, srv, "/api/v1/health/live")
	if w.Code != http.StatusOK || env.Status != "success" {
		t.Errorf("liveness should not depend on dependencies: %d %s", w.Code, env.Status)
	}
}

func TestHealthReady(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		rec        Recommender
		wantCode   int
		wantStatus string
	}{
		{"ready", nil, &fakeRecommender{trained: true}, http.StatusOK, "ready"},
		{"untrained", nil, &fakeRecommender{}, http.StatusServiceUnavailable, "not_ready"},
		{"database down", errors.New("closed"), &fakeRecommender{trained: true}, http.StatusServiceUnavailable, "not_ready"},
		{"disabled recommender", nil, nil, http.StatusOK, "ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			store.pingErr = tt.pingErr
			_, srv := newTestServer(t, store, tt.rec, nil)

			w, env := get(t, srv, "/api/v1/health/ready")
			if w.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", w.Code, tt.wantCode)
			}
			if env.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", env.Status, tt.wantStatus)
			}
		})
	}
}
