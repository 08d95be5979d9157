// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/filmoteca/internal/metrics"
	"github.com/tomtom215/filmoteca/internal/models"
)

// Health handles health check requests
//
// @Summary Get system health status
// @Description Returns database connectivity, model training state, catalog source and uptime. The status is "degraded" while either dependency is unavailable.
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus} "Health status retrieved successfully"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dbConnected := h.db != nil && h.db.Ping(r.Context()) == nil
	modelTrained, trainedAt := h.modelState()

	status := "healthy"
	if !dbConnected || !modelTrained {
		status = "degraded"
	}

	uptime := time.Since(h.startTime).Seconds()
	metrics.AppUptime.Set(uptime)

	health := models.HealthStatus{
		Status:            status,
		Version:           h.version,
		CatalogSource:     h.config.Catalog.Source,
		DatabaseConnected: dbConnected,
		ModelTrained:      modelTrained,
		ModelTrainedAt:    trainedAt,
		Uptime:            uptime,
	}

	respondSuccess(w, r, health, newMetadata(r))
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
//
// @Summary Kubernetes liveness probe
// @Description Returns 200 OK if the process is alive, regardless of dependencies.
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse "Service is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, newMetadata(r))
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// The service is ready once the database answers and, when recommendations
// are enabled, the first model has been trained.
//
// @Summary Kubernetes readiness probe
// @Description Returns 200 when the database answers and the recommendation model is trained, 503 otherwise.
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse "Service is ready"
// @Failure 503 {object} models.APIResponse "Service is not ready"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	dbConnected := h.db != nil && h.db.Ping(r.Context()) == nil
	modelTrained, _ := h.modelState()
	ready := dbConnected && modelTrained

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"database_connected": dbConnected,
			"model_trained":      modelTrained,
			"ready_to_serve":     ready,
			"uptime":             time.Since(h.startTime).Seconds(),
		},
		Metadata: newMetadata(r),
	})
}

// modelState reports whether recommendations can be served. A disabled
// recommender counts as trained so it never holds readiness back.
func (h *Handler) modelState() (bool, *time.Time) {
	if h.engine == nil {
		return true, nil
	}
	if !h.engine.IsTrained() {
		return false, nil
	}
	trainedAt := h.engine.GetStatus().LastTrainedAt
	if trainedAt.IsZero() {
		return true, nil
	}
	return true, &trainedAt
}
