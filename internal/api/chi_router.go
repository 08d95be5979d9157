// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/filmoteca/internal/config"
	"github.com/tomtom215/filmoteca/internal/middleware"
)

// compressLevel is the gzip level for JSON responses.
const compressLevel = 5

// Router sets up HTTP routes using the Chi router.
type Router struct {
	handler *Handler
	guards  *edgeGuards
}

// NewRouter creates a router serving handler with the CORS and rate limit
// settings of cfg.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	return &Router{
		handler: handler,
		guards:  newEdgeGuards(&cfg.Security),
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID) // X-Request-ID plus logging context
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger)
	r.Use(router.guards.cors) // must be global to answer OPTIONS preflight

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusNotFound, CodeNotFound, "Ruta no encontrada", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Method not allowed", nil)
	})

	// ========================
	// Health Endpoints
	// ========================
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.guards.healthLimit())
		r.Use(securityHeaders)
		r.Use(middleware.PrometheusMetrics)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
		r.Get("/", router.handler.Health)
	})

	// ========================
	// Catalog and Recommendation Endpoints
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.guards.apiLimit())
		r.Use(securityHeaders)
		r.Use(chimiddleware.Compress(compressLevel, "application/json"))
		r.Use(middleware.PrometheusMetrics)

		r.Get("/cantidad_filmaciones_mes/{mes}", router.handler.CantidadFilmacionesMes)
		r.Get("/cantidad_filmaciones_dia/{dia}", router.handler.CantidadFilmacionesDia)
		r.Get("/score_titulo/{titulo}", router.handler.ScoreTitulo)
		r.Get("/votos_titulo/{titulo}", router.handler.VotosTitulo)
		r.Get("/get_actor/{actor}", router.handler.GetActor)
		r.Get("/get_director/{director}", router.handler.GetDirector)
		r.Get("/titulos/sugerencias", router.handler.TitleSuggestions)
		r.Get("/catalogo/resumen", router.handler.CatalogSummary)

		r.Get("/recomendacion/{titulo}", router.handler.Recomendacion)
		r.Get("/modelo/estado", router.handler.ModelStatus)
	})

	// ========================
	// Legacy Endpoints
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(router.guards.apiLimit())
		r.Use(middleware.PrometheusMetrics)
		r.Get("/cantidad_filmaciones_mes/{mes}", router.handler.LegacyCantidadFilmacionesMes)
	})

	// ========================
	// Observability
	// ========================
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/swagger/index.html", http.StatusFound)
	})

	return r
}
