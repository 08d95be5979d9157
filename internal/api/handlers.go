// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package api

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/filmoteca/internal/cache"
	"github.com/tomtom215/filmoteca/internal/config"
	"github.com/tomtom215/filmoteca/internal/models"
	"github.com/tomtom215/filmoteca/internal/recommend"
)

// queryCacheName labels the query cache in cache_hits_total.
const queryCacheName = "queries"

// CatalogStore is the read surface of the catalog database used by the
// handlers. *database.DB implements it.
type CatalogStore interface {
	CountByMonth(ctx context.Context, month int) (int64, error)
	CountByWeekday(ctx context.Context, isoDay int) (int64, error)
	TitleScore(ctx context.Context, title string) (*models.TitleScore, error)
	TitleVotes(ctx context.Context, title string, minVotes int64) (*models.TitleVotes, error)
	ActorStats(ctx context.Context, actor string) (*models.ActorStats, error)
	DirectorStats(ctx context.Context, director string) (*models.DirectorStats, error)
	SuggestTitles(prefix string, limit int) []string
	Summary(ctx context.Context) (*models.CatalogSummary, error)
	Ping(ctx context.Context) error
}

// Recommender answers similarity queries. *recommend.Engine implements it.
type Recommender interface {
	RecommendByTitle(ctx context.Context, title string, k int) (*recommend.Response, error)
	IsTrained() bool
	GetStatus() recommend.TrainingStatus
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_catalog.go: catalog query endpoints
//   - handlers_recommend.go: recommendation endpoint
//   - handlers_health.go: health probes
//   - handlers_legacy.go: unversioned routes kept for old clients
type Handler struct {
	db        CatalogStore
	engine    Recommender
	config    *config.Config
	cache     *cache.Cache
	executor  *QueryExecutor
	limiter   *rate.Limiter
	startTime time.Time
	version   string
}

// NewHandler creates the API handler. engine may be nil when
// recommendations are disabled; the recommendation endpoint then answers 503.
//
// The handler owns a query cache with api.cache_ttl expiry; call Close on
// shutdown to stop its sweeper.
//
// Example:
//
//	handler := api.NewHandler(db, engine, cfg)
//	defer handler.Close()
//	router := api.NewRouter(handler, cfg)
//	http.ListenAndServe(":8000", router.SetupChi())
func NewHandler(db CatalogStore, engine Recommender, cfg *config.Config) *Handler {
	h := &Handler{
		db:        db,
		engine:    engine,
		config:    cfg,
		cache:     cache.NewNamed(queryCacheName, cfg.API.CacheTTL),
		startTime: time.Now(),
		version:   "dev",
	}
	h.executor = NewQueryExecutor(h)

	if cfg.Security.RecommendRPS > 0 {
		h.limiter = rate.NewLimiter(rate.Limit(cfg.Security.RecommendRPS), cfg.Security.RecommendBurst)
	}
	return h
}

// SetVersion sets the build version reported by /health.
func (h *Handler) SetVersion(version string) {
	if version != "" {
		h.version = version
	}
}

// ClearCache drops every cached query result.
func (h *Handler) ClearCache() {
	h.cache.Clear()
}

// Close releases the query cache.
func (h *Handler) Close() {
	h.cache.Close()
}
