// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/filmoteca/internal/cache"
	"github.com/tomtom215/filmoteca/internal/models"
)

// QueryExecutor runs catalog queries cache-first:
//
//  1. Derive a cache key from the endpoint name and its parameters
//  2. Return the cached result when present
//  3. Otherwise run the query once, even under concurrent identical requests
//  4. Cache successful results for api.cache_ttl
//  5. Respond with query time and cached status in the metadata
//
// Example:
//
//	h.executor.Execute(w, r, "score_titulo", title,
//	    func(ctx context.Context) (interface{}, error) {
//	        return h.db.TitleScore(ctx, title)
//	    },
//	    titleNotFound)
type QueryExecutor struct {
	handler *Handler
}

// NewQueryExecutor creates a query executor bound to the handler's database and cache.
func NewQueryExecutor(h *Handler) *QueryExecutor {
	return &QueryExecutor{handler: h}
}

// QueryFunc executes one catalog query. The result must be JSON serializable
// since it is cached and returned inside an APIResponse.
type QueryFunc func(ctx context.Context) (interface{}, error)

// ErrorMapper turns a query error into a client facing status and error.
// It returns nil for errors it does not recognise, which become 500
// DATABASE_ERROR responses.
type ErrorMapper func(r *http.Request, err error) (int, *models.APIError)

// Execute runs query for endpoint and params through the cache and writes
// the response.
func (e *QueryExecutor) Execute(
	w http.ResponseWriter,
	r *http.Request,
	endpoint string,
	params interface{},
	query QueryFunc,
	mapErr ErrorMapper,
) {
	if e.handler.db == nil {
		respondError(w, r, http.StatusServiceUnavailable, CodeServiceUnavailable, "Database not available", nil)
		return
	}

	start := time.Now()
	key := cache.GenerateKey(endpoint, params)

	// The load may be shared with other requests for the same key, so it
	// must not be cancelled when this client goes away.
	ctx := context.WithoutCancel(r.Context())

	loaded := false
	data, err := e.handler.cache.GetOrLoad(key, func() (interface{}, error) {
		loaded = true
		return query(ctx)
	})
	if err != nil {
		if mapErr != nil {
			if status, apiErr := mapErr(r, err); apiErr != nil {
				respondAPIError(w, r, status, apiErr, nil)
				return
			}
		}
		respondError(w, r, http.StatusInternalServerError, CodeDatabase,
			"Failed to execute query: "+endpoint, err)
		return
	}

	meta := newMetadata(r)
	meta.Cached = !loaded
	if loaded {
		meta.QueryTimeMS = time.Since(start).Milliseconds()
	}
	respondSuccess(w, r, data, meta)
}
