// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package api

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/filmoteca/internal/config"
	"github.com/tomtom215/filmoteca/internal/logging"
	"github.com/tomtom215/filmoteca/internal/metrics"
)

// healthRequestsPerMinute is the per-IP budget for health probes, well
// above what a monitor polls at.
const healthRequestsPerMinute = 1000

// edgeGuards holds the CORS and per-IP rate limit middleware built from the
// security settings.
type edgeGuards struct {
	sec  config.SecurityConfig
	cors func(http.Handler) http.Handler
}

func newEdgeGuards(sec *config.SecurityConfig) *edgeGuards {
	return &edgeGuards{
		sec: *sec,
		cors: cors.Handler(cors.Options{
			AllowedOrigins: sec.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID", "Retry-After"},
			MaxAge:         int((24 * time.Hour).Seconds()),
		}),
	}
}

// apiLimit applies RATE_LIMIT_REQUESTS per RATE_LIMIT_WINDOW to each client IP.
func (g *edgeGuards) apiLimit() func(http.Handler) http.Handler {
	return g.limit(g.sec.RateLimitReqs, g.sec.RateLimitWindow)
}

func (g *edgeGuards) healthLimit() func(http.Handler) http.Handler {
	return g.limit(healthRequestsPerMinute, time.Minute)
}

func (g *edgeGuards) limit(requests int, window time.Duration) func(http.Handler) http.Handler {
	if g.sec.RateLimitDisabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(rateLimitExceeded),
	)
}

// rateLimitExceeded answers a per-IP rejection. httprate has already set
// the X-RateLimit-* and Retry-After headers.
func rateLimitExceeded(w http.ResponseWriter, r *http.Request) {
	metrics.APIRateLimitHits.WithLabelValues("per_ip").Inc()
	respondError(w, r, http.StatusTooManyRequests, CodeRateLimited, msgRateLimited, nil)
}

// securityHeaders sets nosniff, frame denial and the referrer policy, plus
// HSTS when the client reached us over HTTPS directly or through a proxy.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger writes one debug line per request, tagged with the
// request and correlation IDs from the context.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		logging.Ctx(r.Context()).Debug().
			Str("method", r.Method).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("remote_addr", r.RemoteAddr).
			Msg("request completed")
	})
}
