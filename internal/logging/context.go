// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// traceIDs are the identifiers Ctx attaches to every event of a request.
type traceIDs struct {
	request     string
	correlation string
}

type traceKey struct{}

func idsFrom(ctx context.Context) traceIDs {
	ids, _ := ctx.Value(traceKey{}).(traceIDs)
	return ids
}

// GenerateCorrelationID returns a short random ID for grouping log lines.
func GenerateCorrelationID() string {
	return uuid.NewString()[:8]
}

// GenerateRequestID returns a random UUID.
func GenerateRequestID() string {
	return uuid.NewString()
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	ids := idsFrom(ctx)
	ids.request = id
	return context.WithValue(ctx, traceKey{}, ids)
}

func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	ids := idsFrom(ctx)
	ids.correlation = id
	return context.WithValue(ctx, traceKey{}, ids)
}

// ContextWithNewCorrelationID attaches a freshly generated correlation ID.
func ContextWithNewCorrelationID(ctx context.Context) context.Context {
	return ContextWithCorrelationID(ctx, GenerateCorrelationID())
}

// RequestIDFromContext returns the request ID, or "" if absent.
func RequestIDFromContext(ctx context.Context) string {
	return idsFrom(ctx).request
}

// CorrelationIDFromContext returns the correlation ID, or "" if absent.
func CorrelationIDFromContext(ctx context.Context) string {
	return idsFrom(ctx).correlation
}

// Ctx returns the global logger with request_id and correlation_id set
// from ctx when present.
//
//	logging.Ctx(ctx).Info().Str("title", title).Msg("Title resolved")
func Ctx(ctx context.Context) *zerolog.Logger {
	ids := idsFrom(ctx)
	zctx := current.Load().With()
	if ids.correlation != "" {
		zctx = zctx.Str("correlation_id", ids.correlation)
	}
	if ids.request != "" {
		zctx = zctx.Str("request_id", ids.request)
	}
	l := zctx.Logger()
	return &l
}
