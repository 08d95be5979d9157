// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package models

import "time"

// APIResponse is the envelope for every /api/v1 response.
//
// Success:
//
//	{
//	  "status": "success",
//	  "data": {"mes": "enero", "cantidad": 5912, "mensaje": "..."},
//	  "metadata": {"timestamp": "2026-01-05T12:00:00Z", "query_time_ms": 3}
//	}
//
// Error:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "error": {"code": "INVALID_MONTH", "message": "Mes inválido"},
//	  "metadata": {"timestamp": "2026-01-05T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries timing and cache information.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError is a machine-readable error code with a human message.
//
// Codes in use: VALIDATION_ERROR, INVALID_MONTH, INVALID_DAY, TITLE_NOT_FOUND,
// ACTOR_NOT_FOUND, DIRECTOR_NOT_FOUND, MODEL_NOT_READY, RATE_LIMITED,
// DATABASE_ERROR, METHOD_NOT_ALLOWED, INTERNAL_ERROR.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
