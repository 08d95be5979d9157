// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package api

import (
	"fmt"
	"hash/fnv"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/filmoteca/internal/logging"
	"github.com/tomtom215/filmoteca/internal/models"
	"github.com/tomtom215/filmoteca/internal/validation"
)

// sanitizeLogValue escapes ASCII control characters as \xNN so a
// client-supplied path cannot forge log lines.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// respondJSON sends a JSON response with proper headers. Error responses
// are never cached by clients.
func respondJSON(w http.ResponseWriter, status int, response interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if status >= http.StatusBadRequest {
		w.Header().Set("Cache-Control", "no-store")
	} else {
		w.Header().Set("Cache-Control", "public, max-age=60")
	}
	w.Header().Set("Vary", "Accept-Encoding")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", generateETag(data))

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag returns a weak validator over the encoded body.
func generateETag(data []byte) string {
	h := fnv.New64a()
	_, _ = h.Write(data)
	return `W/"` + strconv.FormatUint(h.Sum64(), 16) + `"`
}

// newMetadata stamps the response time and the request ID.
func newMetadata(r *http.Request) models.Metadata {
	return models.Metadata{
		Timestamp: time.Now(),
		RequestID: logging.RequestIDFromContext(r.Context()),
	}
}

// respondSuccess wraps data in a success envelope.
func respondSuccess(w http.ResponseWriter, r *http.Request, data interface{}, meta models.Metadata) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: meta,
	})
}

// respondError sends an error response. err, when set, is logged but never
// shown to the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	respondAPIError(w, r, status, &models.APIError{Code: code, Message: message}, err)
}

// respondAPIError sends an error response carrying apiErr as is, details included.
func respondAPIError(w http.ResponseWriter, r *http.Request, status int, apiErr *models.APIError, err error) {
	if err != nil {
		logging.Ctx(r.Context()).Error().
			Str("code", sanitizeLogValue(apiErr.Code)).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API Error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status:   "error",
		Data:     nil,
		Metadata: newMetadata(r),
		Error:    apiErr,
	})
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes, or a models.APIError with the
// VALIDATION_ERROR code.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}
	return toModelError(validationErr.ToAPIError())
}

func toModelError(apiErr *validation.APIError) *models.APIError {
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// pathText reads a URL-decoded path parameter and checks that it is a
// non-blank catalog string within api.max_param_length. On failure the
// 400 response has already been written.
func (h *Handler) pathText(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value, err := pathParam(r, name)
	if err != nil {
		respondAPIError(w, r, http.StatusBadRequest, &models.APIError{
			Code:    CodeValidation,
			Message: fmt.Sprintf("%s is not a valid URL-encoded value", name),
			Details: map[string]interface{}{"field": name},
		}, nil)
		return "", false
	}

	tag := fmt.Sprintf("required,max=%d,catalogtext", h.config.API.MaxParamLength)
	if verr := validation.ValidateVar(name, value, tag); verr != nil {
		respondAPIError(w, r, http.StatusBadRequest, toModelError(verr.ToAPIError()), nil)
		return "", false
	}
	return strings.TrimSpace(value), true
}

// pathParam returns a chi URL parameter decoded. chi matches against
// RawPath when the request carries escapes that Path cannot represent
// (%2F), so only then is the value still encoded.
func pathParam(r *http.Request, name string) (string, error) {
	value := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return value, nil
	}
	return url.PathUnescape(value)
}

// getIntParam extracts an integer query parameter with a default value
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// parseIntQuery is getIntParam for parameters where a malformed value is a
// client error rather than a silent default.
func parseIntQuery(r *http.Request, key string, defaultValue int) (int, *models.APIError) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return defaultValue, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &models.APIError{
			Code:    CodeValidation,
			Message: fmt.Sprintf("%s must be a number", key),
			Details: map[string]interface{}{"field": key, "tag": "numeric", "value": value},
		}
	}
	return n, nil
}

// normalizeKey folds a name the way the catalog matches it, so "Heat" and
// " heat" share a cache entry.
func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
