// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package api

// Query parameter structs validated with go-playground/validator tags.
// Path parameters are checked by Handler.pathText instead, since their
// length bound comes from api.max_param_length.

// SuggestionsRequest holds the query parameters of /titulos/sugerencias.
type SuggestionsRequest struct {
	Query string `json:"q" validate:"required,max=200,catalogtext"`
	Limit int    `json:"limit" validate:"min=1,max=50"`
}

// RecommendationRequest holds the query parameters of /recomendacion/{titulo}.
// K of 0 selects the engine default; larger values are clamped to max_k.
type RecommendationRequest struct {
	K int `json:"k" validate:"gte=0"`
}
