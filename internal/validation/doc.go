// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

// Package validation provides struct validation using go-playground/validator v10.
//
// A thread-safe singleton validator is configured once with the json tag
// (or the koanf tag, for configuration structs) as the reported field name
// and with the custom "catalogtext" rule used
// for titles and person names. Failures are converted into the API's
// VALIDATION_ERROR format through ToAPIError.
//
// # Usage
//
//	type titleParams struct {
//	    Titulo string `json:"titulo" validate:"required,max=200,catalogtext"`
//	}
//
//	if verr := validation.ValidateStruct(&titleParams{Titulo: raw}); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
//
// # Custom Tags
//
//   - catalogtext: non-blank after trimming whitespace, no control characters
//
// # Thread Safety
//
// GetValidator, ValidateStruct and ValidateVar are safe for concurrent use. The validator
// caches struct metadata after the first validation of each type.
package validation
