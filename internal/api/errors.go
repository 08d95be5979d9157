// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package api

// Error codes carried in models.APIError.Code.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidMonth       = "INVALID_MONTH"
	CodeInvalidDay         = "INVALID_DAY"
	CodeTitleNotFound      = "TITLE_NOT_FOUND"
	CodeActorNotFound      = "ACTOR_NOT_FOUND"
	CodeDirectorNotFound   = "DIRECTOR_NOT_FOUND"
	CodeModelNotReady      = "MODEL_NOT_READY"
	CodeRateLimited        = "RATE_LIMITED"
	CodeDatabase           = "DATABASE_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeNotFound           = "NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeInternal           = "INTERNAL_ERROR"
)

// Messages shown to clients. The catalog audience is Spanish speaking.
const (
	msgInvalidMonth     = "Mes inválido"
	msgInvalidDay       = "Día inválido"
	msgTitleNotFound    = "Título no encontrado"
	msgActorNotFound    = "Actor no encontrado"
	msgDirectorNotFound = "Director no encontrado"
	msgModelNotReady    = "El modelo de recomendación todavía no está entrenado"
	msgRateLimited      = "Demasiadas solicitudes, intente nuevamente más tarde"
)
