// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/filmoteca/internal/catalog"
	"github.com/tomtom215/filmoteca/internal/database"
	"github.com/tomtom215/filmoteca/internal/models"
)

// maxNotFoundSuggestions bounds details.sugerencias on TITLE_NOT_FOUND.
const maxNotFoundSuggestions = 5

// CantidadFilmacionesMes counts the movies released in a month.
//
// @Summary Movies released in a month
// @Description Counts the movies whose release date falls in the given Spanish month name, across all years.
// @Tags Catalog
// @Produce json
// @Param mes path string true "Month name in Spanish (enero ... diciembre)"
// @Success 200 {object} models.APIResponse{data=models.MonthCount}
// @Failure 400 {object} models.APIResponse "INVALID_MONTH"
// @Router /cantidad_filmaciones_mes/{mes} [get]
func (h *Handler) CantidadFilmacionesMes(w http.ResponseWriter, r *http.Request) {
	raw, ok := h.pathText(w, r, "mes")
	if !ok {
		return
	}

	month := catalog.ParseMonth(raw)
	if month == 0 {
		respondError(w, r, http.StatusBadRequest, CodeInvalidMonth, msgInvalidMonth, nil)
		return
	}
	name := catalog.MonthName(month)

	h.executor.Execute(w, r, "cantidad_filmaciones_mes", month, func(ctx context.Context) (interface{}, error) {
		n, err := h.db.CountByMonth(ctx, month)
		if err != nil {
			return nil, err
		}
		return &models.MonthCount{Mes: name, Cantidad: n, Mensaje: monthMessage(name, n)}, nil
	}, nil)
}

// CantidadFilmacionesDia counts the movies released on a weekday.
//
// @Summary Movies released on a weekday
// @Description Counts the movies released on the given Spanish weekday name. Accented and unaccented spellings are accepted.
// @Tags Catalog
// @Produce json
// @Param dia path string true "Weekday name in Spanish (lunes ... domingo)"
// @Success 200 {object} models.APIResponse{data=models.DayCount}
// @Failure 400 {object} models.APIResponse "INVALID_DAY"
// @Router /cantidad_filmaciones_dia/{dia} [get]
func (h *Handler) CantidadFilmacionesDia(w http.ResponseWriter, r *http.Request) {
	raw, ok := h.pathText(w, r, "dia")
	if !ok {
		return
	}

	day := catalog.ParseWeekday(raw)
	if day == 0 {
		respondError(w, r, http.StatusBadRequest, CodeInvalidDay, msgInvalidDay, nil)
		return
	}
	name := catalog.WeekdayName(day)

	h.executor.Execute(w, r, "cantidad_filmaciones_dia", day, func(ctx context.Context) (interface{}, error) {
		n, err := h.db.CountByWeekday(ctx, day)
		if err != nil {
			return nil, err
		}
		return &models.DayCount{Dia: name, Cantidad: n, Mensaje: dayMessage(name, n)}, nil
	}, nil)
}

// ScoreTitulo returns the release year and popularity of a title.
//
// @Summary Title popularity
// @Description Looks a title up case-insensitively. When several movies share it the most popular wins.
// @Tags Catalog
// @Produce json
// @Param titulo path string true "Movie title"
// @Success 200 {object} models.APIResponse{data=models.TitleScore}
// @Failure 404 {object} models.APIResponse "TITLE_NOT_FOUND, details.sugerencias lists close titles"
// @Router /score_titulo/{titulo} [get]
func (h *Handler) ScoreTitulo(w http.ResponseWriter, r *http.Request) {
	title, ok := h.pathText(w, r, "titulo")
	if !ok {
		return
	}

	h.executor.Execute(w, r, "score_titulo", normalizeKey(title), func(ctx context.Context) (interface{}, error) {
		s, err := h.db.TitleScore(ctx, title)
		if err != nil {
			return nil, err
		}
		s.Mensaje = scoreMessage(s)
		return s, nil
	}, h.titleNotFound(title))
}

// VotosTitulo returns the vote count and average of a title.
//
// @Summary Title votes
// @Description Returns vote data for a title. cumple_minimo is false when the title has fewer votes than catalog.min_vote_count; the data is returned either way.
// @Tags Catalog
// @Produce json
// @Param titulo path string true "Movie title"
// @Success 200 {object} models.APIResponse{data=models.TitleVotes}
// @Failure 404 {object} models.APIResponse "TITLE_NOT_FOUND"
// @Router /votos_titulo/{titulo} [get]
func (h *Handler) VotosTitulo(w http.ResponseWriter, r *http.Request) {
	title, ok := h.pathText(w, r, "titulo")
	if !ok {
		return
	}

	minVotes := h.config.Catalog.MinVoteCount
	h.executor.Execute(w, r, "votos_titulo", normalizeKey(title), func(ctx context.Context) (interface{}, error) {
		v, err := h.db.TitleVotes(ctx, title, minVotes)
		if err != nil {
			return nil, err
		}
		v.Mensaje = votesMessage(v, minVotes)
		return v, nil
	}, h.titleNotFound(title))
}

// GetActor aggregates the return of an actor's movies.
//
// @Summary Actor statistics
// @Description Counts the movies an actor appears in and sums their return.
// @Tags Catalog
// @Produce json
// @Param actor path string true "Actor name"
// @Success 200 {object} models.APIResponse{data=models.ActorStats}
// @Failure 404 {object} models.APIResponse "ACTOR_NOT_FOUND"
// @Router /get_actor/{actor} [get]
func (h *Handler) GetActor(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.pathText(w, r, "actor")
	if !ok {
		return
	}

	h.executor.Execute(w, r, "get_actor", normalizeKey(actor), func(ctx context.Context) (interface{}, error) {
		a, err := h.db.ActorStats(ctx, actor)
		if err != nil {
			return nil, err
		}
		a.Mensaje = actorMessage(a)
		return a, nil
	}, notFoundAs(CodeActorNotFound, msgActorNotFound))
}

// GetDirector lists a director's movies with their return, budget and revenue.
//
// @Summary Director statistics
// @Description Returns the total return of a director and every movie they directed, ordered by release date.
// @Tags Catalog
// @Produce json
// @Param director path string true "Director name"
// @Success 200 {object} models.APIResponse{data=models.DirectorStats}
// @Failure 404 {object} models.APIResponse "DIRECTOR_NOT_FOUND"
// @Router /get_director/{director} [get]
func (h *Handler) GetDirector(w http.ResponseWriter, r *http.Request) {
	director, ok := h.pathText(w, r, "director")
	if !ok {
		return
	}

	h.executor.Execute(w, r, "get_director", normalizeKey(director), func(ctx context.Context) (interface{}, error) {
		d, err := h.db.DirectorStats(ctx, director)
		if err != nil {
			return nil, err
		}
		d.Mensaje = directorMessage(d)
		return d, nil
	}, notFoundAs(CodeDirectorNotFound, msgDirectorNotFound))
}

// TitleSuggestions autocompletes titles by prefix.
//
// @Summary Title suggestions
// @Description Returns titles starting with q, case-insensitively, most popular spellings first.
// @Tags Catalog
// @Produce json
// @Param q query string true "Title prefix"
// @Param limit query int false "Maximum suggestions (1-50)"
// @Success 200 {object} models.APIResponse{data=models.TitleSuggestions}
// @Failure 400 {object} models.APIResponse "VALIDATION_ERROR"
// @Router /titulos/sugerencias [get]
func (h *Handler) TitleSuggestions(w http.ResponseWriter, r *http.Request) {
	req := SuggestionsRequest{
		Query: r.URL.Query().Get("q"),
		Limit: getIntParam(r, "limit", h.config.API.SuggestLimit),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	if h.db == nil {
		respondError(w, r, http.StatusServiceUnavailable, CodeServiceUnavailable, "Database not available", nil)
		return
	}

	suggestions := h.db.SuggestTitles(req.Query, req.Limit)
	if suggestions == nil {
		suggestions = []string{}
	}
	respondSuccess(w, r, &models.TitleSuggestions{
		Consulta:    req.Query,
		Sugerencias: suggestions,
	}, newMetadata(r))
}

// CatalogSummary describes the loaded catalog.
//
// @Summary Catalog summary
// @Description Row counts, release date range and load timing of the catalog.
// @Tags Catalog
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.CatalogSummary}
// @Router /catalogo/resumen [get]
func (h *Handler) CatalogSummary(w http.ResponseWriter, r *http.Request) {
	h.executor.Execute(w, r, "catalogo_resumen", nil, func(ctx context.Context) (interface{}, error) {
		return h.db.Summary(ctx)
	}, nil)
}

// titleNotFound maps database.ErrNotFound to TITLE_NOT_FOUND.
func (h *Handler) titleNotFound(title string) ErrorMapper {
	return func(_ *http.Request, err error) (int, *models.APIError) {
		if !errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return http.StatusNotFound, h.titleNotFoundError(title)
	}
}

// titleNotFoundError builds TITLE_NOT_FOUND with up to
// maxNotFoundSuggestions prefix matches in details.sugerencias.
func (h *Handler) titleNotFoundError(title string) *models.APIError {
	var suggestions []string
	if h.db != nil {
		suggestions = h.db.SuggestTitles(title, maxNotFoundSuggestions)
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	return &models.APIError{
		Code:    CodeTitleNotFound,
		Message: msgTitleNotFound,
		Details: map[string]interface{}{
			"titulo":      title,
			"sugerencias": suggestions,
		},
	}
}

// notFoundAs maps database.ErrNotFound to a 404 with the given code.
func notFoundAs(code, message string) ErrorMapper {
	return func(_ *http.Request, err error) (int, *models.APIError) {
		if !errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return http.StatusNotFound, &models.APIError{Code: code, Message: message}
	}
}
