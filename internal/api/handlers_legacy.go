// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/tomtom215/filmoteca/internal/cache"
	"github.com/tomtom215/filmoteca/internal/catalog"
)

// LegacyCantidadFilmacionesMes serves the unversioned month count in its
// original flat shape. Both outcomes answer 200:
//
//	{"Cantidad de películas estrenadas en enero": 5912}
//	{"error": "Mes inválido"}
//
// The key echoes the month as the client wrote it.
func (h *Handler) LegacyCantidadFilmacionesMes(w http.ResponseWriter, r *http.Request) {
	raw, err := pathParam(r, "mes")
	raw = strings.TrimSpace(raw)
	month := 0
	if err == nil && len(raw) <= h.config.API.MaxParamLength {
		month = catalog.ParseMonth(raw)
	}
	if month == 0 {
		respondJSON(w, http.StatusOK, map[string]string{"error": msgInvalidMonth})
		return
	}
	if h.db == nil {
		respondError(w, r, http.StatusServiceUnavailable, CodeServiceUnavailable, "Database not available", nil)
		return
	}

	key := cache.GenerateKey("legacy_cantidad_filmaciones_mes", month)
	n, err := h.cache.GetOrLoad(key, func() (interface{}, error) {
		return h.db.CountByMonth(r.Context(), month)
	})
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeDatabase, "Failed to count movies", err)
		return
	}

	count, ok := n.(int64)
	if !ok {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "Unexpected cached value", nil)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{
		fmt.Sprintf("Cantidad de películas estrenadas en %s", raw): count,
	})
}
