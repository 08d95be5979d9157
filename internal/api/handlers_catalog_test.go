// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/filmoteca/internal/models"
)

func TestCantidadFilmacionesMes(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantMes  string
		wantN    int64
		wantCode string
	}{
		{"lowercase", "/api/v1/cantidad_filmaciones_mes/enero", "enero", 100, ""},
		{"mixed case", "/api/v1/cantidad_filmaciones_mes/Diciembre", "diciembre", 1200, ""},
		{"padded", "/api/v1/cantidad_filmaciones_mes/%20marzo%20", "marzo", 300, ""},
		{"english", "/api/v1/cantidad_filmaciones_mes/january", "", 0, CodeInvalidMonth},
		{"number", "/api/v1/cantidad_filmaciones_mes/13", "", 0, CodeInvalidMonth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, srv := newTestServer(t, newFakeStore(), nil, nil)
			rec, env := get(t, srv, tt.path)

			if tt.wantCode != "" {
				wantError(t, rec, env, http.StatusBadRequest, tt.wantCode)
				if env.Error.Message != "Mes inválido" {
					t.Errorf("message = %q", env.Error.Message)
				}
				return
			}

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			var got models.MonthCount
			decodeData(t, env, &got)
			if got.Mes != tt.wantMes || got.Cantidad != tt.wantN {
				t.Errorf("got %+v, want mes=%s cantidad=%d", got, tt.wantMes, tt.wantN)
			}
			if !strings.Contains(got.Mensaje, tt.wantMes) {
				t.Errorf("mensaje %q should name the month", got.Mensaje)
			}
		})
	}
}

func TestCantidadFilmacionesDia(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantDia  string
		wantN    int64
		wantCode string
	}{
		{"plain", "/api/v1/cantidad_filmaciones_dia/lunes", "lunes", 10, ""},
		{"accented", "/api/v1/cantidad_filmaciones_dia/s%C3%A1bado", "sábado", 60, ""},
		{"unaccented", "/api/v1/cantidad_filmaciones_dia/miercoles", "miércoles", 30, ""},
		{"upper", "/api/v1/cantidad_filmaciones_dia/DOMINGO", "domingo", 70, ""},
		{"english", "/api/v1/cantidad_filmaciones_dia/monday", "", 0, CodeInvalidDay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, srv := newTestServer(t, newFakeStore(), nil, nil)
			rec, env := get(t, srv, tt.path)

			if tt.wantCode != "" {
				wantError(t, rec, env, http.StatusBadRequest, tt.wantCode)
				if env.Error.Message != "Día inválido" {
					t.Errorf("message = %q", env.Error.Message)
				}
				return
			}

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			var got models.DayCount
			decodeData(t, env, &got)
			if got.Dia != tt.wantDia || got.Cantidad != tt.wantN {
				t.Errorf("got %+v, want dia=%s cantidad=%d", got, tt.wantDia, tt.wantN)
			}
		})
	}
}

func TestScoreTitulo(t *testing.T) {
	_, srv := newTestServer(t, newFakeStore(), nil, nil)

	rec, env := get(t, srv, "/api/v1/score_titulo/toy%20story")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var got models.TitleScore
	decodeData(t, env, &got)
	if got.Titulo != "Toy Story" || got.Anio != 1995 || got.Popularidad != 21.95 {
		t.Errorf("unexpected score %+v", got)
	}
	if !strings.Contains(got.Mensaje, "Toy Story") || !strings.Contains(got.Mensaje, "1995") {
		t.Errorf("mensaje = %q", got.Mensaje)
	}
}

func TestScoreTitulo_NotFoundSuggests(t *testing.T) {
	_, srv := newTestServer(t, newFakeStore(), nil, nil)

	rec, env := get(t, srv, "/api/v1/score_titulo/Toy")
	wantError(t, rec, env, http.StatusNotFound, CodeTitleNotFound)

	raw, ok := env.Error.Details["sugerencias"].([]interface{})
	if !ok {
		t.Fatalf("details.sugerencias missing: %v", env.Error.Details)
	}
	if len(raw) != maxNotFoundSuggestions {
		t.Errorf("got %d suggestions, want %d", len(raw), maxNotFoundSuggestions)
	}
	if raw[0] != "Toy Story" {
		t.Errorf("first suggestion = %v", raw[0])
	}
}

func TestScoreTitulo_NotFoundWithoutSuggestions(t *testing.T) {
	_, srv := newTestServer(t, newFakeStore(), nil, nil)

	rec, env := get(t, srv, "/api/v1/score_titulo/Zzz")
	wantError(t, rec, env, http.StatusNotFound, CodeTitleNotFound)

	raw, ok := env.Error.Details["sugerencias"].([]interface{})
	if !ok || len(raw) != 0 {
		t.Errorf("sugerencias should be an empty list, got %v", env.Error.Details["sugerencias"])
	}
}

func TestScoreTitulo_EncodedSlash(t *testing.T) {
	store := newFakeStore()
	_, srv := newTestServer(t, store, nil, nil)

	rec, env := get(t, srv, "/api/v1/score_titulo/AC%2FDC")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var got models.TitleScore
	decodeData(t, env, &got)
	if got.Titulo != "AC/DC" {
		t.Errorf("titulo = %q", got.Titulo)
	}
	if store.lastTitle != "AC/DC" {
		t.Errorf("store received %q, want decoded AC/DC", store.lastTitle)
	}
}

func TestPathParamValidation(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"too long", "/api/v1/score_titulo/" + strings.Repeat("a", 201)},
		{"blank", "/api/v1/votos_titulo/%20%20"},
		{"control character", "/api/v1/get_actor/Tom%00Hanks"},
		{"tab only", "/api/v1/get_director/%09"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			_, srv := newTestServer(t, store, nil, nil)

			rec, env := get(t, srv, tt.path)
			wantError(t, rec, env, http.StatusBadRequest, CodeValidation)
			if env.Error.Details["field"] == nil {
				t.Errorf("details.field missing: %v", env.Error.Details)
			}
			for _, op := range []string{"score", "votes", "actor", "director"} {
				if store.callCount(op) != 0 {
					t.Errorf("%s should not reach the store", op)
				}
			}
		})
	}
}

func TestPathParamValidation_ConfiguredLength(t *testing.T) {
	cfg := testConfig()
	cfg.API.MaxParamLength = 5
	_, srv := newTestServer(t, newFakeStore(), nil, cfg)

	rec, env := get(t, srv, "/api/v1/score_titulo/Toy%20Story")
	wantError(t, rec, env, http.StatusBadRequest, CodeValidation)
	if env.Error.Message != "titulo must be at most 5 characters" {
		t.Errorf("message = %q", env.Error.Message)
	}
}

func TestVotosTitulo(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		wantCumple  bool
		wantMessage string
	}{
		{"above minimum", "/api/v1/votos_titulo/Toy%20Story", true, "5415 valoraciones"},
		{"below minimum", "/api/v1/votos_titulo/heat", false, "no cumple con el mínimo de 2000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, srv := newTestServer(t, newFakeStore(), nil, nil)
			rec, env := get(t, srv, tt.path)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}

			var got models.TitleVotes
			decodeData(t, env, &got)
			if got.CumpleMinimo != tt.wantCumple {
				t.Errorf("cumple_minimo = %v, want %v", got.CumpleMinimo, tt.wantCumple)
			}
			if got.Votos == 0 || got.Promedio == 0 {
				t.Errorf("vote data should be returned either way: %+v", got)
			}
			if !strings.Contains(got.Mensaje, tt.wantMessage) {
				t.Errorf("mensaje %q does not contain %q", got.Mensaje, tt.wantMessage)
			}
		})
	}
}

func TestGetActor(t *testing.T) {
	_, srv := newTestServer(t, newFakeStore(), nil, nil)

	rec, env := get(t, srv, "/api/v1/get_actor/tom%20hanks")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var got models.ActorStats
	decodeData(t, env, &got)
	if got.Actor != "Tom Hanks" || got.CantidadPeliculas != 3 || got.RetornoTotal != 30 || got.RetornoPromedio != 10 {
		t.Errorf("unexpected stats %+v", got)
	}
	if !strings.Contains(got.Mensaje, "3 filmaciones") {
		t.Errorf("mensaje = %q", got.Mensaje)
	}

	rec, env = get(t, srv, "/api/v1/get_actor/Nobody")
	wantError(t, rec, env, http.StatusNotFound, CodeActorNotFound)
}

func TestGetDirector(t *testing.T) {
	_, srv := newTestServer(t, newFakeStore(), nil, nil)

	rec, env := get(t, srv, "/api/v1/get_director/Michael%20Mann")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var got models.DirectorStats
	decodeData(t, env, &got)
	if got.Director != "Michael Mann" || len(got.Peliculas) != 1 {
		t.Fatalf("unexpected stats %+v", got)
	}
	m := got.Peliculas[0]
	if m.Titulo != "Heat" || m.FechaEstreno != "1995-12-15" || m.Ganancia != m.Ingresos-m.Costo {
		t.Errorf("unexpected movie %+v", m)
	}

	rec, env = get(t, srv, "/api/v1/get_director/Nobody")
	wantError(t, rec, env, http.StatusNotFound, CodeDirectorNotFound)
}

func TestCatalogQueries_Cached(t *testing.T) {
	store := newFakeStore()
	_, srv := newTestServer(t, store, nil, nil)

	_, first := get(t, srv, "/api/v1/score_titulo/Toy%20Story")
	if first.Metadata.Cached {
		t.Error("first response should not be cached")
	}

	// Different spelling of the same title shares the entry.
	_, second := get(t, srv, "/api/v1/score_titulo/toy%20story")
	if !second.Metadata.Cached {
		t.Error("second response should be cached")
	}
	if got := store.callCount("score"); got != 1 {
		t.Errorf("store calls = %d, want 1", got)
	}

	// Votes is a separate endpoint with its own entry.
	get(t, srv, "/api/v1/votos_titulo/Toy%20Story")
	if got := store.callCount("votes"); got != 1 {
		t.Errorf("votes calls = %d, want 1", got)
	}
}

func TestCatalogQueries_NotFoundNotCached(t *testing.T) {
	store := newFakeStore()
	_, srv := newTestServer(t, store, nil, nil)

	get(t, srv, "/api/v1/get_actor/Nobody")
	get(t, srv, "/api/v1/get_actor/Nobody")
	if got := store.callCount("actor"); got != 2 {
		t.Errorf("actor calls = %d, want 2", got)
	}
}

func TestHandler_ClearCache(t *testing.T) {
	store := newFakeStore()
	h, srv := newTestServer(t, store, nil, nil)

	get(t, srv, "/api/v1/cantidad_filmaciones_mes/enero")
	h.ClearCache()
	_, env := get(t, srv, "/api/v1/cantidad_filmaciones_mes/enero")
	if env.Metadata.Cached {
		t.Error("response after ClearCache should not be cached")
	}
	if got := store.callCount("month"); got != 2 {
		t.Errorf("month calls = %d, want 2", got)
	}
}

func TestTitleSuggestions(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantCount int
		wantCode  string
	}{
		{"default limit", "?q=toy", 5, ""},
		{"explicit limit", "?q=toy&limit=2", 2, ""},
		{"no match", "?q=zzz", 0, ""},
		{"invalid limit falls back to default", "?q=toy&limit=abc", 5, ""},
		{"missing query", "", 0, CodeValidation},
		{"limit too large", "?q=toy&limit=51", 0, CodeValidation},
		{"limit zero", "?q=toy&limit=0", 0, CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, srv := newTestServer(t, newFakeStore(), nil, nil)
			rec, env := get(t, srv, "/api/v1/titulos/sugerencias"+tt.query)

			if tt.wantCode != "" {
				wantError(t, rec, env, http.StatusBadRequest, tt.wantCode)
				return
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			var got models.TitleSuggestions
			decodeData(t, env, &got)
			if got.Sugerencias == nil {
				t.Fatal("sugerencias should never be null")
			}
			if len(got.Sugerencias) != tt.wantCount {
				t.Errorf("got %d suggestions, want %d: %v", len(got.Sugerencias), tt.wantCount, got.Sugerencias)
			}
		})
	}
}

func TestCatalogSummary(t *testing.T) {
	_, srv := newTestServer(t, newFakeStore(), nil, nil)

	rec, env := get(t, srv, "/api/v1/catalogo/resumen")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got models.CatalogSummary
	decodeData(t, env, &got)
	if got.Source != "csv" || got.Movies != 3 || got.Directors != 2 {
		t.Errorf("unexpected summary %+v", got)
	}
}

func TestLegacyCantidadFilmacionesMes(t *testing.T) {
	tests := []struct {
		name string
		path string
		want map[string]interface{}
	}{
		{
			name: "valid keeps client spelling",
			path: "/cantidad_filmaciones_mes/Enero",
			want: map[string]interface{}{"Cantidad de películas estrenadas en Enero": float64(100)},
		},
		{
			name: "invalid",
			path: "/cantidad_filmaciones_mes/foo",
			want: map[string]interface{}{"error": "Mes inválido"},
		},
		{
			name: "too long",
			path: "/cantidad_filmaciones_mes/" + strings.Repeat("e", 300),
			want: map[string]interface{}{"error": "Mes inválido"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, srv := newTestServer(t, newFakeStore(), nil, nil)
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}

			var got map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("%q = %v, want %v", k, got[k], v)
				}
			}
		})
	}
}
