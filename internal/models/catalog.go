// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package models

import "time"

// MonthCount is the result of GET /cantidad_filmaciones_mes/{mes}.
type MonthCount struct {
	Mes      string `json:"mes"`
	Cantidad int64  `json:"cantidad"`
	Mensaje  string `json:"mensaje"`
}

// DayCount is the result of GET /cantidad_filmaciones_dia/{dia}.
type DayCount struct {
	Dia      string `json:"dia"`
	Cantidad int64  `json:"cantidad"`
	Mensaje  string `json:"mensaje"`
}

// TitleScore is the result of GET /score_titulo/{titulo}.
type TitleScore struct {
	ID          int64   `json:"id"`
	Titulo      string  `json:"titulo"`
	Anio        int     `json:"anio,omitempty"`
	Popularidad float64 `json:"popularidad"`
	Mensaje     string  `json:"mensaje"`
}

// TitleVotes is the result of GET /votos_titulo/{titulo}.
type TitleVotes struct {
	ID           int64   `json:"id"`
	Titulo       string  `json:"titulo"`
	Anio         int     `json:"anio,omitempty"`
	Votos        int64   `json:"votos"`
	Promedio     float64 `json:"promedio"`
	CumpleMinimo bool    `json:"cumple_minimo"`
	Mensaje      string  `json:"mensaje"`
}

// ActorStats is the result of GET /get_actor/{actor}.
type ActorStats struct {
	Actor             string  `json:"actor"`
	CantidadPeliculas int64   `json:"cantidad_peliculas"`
	RetornoTotal      float64 `json:"retorno_total"`
	RetornoPromedio   float64 `json:"retorno_promedio"`
	Mensaje           string  `json:"mensaje"`
}

// DirectorMovie is one film in a DirectorStats listing.
type DirectorMovie struct {
	ID           int64   `json:"id"`
	Titulo       string  `json:"titulo"`
	FechaEstreno string  `json:"fecha_estreno,omitempty"` // YYYY-MM-DD
	Retorno      float64 `json:"retorno"`
	Costo        float64 `json:"costo"`
	Ingresos     float64 `json:"ingresos"`
	Ganancia     float64 `json:"ganancia"`
}

// DirectorStats is the result of GET /get_director/{director}.
type DirectorStats struct {
	Director     string          `json:"director"`
	RetornoTotal float64         `json:"retorno_total"`
	Peliculas    []DirectorMovie `json:"peliculas"`
	Mensaje      string          `json:"mensaje"`
}

// RecommendedMovie is a single recommendation.
type RecommendedMovie struct {
	ID     int64   `json:"id"`
	Titulo string  `json:"titulo"`
	Score  float64 `json:"score"`
}

// Recommendation is the result of GET /recomendacion/{titulo}.
type Recommendation struct {
	Titulo          string             `json:"titulo"`
	Recomendaciones []RecommendedMovie `json:"recomendaciones"`
	Algoritmos      []string           `json:"algoritmos,omitempty"`
	ModelVersion    int64              `json:"model_version"`
}

// TitleSuggestions is the result of GET /titulos/sugerencias.
type TitleSuggestions struct {
	Consulta    string   `json:"consulta"`
	Sugerencias []string `json:"sugerencias"`
}

// CatalogSummary describes the loaded catalog.
type CatalogSummary struct {
	Source         string     `json:"source"`
	Movies         int64      `json:"movies"`
	Credits        int64      `json:"credits"`
	CastEntries    int64      `json:"cast_entries"`
	Directors      int64      `json:"directors"`
	FirstRelease   *time.Time `json:"first_release,omitempty"`
	LastRelease    *time.Time `json:"last_release,omitempty"`
	LoadedAt       time.Time  `json:"loaded_at"`
	LoadDurationMS int64      `json:"load_duration_ms"`
}

// HealthStatus is the result of GET /health.
type HealthStatus struct {
	Status            string     `json:"status"`
	Version           string     `json:"version"`
	CatalogSource     string     `json:"catalog_source"`
	DatabaseConnected bool       `json:"database_connected"`
	ModelTrained      bool       `json:"model_trained"`
	ModelTrainedAt    *time.Time `json:"model_trained_at,omitempty"`
	Uptime            float64    `json:"uptime_seconds"`
}
