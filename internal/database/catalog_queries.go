// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/filmoteca/internal/cache"
	"github.com/tomtom215/filmoteca/internal/metrics"
	"github.com/tomtom215/filmoteca/internal/models"
)

// observe records the duration and outcome of a catalog query.
func observe(operation string, start time.Time, err *error) {
	failed := *err
	if errors.Is(failed, ErrNotFound) {
		failed = nil
	}
	metrics.RecordDBQuery(operation, time.Since(start), failed)
}

// CountByMonth returns how many movies were released in month (1..12).
// Movies without a release date are not counted.
func (db *DB) CountByMonth(ctx context.Context, month int) (_ int64, err error) {
	defer observe("count_by_month", time.Now(), &err)

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var n int64
	err = db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM movies WHERE release_date IS NOT NULL AND month(release_date) = ?`,
		month).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count releases by month: %w", err)
	}
	return n, nil
}

// CountByWeekday returns how many movies were released on an ISO weekday
// (1 = Monday .. 7 = Sunday).
func (db *DB) CountByWeekday(ctx context.Context, isoDay int) (_ int64, err error) {
	defer observe("count_by_weekday", time.Now(), &err)

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var n int64
	err = db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM movies WHERE release_date IS NOT NULL AND isodow(release_date) = ?`,
		isoDay).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count releases by weekday: %w", err)
	}
	return n, nil
}

// FindTitle resolves a title to a single movie. Among movies sharing the
// title the most popular wins, then the lowest id.
func (db *DB) FindTitle(ctx context.Context, title string) (_ *models.Movie, err error) {
	defer observe("find_title", time.Now(), &err)

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrNotFound
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var (
		m       models.Movie
		release sql.NullTime
		ret     sql.NullFloat64
	)
	err = db.conn.QueryRowContext(ctx, `
		SELECT id, title, release_date, popularity, vote_count, vote_average,
		       "return", budget, revenue, overview
		FROM movies
		WHERE lower(title) = lower(?)
		ORDER BY popularity DESC, id ASC
		LIMIT 1`, title).Scan(
		&m.ID, &m.Title, &release, &m.Popularity, &m.VoteCount, &m.VoteAverage,
		&ret, &m.Budget, &m.Revenue, &m.Overview,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up title: %w", err)
	}

	if release.Valid {
		t := release.Time
		m.ReleaseDate = &t
	}
	if ret.Valid {
		v := ret.Float64
		m.Return = &v
	}
	return &m, nil
}

// TitleScore returns the popularity of a title. Mensaje is left for the caller.
func (db *DB) TitleScore(ctx context.Context, title string) (*models.TitleScore, error) {
	m, err := db.FindTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	return &models.TitleScore{
		ID:          m.ID,
		Titulo:      m.Title,
		Anio:        releaseYear(m),
		Popularidad: m.Popularity,
	}, nil
}

// TitleVotes returns vote data for a title. CumpleMinimo reports whether the
// vote count reaches minVotes; the data is returned either way.
func (db *DB) TitleVotes(ctx context.Context, title string, minVotes int64) (*models.TitleVotes, error) {
	m, err := db.FindTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	return &models.TitleVotes{
		ID:           m.ID,
		Titulo:       m.Title,
		Anio:         releaseYear(m),
		Votos:        m.VoteCount,
		Promedio:     m.VoteAverage,
		CumpleMinimo: m.VoteCount >= minVotes,
	}, nil
}

// ActorStats aggregates the return of every movie the actor appears in.
func (db *DB) ActorStats(ctx context.Context, actor string) (_ *models.ActorStats, err error) {
	defer observe("actor_stats", time.Now(), &err)

	actor = strings.TrimSpace(actor)
	if actor == "" {
		return nil, ErrNotFound
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var (
		name  sql.NullString
		stats models.ActorStats
	)
	err = db.conn.QueryRowContext(ctx, `
		WITH hits AS (
			SELECT DISTINCT m.id, m."return"
			FROM movie_cast c
			JOIN movies m ON m.id = c.movie_id
			WHERE lower(c.actor) = lower(?)
		)
		SELECT
			(SELECT min(actor) FROM movie_cast WHERE lower(actor) = lower(?)),
			COUNT(*),
			COALESCE(SUM("return"), 0),
			COALESCE(AVG("return"), 0)
		FROM hits`, actor, actor).Scan(&name, &stats.CantidadPeliculas, &stats.RetornoTotal, &stats.RetornoPromedio)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate actor: %w", err)
	}
	if stats.CantidadPeliculas == 0 {
		return nil, ErrNotFound
	}

	stats.Actor = actor
	if name.Valid {
		stats.Actor = name.String
	}
	return &stats, nil
}

// DirectorStats lists every movie by the director with its return, budget
// and revenue, ordered by release date.
func (db *DB) DirectorStats(ctx context.Context, director string) (_ *models.DirectorStats, err error) {
	defer observe("director_stats", time.Now(), &err)

	director = strings.TrimSpace(director)
	if director == "" {
		return nil, ErrNotFound
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	// One row per movie, however many credits rows name the director.
	rows, err := db.conn.QueryContext(ctx, `
		SELECT m.id, m.title, m.release_date, COALESCE(m."return", 0),
		       m.budget, m.revenue, min(c.director)
		FROM credits c
		JOIN movies m ON m.id = c.id
		WHERE lower(c.director) = lower(?)
		GROUP BY m.id, m.title, m.release_date, m."return", m.budget, m.revenue
		ORDER BY m.release_date NULLS LAST, m.id`, director)
	if err != nil {
		return nil, fmt.Errorf("failed to query director: %w", err)
	}
	defer rows.Close()

	stats := &models.DirectorStats{Peliculas: []models.DirectorMovie{}}
	for rows.Next() {
		var (
			dm      models.DirectorMovie
			release sql.NullTime
			name    string
		)
		if err := rows.Scan(&dm.ID, &dm.Titulo, &release, &dm.Retorno, &dm.Costo, &dm.Ingresos, &name); err != nil {
			return nil, fmt.Errorf("failed to scan director movie: %w", err)
		}
		if release.Valid {
			dm.FechaEstreno = release.Time.Format("2006-01-02")
		}
		dm.Ganancia = dm.Ingresos - dm.Costo
		if stats.Director == "" {
			stats.Director = name
		}
		stats.RetornoTotal += dm.Retorno
		stats.Peliculas = append(stats.Peliculas, dm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate director movies: %w", err)
	}

	if len(stats.Peliculas) == 0 {
		return nil, ErrNotFound
	}
	return stats, nil
}

// Titles returns one entry per distinct title, sorted by title, carrying
// the id and popularity of the movie FindTitle would pick for it.
func (db *DB) Titles(ctx context.Context) ([]cache.TitleMatch, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT title, id, coalesce(popularity, 0)
		FROM (
			SELECT title, id, popularity,
			       row_number() OVER (PARTITION BY title ORDER BY popularity DESC NULLS LAST, id) AS rn
			FROM movies
			WHERE title <> ''
		)
		WHERE rn = 1
		ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("failed to query titles: %w", err)
	}
	defer rows.Close()

	var titles []cache.TitleMatch
	for rows.Next() {
		var m cache.TitleMatch
		if err := rows.Scan(&m.Title, &m.ID, &m.Popularity); err != nil {
			return nil, fmt.Errorf("failed to scan title: %w", err)
		}
		titles = append(titles, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate titles: %w", err)
	}
	return titles, nil
}

// SuggestTitles returns up to limit titles starting with prefix, ignoring
// case, most popular first.
func (db *DB) SuggestTitles(prefix string, limit int) []string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil
	}
	if limit <= 0 {
		limit = 10
	}

	db.titlesMu.RLock()
	index := db.titles
	db.titlesMu.RUnlock()

	matches := index.Suggest(prefix, limit)
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Title
	}
	return out
}

// Summary reports row counts and the release-date range.
func (db *DB) Summary(ctx context.Context) (*models.CatalogSummary, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var (
		s           models.CatalogSummary
		first, last sql.NullTime
	)
	err := db.conn.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM movies),
			(SELECT COUNT(*) FROM credits),
			(SELECT COUNT(*) FROM movie_cast),
			(SELECT COUNT(DISTINCT lower(director)) FROM credits WHERE director IS NOT NULL),
			(SELECT min(release_date) FROM movies),
			(SELECT max(release_date) FROM movies)`).Scan(
		&s.Movies, &s.Credits, &s.CastEntries, &s.Directors, &first, &last)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize catalog: %w", err)
	}

	if first.Valid {
		t := first.Time
		s.FirstRelease = &t
	}
	if last.Valid {
		t := last.Time
		s.LastRelease = &t
	}
	s.Source = db.source
	s.LoadedAt = db.loadedAt
	s.LoadDurationMS = db.loadDur.Milliseconds()
	return &s, nil
}

func releaseYear(m *models.Movie) int {
	if m.ReleaseDate == nil {
		return 0
	}
	return m.ReleaseDate.Year()
}
