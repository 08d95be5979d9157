// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

/*
load.go - Catalog Loading and Normalization

Two entry points fill the raw tables:
  - LoadCSV reads movies_df.csv and credit_df.csv with read_csv. Every column
    is read as VARCHAR and cast explicitly with TRY_CAST so that one malformed
    cell leaves a NULL instead of failing the whole load.
  - InsertMovies / InsertCredits take rows already decoded by another source
    (the Mongo catalog source) and insert them in a single transaction.

Normalize must run after either path. It derives "return", trims directors,
rebuilds movie_cast from each reparto list and refreshes the title index.
*/

package database

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/filmoteca/internal/cache"
	"github.com/tomtom215/filmoteca/internal/catalog"
	"github.com/tomtom215/filmoteca/internal/logging"
	"github.com/tomtom215/filmoteca/internal/models"
)

// LoadStats reports row counts after Normalize.
type LoadStats struct {
	Movies      int64
	Credits     int64
	CastEntries int64
	Duration    time.Duration
}

const moviesCSVSelect = `
	INSERT INTO movies
	SELECT
		TRY_CAST(id AS BIGINT),
		trim(COALESCE(title, '')),
		CAST(TRY_STRPTIME(trim(release_date), '%%Y-%%m-%%d') AS DATE),
		COALESCE(TRY_CAST(popularity AS DOUBLE), 0),
		COALESCE(TRY_CAST(TRY_CAST(vote_count AS DOUBLE) AS BIGINT), 0),
		COALESCE(TRY_CAST(vote_average AS DOUBLE), 0),
		TRY_CAST("return" AS DOUBLE),
		COALESCE(TRY_CAST(budget AS DOUBLE), 0),
		COALESCE(TRY_CAST(revenue AS DOUBLE), 0),
		COALESCE(overview, '')
	FROM read_csv('%s', header = true, all_varchar = true)
	WHERE TRY_CAST(id AS BIGINT) IS NOT NULL`

const creditsCSVSelect = `
	INSERT INTO credits
	SELECT
		TRY_CAST(id AS BIGINT),
		reparto,
		"Director"
	FROM read_csv('%s', header = true, all_varchar = true)
	WHERE TRY_CAST(id AS BIGINT) IS NOT NULL`

// LoadCSV replaces the raw tables with the contents of the two CSV files.
func (db *DB) LoadCSV(ctx context.Context, moviesPath, creditsPath string) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if err := db.truncate(ctx); err != nil {
		return err
	}

	if _, err := db.conn.ExecContext(ctx, fmt.Sprintf(moviesCSVSelect, sqlQuote(moviesPath))); err != nil {
		return fmt.Errorf("failed to load movies from %s: %w", moviesPath, err)
	}
	if _, err := db.conn.ExecContext(ctx, fmt.Sprintf(creditsCSVSelect, sqlQuote(creditsPath))); err != nil {
		return fmt.Errorf("failed to load credits from %s: %w", creditsPath, err)
	}

	db.source = "csv"
	logging.Info().
		Str("movies_path", moviesPath).
		Str("credits_path", creditsPath).
		Msg("Catalog CSV files loaded")
	return nil
}

// InsertMovies appends movies in one transaction.
func (db *DB) InsertMovies(ctx context.Context, movies []models.Movie) (err error) {
	if len(movies) == 0 {
		return nil
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.Error().Err(rbErr).AnErr("original_error", err).Msg("Transaction rollback failed")
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO movies VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer closeLogged(stmt, "prepared statement")

	for i := range movies {
		m := &movies[i]
		var release interface{}
		if m.ReleaseDate != nil {
			release = m.ReleaseDate.UTC().Truncate(24 * time.Hour)
		}
		var ret interface{}
		if m.Return != nil {
			ret = *m.Return
		}
		if _, err = stmt.ExecContext(ctx,
			m.ID, strings.TrimSpace(m.Title), release, m.Popularity, m.VoteCount,
			m.VoteAverage, ret, m.Budget, m.Revenue, m.Overview,
		); err != nil {
			return fmt.Errorf("failed to insert movie %d: %w", m.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit movies: %w", err)
	}
	return nil
}

// InsertCredits appends credits in one transaction.
func (db *DB) InsertCredits(ctx context.Context, credits []models.Credit) (err error) {
	if len(credits) == 0 {
		return nil
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.Error().Err(rbErr).AnErr("original_error", err).Msg("Transaction rollback failed")
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO credits VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer closeLogged(stmt, "prepared statement")

	for i := range credits {
		c := &credits[i]
		if _, err = stmt.ExecContext(ctx, c.ID, c.Reparto, c.Director); err != nil {
			return fmt.Errorf("failed to insert credit %d: %w", c.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit credits: %w", err)
	}
	return nil
}

// SetSource records where the raw rows came from. It is reported by Summary.
func (db *DB) SetSource(source string) {
	db.source = source
}

// Normalize derives computed columns, fills movie_cast and rebuilds the title
// index. It is idempotent.
func (db *DB) Normalize(ctx context.Context) (*LoadStats, error) {
	start := time.Now()

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	derive := []string{
		`UPDATE movies SET "return" = CASE WHEN budget > 0 THEN revenue / budget ELSE 0 END WHERE "return" IS NULL`,
		`UPDATE credits SET director = NULLIF(trim(director), '')`,
		`DELETE FROM movie_cast`,
	}
	for _, q := range derive {
		if _, err := db.conn.ExecContext(ctx, q); err != nil {
			return nil, fmt.Errorf("failed to normalize catalog: %w", err)
		}
	}

	castRows, err := db.explodeCast(ctx)
	if err != nil {
		return nil, err
	}
	if err := db.appendCast(ctx, castRows); err != nil {
		return nil, err
	}

	if err := db.buildTitleIndex(ctx); err != nil {
		return nil, err
	}

	stats := &LoadStats{CastEntries: int64(len(castRows))}
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&stats.Movies); err != nil {
		return nil, fmt.Errorf("failed to count movies: %w", err)
	}
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM credits`).Scan(&stats.Credits); err != nil {
		return nil, fmt.Errorf("failed to count credits: %w", err)
	}
	stats.Duration = time.Since(start)

	db.loadedAt = time.Now()
	db.loadDur = stats.Duration

	logging.Info().
		Int64("movies", stats.Movies).
		Int64("credits", stats.Credits).
		Int64("cast_entries", stats.CastEntries).
		Dur("duration", stats.Duration).
		Msg("Catalog normalized")

	return stats, nil
}

type castRow struct {
	movieID int64
	actor   string
}

func (db *DB) explodeCast(ctx context.Context) ([]castRow, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT id, reparto FROM credits WHERE reparto IS NOT NULL AND id IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("failed to read credits: %w", err)
	}
	defer rows.Close()

	var out []castRow
	for rows.Next() {
		var id int64
		var reparto string
		if err := rows.Scan(&id, &reparto); err != nil {
			return nil, fmt.Errorf("failed to scan credit: %w", err)
		}
		for _, actor := range catalog.ParseCastList(reparto) {
			out = append(out, castRow{movieID: id, actor: actor})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate credits: %w", err)
	}
	return out, nil
}

// appendCast bulk-loads movie_cast through the DuckDB appender.
func (db *DB) appendCast(ctx context.Context, rows []castRow) error {
	if len(rows) == 0 {
		return nil
	}

	conn, err := db.conn.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer closeLogged(conn, "connection")

	return conn.Raw(func(driverConn any) error {
		dc, ok := driverConn.(driver.Conn)
		if !ok {
			return fmt.Errorf("unexpected driver connection type %T", driverConn)
		}
		appender, err := duckdb.NewAppenderFromConn(dc, "", "movie_cast")
		if err != nil {
			return fmt.Errorf("failed to create appender: %w", err)
		}
		for _, r := range rows {
			if err := appender.AppendRow(r.movieID, r.actor); err != nil {
				closeQuietly(appender)
				return fmt.Errorf("failed to append cast row: %w", err)
			}
		}
		if err := appender.Close(); err != nil {
			return fmt.Errorf("failed to flush cast rows: %w", err)
		}
		return nil
	})
}

func (db *DB) buildTitleIndex(ctx context.Context) error {
	titles, err := db.Titles(ctx)
	if err != nil {
		return err
	}

	index := cache.NewTitleIndex(titleIndexMaxSuggestions)
	for _, t := range titles {
		index.Add(t.Title, t.ID, t.Popularity)
	}

	db.titlesMu.Lock()
	db.titles = index
	db.titlesMu.Unlock()
	return nil
}

func (db *DB) truncate(ctx context.Context) error {
	for _, table := range []string{"movie_cast", "credits", "movies"} {
		if _, err := db.conn.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// Truncate empties every catalog table and the title index.
func (db *DB) Truncate(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	if err := db.truncate(ctx); err != nil {
		return err
	}

	db.titlesMu.RLock()
	index := db.titles
	db.titlesMu.RUnlock()
	index.Reset()
	return nil
}

// sqlQuote escapes a string for use inside a single-quoted SQL literal.
// read_csv does not accept bound parameters for its path argument.
func sqlQuote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
