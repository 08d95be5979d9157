// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package database

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/filmoteca/internal/cache"
	"github.com/tomtom215/filmoteca/internal/config"
	"github.com/tomtom215/filmoteca/internal/logging"
)

const titleIndexMaxSuggestions = 50

// DB wraps the DuckDB connection and provides catalog access methods
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig

	// Title autocomplete, rebuilt by Normalize
	titles   *cache.TitleIndex
	titlesMu sync.RWMutex

	loadedAt time.Time
	loadDur  time.Duration
	source   string
}

// New opens the database and creates the catalog schema
func New(cfg *config.DatabaseConfig) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	preserveOrder := "true"
	if !cfg.PreserveInsertionOrder {
		preserveOrder = "false"
	}

	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "1GB"
	}

	// Extensions are never fetched at runtime; read_csv and strptime are built in.
	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&preserve_insertion_order=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Path, numThreads, maxMemory, preserveOrder)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		conn:   conn,
		cfg:    cfg,
		titles: cache.NewTitleIndex(titleIndexMaxSuggestions),
	}

	db.configureConnectionPool()

	if err := db.createTables(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return db, nil
}

// Conn returns the underlying SQL database connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Close closes the database connection
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}

// configureConnectionPool sets connection pool parameters
func (db *DB) configureConnectionPool() {
	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// ensureContext creates a context with 30-second timeout if none provided
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), 30*time.Second)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, 30*time.Second)
	}

	return ctx, func() {}
}

func (db *DB) createTables() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	logging.Debug().Str("path", db.cfg.Path).Msg("Catalog schema created")
	return nil
}

// schemaStatements create empty catalog tables. No constraints: the source
// data contains duplicate ids and credits without a movie.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS movies (
		id           BIGINT,
		title        VARCHAR,
		release_date DATE,
		popularity   DOUBLE,
		vote_count   BIGINT,
		vote_average DOUBLE,
		"return"     DOUBLE,
		budget       DOUBLE,
		revenue      DOUBLE,
		overview     VARCHAR
	)`,
	`CREATE TABLE IF NOT EXISTS credits (
		id       BIGINT,
		reparto  VARCHAR,
		director VARCHAR
	)`,
	`CREATE TABLE IF NOT EXISTS movie_cast (
		movie_id BIGINT,
		actor    VARCHAR
	)`,
}
