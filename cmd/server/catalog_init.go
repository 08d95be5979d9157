// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/filmoteca/internal/config"
	"github.com/tomtom215/filmoteca/internal/database"
	"github.com/tomtom215/filmoteca/internal/logging"
	"github.com/tomtom215/filmoteca/internal/metrics"
	"github.com/tomtom215/filmoteca/internal/mongostore"
)

// loadCatalog fills the movies and credits tables from the configured
// source and builds the derived cast table and title index.
func loadCatalog(ctx context.Context, cfg *config.Config, db *database.DB) error {
	start := time.Now()

	switch cfg.Catalog.Source {
	case config.SourceMongo:
		if err := loadFromMongo(ctx, cfg, db); err != nil {
			return err
		}
	default:
		logging.Info().
			Str("movies", cfg.Catalog.MoviesPath).
			Str("credits", cfg.Catalog.CreditsPath).
			Msg("Loading catalog from CSV")
		if err := db.LoadCSV(ctx, cfg.Catalog.MoviesPath, cfg.Catalog.CreditsPath); err != nil {
			return fmt.Errorf("load catalog csv: %w", err)
		}
	}
	db.SetSource(cfg.Catalog.Source)

	stats, err := db.Normalize(ctx)
	if err != nil {
		return fmt.Errorf("normalize catalog: %w", err)
	}

	elapsed := time.Since(start)
	metrics.RecordCatalogLoad(cfg.Catalog.Source, stats.Movies, stats.Credits, stats.CastEntries, elapsed)
	logging.Info().
		Int64("movies", stats.Movies).
		Int64("credits", stats.Credits).
		Int64("cast_entries", stats.CastEntries).
		Dur("duration", elapsed).
		Msg("Catalog loaded")
	return nil
}

func loadFromMongo(ctx context.Context, cfg *config.Config, db *database.DB) error {
	logging.Info().
		Str("database", cfg.Mongo.Database).
		Str("movies", cfg.Mongo.MoviesCollection).
		Str("credits", cfg.Mongo.CreditsCollection).
		Msg("Loading catalog from MongoDB")

	src, err := mongostore.New(ctx, &cfg.Mongo)
	if err != nil {
		return fmt.Errorf("connect to mongo: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := src.Close(closeCtx); err != nil {
			logging.Warn().Err(err).Msg("Error disconnecting from MongoDB")
		}
	}()

	movies, credits, err := src.Load(ctx, db)
	if err != nil {
		return fmt.Errorf("load catalog from mongo: %w", err)
	}
	logging.Debug().Int("movies", movies).Int("credits", credits).Msg("MongoDB documents imported")
	return nil
}
