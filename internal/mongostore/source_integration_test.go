// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

//go:build integration

package mongostore

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tomtom215/filmoteca/internal/config"
	"github.com/tomtom215/filmoteca/internal/models"
	"github.com/tomtom215/filmoteca/internal/testinfra"
)

func seedCatalog(t *testing.T, ctx context.Context, uri string) {
	t.Helper()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	db := client.Database("filmoteca")
	if _, err := db.Collection("movies").InsertMany(ctx, []interface{}{
		bson.M{"id": int32(862), "title": "Toy Story", "release_date": "1995-10-30", "popularity": 21.9, "vote_count": int32(5415)},
		bson.M{"id": "949", "title": "Heat", "release_date": "1995-12-15", "popularity": "17.9"},
		bson.M{"id": "not-a-number", "title": "Broken"},
	}); err != nil {
		t.Fatalf("seed movies: %v", err)
	}
	if _, err := db.Collection("credits").InsertMany(ctx, []interface{}{
		bson.M{"id": int32(862), "reparto": "['Tom Hanks', 'Tim Allen']", "Director": "John Lasseter"},
		bson.M{"id": int32(949), "reparto": bson.A{"Al Pacino", "Robert De Niro"}, "Director": "Michael Mann"},
	}); err != nil {
		t.Fatalf("seed credits: %v", err)
	}
}

func TestSource_Load(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	container := testinfra.StartMongo(t, ctx)

	seedCatalog(t, ctx, container.URI)

	src, err := New(ctx, &config.MongoConfig{
		URI:               container.URI,
		Database:          "filmoteca",
		MoviesCollection:  "movies",
		CreditsCollection: "credits",
		ConnectTimeout:    10 * time.Second,
		QueryTimeout:      30 * time.Second,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = src.Close(context.Background()) }()

	sink := &recordingSink{}
	movies, credits, err := src.Load(ctx, sink)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if movies != 2 || credits != 2 {
		t.Errorf("Load() = %d movies, %d credits; want 2, 2", movies, credits)
	}

	byID := make(map[int64]models.Movie)
	for _, m := range sink.movies {
		byID[m.ID] = m
	}
	if byID[949].Popularity != 17.9 {
		t.Errorf("string popularity not coerced: %+v", byID[949])
	}
	if byID[862].ReleaseDate == nil {
		t.Error("release date not parsed")
	}
}

func TestNew_Unreachable(t *testing.T) {
	_, err := New(context.Background(), &config.MongoConfig{
		URI:            "mongodb://127.0.0.1:1",
		ConnectTimeout: 500 * time.Millisecond,
	})
	if err == nil {
		t.Error("expected error for unreachable server")
	}
}
