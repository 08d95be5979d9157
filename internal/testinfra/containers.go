// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

//go:build integration

package testinfra

import (
	"context"
	"testing"

	"github.com/testcontainers/testcontainers-go"
)

// StartMongo starts a MongoDB container for t and terminates it when t
// finishes. The test is skipped when no container provider is reachable.
//
//	mongo := testinfra.StartMongo(t, ctx)
//	src, err := mongostore.New(ctx, &config.MongoConfig{URI: mongo.URI, ...})
func StartMongo(t *testing.T, ctx context.Context, opts ...MongoOption) *MongoContainer {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	mongo, err := NewMongoContainer(ctx, opts...)
	if err != nil {
		t.Fatalf("start mongo: %v", err)
	}
	testcontainers.CleanupContainer(t, mongo.Container)
	return mongo
}
