// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

// Package testinfra provides test infrastructure for integration testing with containers.
//
// It uses testcontainers-go to start a disposable MongoDB for the Mongo
// catalog source:
//
//	func TestMongoSource(t *testing.T) {
//	    ctx := context.Background()
//	    mongo := testinfra.StartMongo(t, ctx) // skips without Docker
//	    // connect with mongo.URI
//	}
//
// Every file carries the integration build tag:
//
//	go test -tags integration ./internal/mongostore/...
package testinfra
