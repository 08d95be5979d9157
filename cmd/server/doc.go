// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

/*
Package main is the entry point for the Filmoteca server.

Filmoteca loads a movie catalog (movies plus credits) into an in-memory
DuckDB database once at startup and serves read-only queries and
content-based recommendations over HTTP.

# Application Architecture

	RootSupervisor ("filmoteca")
	├── CatalogSupervisor ("catalog-layer")
	│   └── Recommendation training (startup, retry, optional schedule)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Startup order:

 1. Configuration: koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog, JSON or console
 3. Database: in-memory DuckDB
 4. Catalog: CSV files or MongoDB collections, then normalization
 5. Recommendation engine (unless RECOMMEND_ENABLED=false)
 6. Supervisor tree with the HTTP server

The server refuses to start if the catalog cannot be loaded. A failed
training run does not stop it: recommendation requests answer 503
MODEL_NOT_READY until a later run succeeds.

# Configuration

	HTTP_PORT=8000
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	CATALOG_SOURCE=csv           # csv or mongo
	MOVIES_CSV_PATH=data/movies_df.csv
	CREDITS_CSV_PATH=data/credit_df.csv
	MIN_VOTE_COUNT=2000

	MONGO_URI=mongodb://localhost:27017
	MONGO_DATABASE=filmoteca

	RECOMMEND_ENABLED=true
	RECOMMEND_ALGORITHMS=overview,popularity
	RECOMMEND_RETRY_INTERVAL=30s

	RATE_LIMIT_REQUESTS=100
	RATE_LIMIT_WINDOW=1m
	RECOMMEND_RPS=20

A config.yaml (or the file named by CONFIG_PATH) may set the same values
using their nested keys.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains
in-flight requests for HTTP_SHUTDOWN_TIMEOUT before the database is closed.

# Example Usage

	export MOVIES_CSV_PATH=/data/movies_df.csv
	export CREDITS_CSV_PATH=/data/credit_df.csv
	./filmoteca

	curl http://localhost:8000/api/v1/cantidad_filmaciones_mes/enero
	curl http://localhost:8000/api/v1/recomendacion/Toy%20Story?k=5
*/
package main
