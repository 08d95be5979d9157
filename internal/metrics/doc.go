// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

/*
Package metrics provides Prometheus metrics collection and export for observability.

Metrics are registered on the default registry through promauto and exposed at
/metrics in Prometheus text format:

	curl http://localhost:8000/metrics

# Available Metrics

API:
  - api_requests_total (method, endpoint, status_code)
  - api_request_duration_seconds (method, endpoint)
  - api_active_requests
  - api_rate_limit_hits_total (limiter)

Catalog:
  - catalog_movies, catalog_credits, catalog_cast_entries
  - catalog_load_duration_seconds (source)
  - catalog_last_load_timestamp_seconds
  - duckdb_query_duration_seconds, duckdb_query_errors_total (operation)

Recommendations:
  - recommend_requests_total (result)
  - recommend_latency_seconds
  - recommend_training_total (result), recommend_training_duration_seconds
  - recommend_model_version, recommend_catalog_items

Circuit breaker (Mongo catalog source):
  - circuit_breaker_state, circuit_breaker_requests_total
  - circuit_breaker_consecutive_failures, circuit_breaker_state_transitions_total

The endpoint label is the chi route pattern, never the raw path, so titles and
names in the URL do not create new series.
*/
package metrics
