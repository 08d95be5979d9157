// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

/*
Package middleware provides HTTP middleware shared by every API route.

Key Components:

  - RequestID: accepts a sane upstream X-Request-ID or generates a UUID v4,
    echoes it in the response and stores it in the logging context
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern

Both have chi's func(http.Handler) http.Handler shape and go straight into
r.Use().
*/
package middleware
