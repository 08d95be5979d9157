// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

/*
Package services provides suture.Service wrappers for the server's
long-running components.

HTTPServerService adapts *http.Server's blocking ListenAndServe to suture's
context-aware Serve and performs a bounded graceful Shutdown on cancellation.

RecommendService trains the recommendation engine on startup, retries a
failed first run after RetryInterval, and retrains every TrainInterval when
one is configured. Each run is recorded in recommend_training_total with a
result label (success, failure, in_progress, insufficient_items).

Both types implement fmt.Stringer so suture events name them.
*/
package services
