// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

// Package catalog contains pure helpers for interpreting catalog input:
// Spanish month and weekday names from the HTTP surface and the serialized
// cast lists ("reparto") found in the credits dataset.
//
// Nothing here touches the database. The database package calls
// ParseCastList while loading, and the api package calls ParseMonth and
// ParseWeekday on path parameters.
package catalog
