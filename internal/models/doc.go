// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

// Package models holds the data types shared by the database, recommend and
// api packages: catalog rows, endpoint payloads and the response envelope.
//
// Payload field names are Spanish to stay compatible with existing clients of
// the catalog API.
package models
