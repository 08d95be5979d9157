// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package models

import "time"

// Movie is one row of the movies table.
//
// The bson tags match the documents read by the Mongo catalog source and
// mirror the CSV header names.
type Movie struct {
	ID          int64      `bson:"id" json:"id"`
	Title       string     `bson:"title" json:"title"`
	ReleaseDate *time.Time `bson:"release_date,omitempty" json:"release_date,omitempty"`
	Popularity  float64    `bson:"popularity" json:"popularity"`
	VoteCount   int64      `bson:"vote_count" json:"vote_count"`
	VoteAverage float64    `bson:"vote_average" json:"vote_average"`
	Return      *float64   `bson:"return,omitempty" json:"return,omitempty"`
	Budget      float64    `bson:"budget" json:"budget"`
	Revenue     float64    `bson:"revenue" json:"revenue"`
	Overview    string     `bson:"overview" json:"overview"`
}

// Credit is one row of the credits table. Reparto is the raw serialized cast
// list as it appears in the source.
type Credit struct {
	ID       int64  `bson:"id" json:"id"`
	Reparto  string `bson:"reparto" json:"reparto"`
	Director string `bson:"Director" json:"director"`
}
