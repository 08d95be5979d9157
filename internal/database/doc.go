// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

/*
Package database holds the movie catalog in an in-memory DuckDB instance and
answers every tabular query the API exposes.

# Tables

	movies      id, title, release_date, popularity, vote_count, vote_average,
	            "return", budget, revenue, overview
	credits     id, reparto, director
	movie_cast  movie_id, actor

movies and credits are filled once at startup, either from CSV files through
DuckDB's read_csv (LoadCSV) or from rows fetched elsewhere (InsertMovies and
InsertCredits, used by the Mongo source). Normalize then derives missing
return values, trims director names and explodes each reparto list into
movie_cast rows.

# Matching

Title, actor and director lookups compare lower(trim(x)) on both sides. When a
title is shared by several movies the most popular one wins, ties go to the
lowest id.

# Thread Safety

The catalog is immutable after Normalize. All query methods are safe for
concurrent use through database/sql's pool.
*/
package database
