// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

/*
Package mongostore reads the movie catalog from MongoDB.

It is the alternative to the CSV loader when catalog.source is "mongo". The
two collections mirror the CSV files: one document per movies_df.csv row and
one per credit_df.csv row. Documents produced by mongoimport --headerline are
loosely typed (a numeric column may arrive as int32, int64, double or string),
so every field is coerced rather than decoded through struct tags.

The source is read-only. Each fetch runs through a sony/gobreaker circuit
breaker whose state is exported as circuit_breaker_* metrics under the name
"mongo-catalog". Load retries failed fetches (mongo.load_attempts,
mongo.retry_delay) and gives up as soon as the breaker opens.

Usage:

	src, err := mongostore.New(ctx, &cfg.Mongo)
	if err != nil {
	    return err
	}
	defer src.Close(context.Background())

	movies, credits, err := src.Load(ctx, db)
*/
package mongostore
