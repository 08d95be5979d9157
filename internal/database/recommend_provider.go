// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/filmoteca/internal/recommend"
)

// unitSeparator joins aggregated names; it never appears in catalog text.
const unitSeparator = "\x1f"

// recommendationItemsQuery returns one row per movie id. When an id is
// duplicated the most popular row wins.
const recommendationItemsQuery = `
	WITH base AS (
		SELECT id, title, overview, popularity, vote_average,
		       COALESCE(year(release_date), 0) AS yr
		FROM movies
		WHERE id IS NOT NULL
		QUALIFY row_number() OVER (PARTITION BY id ORDER BY popularity DESC, title) = 1
	),
	cast_agg AS (
		SELECT movie_id, string_agg(actor, chr(31) ORDER BY actor) AS actors
		FROM (SELECT DISTINCT movie_id, actor FROM movie_cast)
		GROUP BY movie_id
	),
	director_agg AS (
		SELECT id, string_agg(director, chr(31) ORDER BY director) AS directors
		FROM (SELECT DISTINCT id, director FROM credits WHERE director IS NOT NULL)
		GROUP BY id
	)
	SELECT b.id, b.title, b.overview, b.popularity, b.vote_average, b.yr,
	       COALESCE(c.actors, ''), COALESCE(d.directors, '')
	FROM base b
	LEFT JOIN cast_agg c ON c.movie_id = b.id
	LEFT JOIN director_agg d ON d.id = b.id
	ORDER BY b.id`

// GetRecommendationItems implements recommend.DataProvider.
func (db *DB) GetRecommendationItems(ctx context.Context) ([]recommend.Item, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, recommendationItemsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendation items: %w", err)
	}
	defer rows.Close()

	var items []recommend.Item
	for rows.Next() {
		var (
			it                recommend.Item
			actors, directors string
		)
		if err := rows.Scan(&it.ID, &it.Title, &it.Overview, &it.Popularity, &it.VoteAverage,
			&it.Year, &actors, &directors); err != nil {
			return nil, fmt.Errorf("failed to scan recommendation item: %w", err)
		}
		it.Actors = splitAggregated(actors)
		it.Directors = splitAggregated(directors)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recommendation items: %w", err)
	}
	return items, nil
}

// ResolveTitle implements recommend.DataProvider with FindTitle's tie-breaking.
func (db *DB) ResolveTitle(ctx context.Context, title string) (int64, error) {
	m, err := db.FindTitle(ctx, title)
	if errors.Is(err, ErrNotFound) {
		return 0, fmt.Errorf("%w: title %q", recommend.ErrNotFound, strings.TrimSpace(title))
	}
	if err != nil {
		return 0, err
	}
	return m.ID, nil
}

func splitAggregated(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, unitSeparator)
}

var _ recommend.DataProvider = (*DB)(nil)
