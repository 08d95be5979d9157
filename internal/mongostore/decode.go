// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package mongostore

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tomtom215/filmoteca/internal/models"
)

const releaseDateLayout = "2006-01-02"

func decodeMovie(doc bson.M) (models.Movie, bool) {
	id, ok := asInt64(doc["id"])
	if !ok {
		return models.Movie{}, false
	}

	m := models.Movie{
		ID:          id,
		Title:       strings.TrimSpace(asString(doc["title"])),
		ReleaseDate: asDate(doc["release_date"]),
		Overview:    asString(doc["overview"]),
	}
	m.Popularity, _ = asFloat(doc["popularity"])
	m.VoteAverage, _ = asFloat(doc["vote_average"])
	m.Budget, _ = asFloat(doc["budget"])
	m.Revenue, _ = asFloat(doc["revenue"])
	if votes, ok := asFloat(doc["vote_count"]); ok {
		m.VoteCount = int64(votes)
	}
	if ret, ok := asFloat(doc["return"]); ok {
		m.Return = &ret
	}
	return m, true
}

func decodeCredit(doc bson.M) (models.Credit, bool) {
	id, ok := asInt64(doc["id"])
	if !ok {
		return models.Credit{}, false
	}

	director := doc["Director"]
	if director == nil {
		director = doc["director"]
	}
	return models.Credit{
		ID:       id,
		Reparto:  asCastList(doc["reparto"]),
		Director: asString(director),
	}, true
}

func asInt64(v interface{}) (int64, bool) {
	switch x := v.(type) {
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case float64:
		if math.IsNaN(x) || math.Trunc(x) != x {
			return 0, false
		}
		return int64(x), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func asFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, false
		}
		return x, true
	case primitive.Decimal128:
		f, err := strconv.ParseFloat(x.String(), 64)
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func asString(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case nil:
		return ""
	case int32, int64, float64:
		f, _ := asFloat(x)
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		return ""
	}
}

// asDate accepts a BSON datetime or a "YYYY-MM-DD" string.
func asDate(v interface{}) *time.Time {
	switch x := v.(type) {
	case primitive.DateTime:
		t := x.Time().UTC()
		return &t
	case time.Time:
		t := x.UTC()
		return &t
	case string:
		t, err := time.Parse(releaseDateLayout, strings.TrimSpace(x))
		if err != nil {
			return nil
		}
		return &t
	default:
		return nil
	}
}

// asCastList returns the raw reparto text. A BSON array is re-encoded as a
// JSON array so the shared cast parser handles both shapes.
func asCastList(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case bson.A:
		names := make([]string, 0, len(x))
		for _, item := range x {
			if s, ok := item.(string); ok {
				names = append(names, s)
			}
		}
		b, err := json.Marshal(names)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return ""
	}
}
