// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package catalog

import (
	"strings"

	"github.com/goccy/go-json"
)

// ParseCastList decodes a serialized cast list into trimmed, non-empty names.
//
// Three encodings occur in the credits data:
//
//	['Tom Hanks', "Tim O'Hara"]   list literal, mixed quotes
//	["Tom Hanks", "Tim Allen"]    JSON array
//	Tom Hanks, Tim Allen          plain comma-separated text
//
// Duplicate names within one list are kept once, in first-seen order.
// Empty input and "[]" yield nil.
func ParseCastList(raw string) []string {
	s := strings.TrimSpace(raw)
	if s == "" || s == "[]" {
		return nil
	}

	var names []string
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		if err := json.Unmarshal([]byte(s), &names); err != nil {
			names = parseListLiteral(s[1 : len(s)-1])
		}
	} else {
		names = strings.Split(s, ",")
	}

	return cleanNames(names)
}

// parseListLiteral splits the body of a bracketed list literal. Elements may be
// single or double quoted; a backslash escapes the next character. Unquoted
// elements are taken up to the next comma.
func parseListLiteral(body string) []string {
	var (
		out   []string
		cur   strings.Builder
		quote rune
		esc   bool
		inEl  bool
	)

	flush := func() {
		if inEl {
			out = append(out, cur.String())
		}
		cur.Reset()
		inEl = false
	}

	for _, r := range body {
		switch {
		case esc:
			cur.WriteRune(r)
			esc = false
		case quote != 0:
			switch r {
			case '\\':
				esc = true
			case quote:
				quote = 0
			default:
				cur.WriteRune(r)
			}
		case (r == '\'' || r == '"') && !inEl:
			quote = r
			inEl = true
		case r == ',':
			flush()
		default:
			if r != ' ' && r != '\t' || inEl {
				inEl = true
				cur.WriteRune(r)
			}
		}
	}
	flush()

	return out
}

func cleanNames(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
