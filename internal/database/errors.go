// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package database

import (
	"errors"
	"io"

	"github.com/tomtom215/filmoteca/internal/logging"
)

// ErrNotFound is returned when a title, actor or director has no match.
var ErrNotFound = errors.New("not found")

// closeLogged closes c during cleanup, logging rather than returning a failure.
func closeLogged(c io.Closer, what string) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		logging.Warn().Str("resource", what).Err(err).Msg("Close failed")
	}
}

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}
