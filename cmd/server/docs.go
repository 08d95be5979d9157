// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

// @title Filmoteca API
// @version 1.0
// @description Read-only query and recommendation API over a static movie catalog.
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address.
// @description Recommendations are additionally bounded by a process-wide token bucket.
// @description Rejected requests receive 429 with a `Retry-After` header.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {
// @description     "code": "TITLE_NOT_FOUND",
// @description     "message": "Título no encontrado",
// @description     "details": {"titulo": "Toy Stroy", "sugerencias": ["Toy Story"]}
// @description   },
// @description   "metadata": {
// @description     "timestamp": "2026-01-18T12:34:56Z"
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/filmoteca/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Catalog
// @tag.description Counts, lookups and aggregates over the movie catalog
//
// @tag.name Recommendations
// @tag.description Content similarity recommendations
//
// @tag.name Core
// @tag.description Health probes
package main
