// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

/*
Package api provides the HTTP surface of Filmoteca.

Routes are served by a chi router (see SetupChi). Every /api/v1 response uses
the models.APIResponse envelope:

	{
	  "status": "success",
	  "data": {"mes": "enero", "cantidad": 5912, "mensaje": "..."},
	  "metadata": {"timestamp": "...", "query_time_ms": 2, "cached": true, "request_id": "..."}
	}

Catalog endpoints:

	GET /api/v1/cantidad_filmaciones_mes/{mes}
	GET /api/v1/cantidad_filmaciones_dia/{dia}
	GET /api/v1/score_titulo/{titulo}
	GET /api/v1/votos_titulo/{titulo}
	GET /api/v1/get_actor/{actor}
	GET /api/v1/get_director/{director}
	GET /api/v1/titulos/sugerencias?q=&limit=
	GET /api/v1/catalogo/resumen

Recommendations:

	GET /api/v1/recomendacion/{titulo}?k=

Operations:

	GET /api/v1/health, /api/v1/health/live, /api/v1/health/ready
	GET /metrics
	GET /swagger/*

The unversioned /cantidad_filmaciones_mes/{mes} keeps the original flat JSON
shape for existing clients and always answers 200.

Catalog query results are cached per endpoint and parameter by QueryExecutor.
Concurrent misses for the same key share one database query.
*/
package api
