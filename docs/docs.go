// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

// Package docs registers the OpenAPI document served at /swagger/doc.json.
// Keep it in step with the @Router annotations in internal/api.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "GitHub Repository",
            "url": "https://github.com/tomtom215/filmoteca/issues"
        },
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/cantidad_filmaciones_mes/{mes}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Movies released in a month",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Month name in Spanish", "name": "mes", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "400": {"description": "INVALID_MONTH", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/cantidad_filmaciones_dia/{dia}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Movies released on a weekday",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Weekday name in Spanish", "name": "dia", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "400": {"description": "INVALID_DAY", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/score_titulo/{titulo}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Title popularity",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Movie title", "name": "titulo", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "404": {"description": "TITLE_NOT_FOUND", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/votos_titulo/{titulo}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Title votes",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Movie title", "name": "titulo", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "404": {"description": "TITLE_NOT_FOUND", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/get_actor/{actor}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Actor statistics",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Actor name", "name": "actor", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "404": {"description": "ACTOR_NOT_FOUND", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/get_director/{director}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Director statistics",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Director name", "name": "director", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "404": {"description": "DIRECTOR_NOT_FOUND", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/titulos/sugerencias": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Title suggestions",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Title prefix", "name": "q", "in": "query", "required": true},
                    {"type": "integer", "description": "Maximum suggestions (1-50)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "400": {"description": "VALIDATION_ERROR", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/catalogo/resumen": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Catalog summary",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/recomendacion/{titulo}": {
            "get": {
                "tags": ["Recommendations"],
                "summary": "Similar movies",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Movie title", "name": "titulo", "in": "path", "required": true},
                    {"type": "integer", "description": "Number of recommendations", "name": "k", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "400": {"description": "VALIDATION_ERROR", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "404": {"description": "TITLE_NOT_FOUND", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "429": {"description": "RATE_LIMITED", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "503": {"description": "MODEL_NOT_READY", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/modelo/estado": {
            "get": {
                "tags": ["Recommendations"],
                "summary": "Recommendation model status",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "503": {"description": "Recommendations disabled", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["Core"],
                "summary": "Get system health status",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}}}
            }
        },
        "/health/live": {
            "get": {
                "tags": ["Core"],
                "summary": "Kubernetes liveness probe",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}}}
            }
        },
        "/health/ready": {
            "get": {
                "tags": ["Core"],
                "summary": "Kubernetes readiness probe",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Ready", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "503": {"description": "Not ready", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true}
            }
        },
        "models.Metadata": {
            "type": "object",
            "properties": {
                "timestamp": {"type": "string", "format": "date-time"},
                "query_time_ms": {"type": "integer"},
                "cached": {"type": "boolean"},
                "request_id": {"type": "string"}
            }
        },
        "models.APIResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "data": {},
                "metadata": {"$ref": "#/definitions/models.Metadata"},
                "error": {"$ref": "#/definitions/models.APIError"}
            }
        }
    },
    "tags": [
        {"name": "Catalog", "description": "Counts, lookups and aggregates over the movie catalog"},
        {"name": "Recommendations", "description": "Content similarity recommendations"},
        {"name": "Core", "description": "Health probes"}
    ]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Filmoteca API",
	Description:      "Read-only query and recommendation API over a static movie catalog.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
