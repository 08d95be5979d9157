// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

/*
Package supervisor provides process supervision for the Filmoteca server
using suture v4.

The tree has two layers:

	RootSupervisor ("filmoteca")
	├── CatalogSupervisor ("catalog-layer")
	│   └── RecommendService (training on startup, optional retraining)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

The recommendation service retries failed training runs itself on its retry
interval. A panic inside it restarts the service within the catalog layer
under suture's backoff, while the HTTP server keeps serving catalog queries.
Until the first training succeeds, recommendation requests answer 503.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddCatalogService(services.NewRecommendService(engine, trainCfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(srv, addr, cfg.Server.ShutdownTimeout))

	errCh := tree.ServeBackground(ctx)

Supervisor events (restarts, backoff, timeouts) are logged through
sutureslog on top of the zerolog-backed slog handler.
*/
package supervisor
