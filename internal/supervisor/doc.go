// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

/*
Package supervisor runs movierec's long-lived services under a suture v4 tree.

	movierec
	├── data-layer
	│   └── ArtifactPreloadService (if artifacts.preload)
	└── api-layer
	    └── HTTPServerService

The data layer only warms the artifact store; the preload service exits with
suture.ErrDoNotRestart whatever the outcome, so a broken artifact directory
shows up as a failed lookup rather than a restart loop. The API layer serves
requests whether or not the preload succeeded.

Supervisor events are logged through sutureslog into the zerolog-backed slog
handler from internal/logging:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewArtifactPreloadService(store, time.Minute, logger))
	tree.AddAPIService(services.NewHTTPServerService(srv, cfg.Server.ShutdownTimeout))
	return tree.Serve(ctx)
*/
package supervisor
