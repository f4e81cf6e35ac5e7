// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

/*
Package supervisor runs the long-lived services of the provider under a
suture v4 tree.

	debiai-provider
	├── data-layer
	│   └── RevalidationService (when supervisor.revalidate_interval > 0)
	└── api-layer
	    └── HTTPServerService

Failures are restarted with suture's backoff policy (FailureThreshold,
FailureDecay, FailureBackoff) and supervisor events are logged through
sutureslog, which writes to zerolog via logging.NewSlogLogger.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(),
	    supervisor.TreeConfigFrom(cfg.Supervisor))
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Supervisor.ShutdownTimeout))
	return tree.Serve(ctx)
*/
package supervisor
