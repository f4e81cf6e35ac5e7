// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

/*
Package api serves registered projects over the DebiAI data-provider HTTP API.

The routes and payload shapes are fixed by the DebiAI client, so successful
responses carry the bare DebiAI payloads (arrays and id-keyed objects). Errors
and the health routes use the APIResponse envelope.

Routes:

	GET    /info
	GET    /projects
	GET    /projects/{projectId}
	DELETE /projects/{projectId}
	GET    /projects/{projectId}/data-id-list
	POST   /projects/{projectId}/data
	GET    /projects/{projectId}/models
	DELETE /projects/{projectId}/models/{modelId}
	GET    /projects/{projectId}/models/{modelId}/evaluated-data-id-list
	POST   /projects/{projectId}/models/{modelId}/results
	GET    /projects/{projectId}/selections
	POST   /projects/{projectId}/selections
	DELETE /projects/{projectId}/selections/{selectionId}

	GET    /health/live, /health/ready, /metrics, /swagger/*, /

Error mapping (RespondProjectError):

  - unknown project, sample, model or selection: 404 NOT_FOUND
  - malformed request: 400 BAD_REQUEST or VALIDATION_FAILED
  - id list above the advertised limit: 413 REQUEST_TOO_LARGE
  - deletion turned off in the configuration: 403 FORBIDDEN
  - breaker open on the project: 503 SERVICE_UNAVAILABLE
  - project returning data that breaks its declaration: 500 PROJECT_CONTRACT_VIOLATION

Usage:

	reg := registry.New()
	reg.Add(ctx, memory.MyProject(), "")

	handler := api.NewHandler(reg, cfg)
	handler.SetReady(true)
	http.ListenAndServe(":8000", api.NewRouter(handler, cfg).Setup())
*/
package api
