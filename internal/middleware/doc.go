// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

/*
Package middleware provides HTTP middleware shared by the API router.

PrometheusMetrics instruments every request with the collectors of the
metrics package. It must be installed on a chi router: requests are
labelled with the matched route pattern, never with the raw path, so the
label set stays bounded whatever project or model names clients send.

Usage:

	r := chi.NewRouter()
	r.Use(middleware.PrometheusMetrics)
	r.Get("/projects/{projectId}", handler.GetProject)

Requests that match no route are recorded under the "unmatched" label.
*/
package middleware
