// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

/*
Package metrics provides Prometheus metrics collection and export for observability.

Collectors are registered on the default registry through promauto and exposed
at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8000/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint (chi route pattern), status_code
  - api_request_duration_seconds: Request latency (histogram)
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Requests rejected by the rate limiter (counter)

Project Metrics:
  - project_calls_total: Calls into project declarations (counter)
    Labels: project, operation, outcome
  - project_call_duration_seconds: Declaration call latency (histogram)
  - registry_projects: Registered projects (gauge)
  - project_validation_failures_total: Failed periodic validations (counter)

Database Metrics:
  - db_query_duration_seconds, db_query_errors_total
    Labels: driver, operation

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - circuit_breaker_requests_total: Labels name, result
  - circuit_breaker_consecutive_failures (gauge)
  - circuit_breaker_state_transitions_total: Labels name, from_state, to_state

# Usage

	start := time.Now()
	// ... handle request ...
	metrics.RecordAPIRequest(r.Method, "/projects/{projectId}", "200", time.Since(start))
*/
package metrics
