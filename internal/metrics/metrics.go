// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - API endpoint latency and throughput
// - calls into project declarations
// - SQL queries issued by database-backed projects
// - circuit breakers guarding declarations

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Project Metrics
	ProjectCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "project_calls_total",
			Help: "Total number of calls into project declarations",
		},
		[]string{"project", "operation", "outcome"}, // outcome: "success", "not_found", "error"
	)

	ProjectCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "project_call_duration_seconds",
			Help:    "Duration of calls into project declarations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"project", "operation"},
	)

	RegistryProjects = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "registry_projects",
			Help: "Current number of registered projects",
		},
	)

	ProjectValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "project_validation_failures_total",
			Help: "Total number of failed periodic project validations",
		},
		[]string{"project"},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of SQL queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"driver", "operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of SQL query errors",
		},
		[]string{"driver", "operation"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordProjectCall records one call into a project declaration.
func RecordProjectCall(project, operation, outcome string, duration time.Duration) {
	ProjectCallsTotal.WithLabelValues(project, operation, outcome).Inc()
	ProjectCallDuration.WithLabelValues(project, operation).Observe(duration.Seconds())
}

// RecordDBQuery records a SQL query metric
func RecordDBQuery(driver, operation string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(driver, operation).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(driver, operation).Inc()
	}
}

// SetRegisteredProjects updates the registry gauge.
func SetRegisteredProjects(n int) {
	RegistryProjects.Set(float64(n))
}

// SetAppInfo publishes the running version on the app_info gauge.
func SetAppInfo(version string) {
	AppInfo.Reset()
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}
