// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package api

import (
	"net/http"
	"time"
)

// LiveStatus is the liveness probe payload.
type LiveStatus struct {
	Alive  bool    `json:"alive"`
	Uptime float64 `json:"uptime"`
}

// ReadyStatus is the readiness probe payload.
type ReadyStatus struct {
	Ready    bool     `json:"ready"`
	Projects []string `json:"projects"`
	Uptime   float64  `json:"uptime"`
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of the projects
//
// @Summary Kubernetes liveness probe
// @Description Returns 200 OK if the process is alive. Used for Kubernetes liveness probes.
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse{data=LiveStatus} "Service is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(LiveStatus{
		Alive:  true,
		Uptime: time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK only once every configured project is registered
//
// @Summary Kubernetes readiness probe
// @Description Returns 200 OK once the configured projects are loaded and served. Returns 503 while the provider is starting.
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse{data=ReadyStatus} "Service is ready"
// @Failure 503 {object} APIResponse "Service is not ready"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.ready.Load() {
		rw.ServiceUnavailable("Projects are still loading")
		return
	}
	rw.Success(ReadyStatus{
		Ready:    true,
		Projects: h.registry.Names(),
		Uptime:   time.Since(h.startTime).Seconds(),
	})
}
