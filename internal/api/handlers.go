// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package api

import (
	"sync/atomic"
	"time"

	"github.com/tomtom215/debiai-data-provider/internal/config"
	"github.com/tomtom215/debiai-data-provider/internal/registry"
)

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: path, query and body parsing shared by handlers
//   - handlers_info.go: GET /info
//   - handlers_projects.go: project listing, detail, deletion, ids and data
//   - handlers_models.go: models and model results
//   - handlers_selections.go: selections
//   - handlers_health.go: liveness and readiness probes
//   - handlers_home.go: HTML homepage
type Handler struct {
	registry  *registry.Registry
	config    *config.Config
	startTime time.Time
	ready     atomic.Bool
}

// NewHandler creates a new API handler serving the projects of reg.
//
// The registry is read on every request, so projects added or removed
// after the router is built are visible immediately.
//
// Example:
//
//	reg := registry.New()
//	_, _ = reg.Add(ctx, memory.MyProject(), "")
//	handler := api.NewHandler(reg, cfg)
//	router := api.NewRouter(handler, cfg)
//	http.ListenAndServe(":8000", router.Setup())
func NewHandler(reg *registry.Registry, cfg *config.Config) *Handler {
	return &Handler{
		registry:  reg,
		config:    cfg,
		startTime: time.Now(),
	}
}

// Registry returns the registry the handler serves.
func (h *Handler) Registry() *registry.Registry {
	return h.registry
}

// SetReady marks the provider as ready (or not) to serve traffic.
// The readiness probe fails until every configured project is registered.
func (h *Handler) SetReady(ready bool) {
	h.ready.Store(ready)
}
