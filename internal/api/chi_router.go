// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/debiai-data-provider/internal/config"
	"github.com/tomtom215/debiai-data-provider/internal/middleware"
)

// Router sets up HTTP routes using Chi router.
type Router struct {
	handler       *Handler
	config        *config.Config
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a new router serving handler with the middleware
// described by cfg.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	return &Router{
		handler:       handler,
		config:        cfg,
		chiMiddleware: NewChiMiddleware(ChiMiddlewareConfigFromSecurity(cfg.Security)),
	}
}

// Setup configures all HTTP routes and returns the root handler.
//
// The DebiAI routes live at the root, where the DebiAI client expects
// them. Errors follow the APIResponse envelope; successes return the bare
// DebiAI payloads.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()
	h := router.handler
	apiCfg := router.config.API

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight
	r.Use(middleware.PrometheusMetrics)
	r.Use(AccessLog())
	if apiCfg.CompressionEnabled {
		r.Use(chimiddleware.Compress(5, "application/json", "text/html"))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, r, "No route matches "+sanitizeLogValue(r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
	})

	// ========================
	// Health Routes
	// ========================
	r.Route("/health", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	// ========================
	// DebiAI Data Provider Routes
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())

		r.Get("/info", h.Info)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", h.ListProjects)

			r.Route("/{projectId}", func(r chi.Router) {
				r.Get("/", h.GetProject)
				r.Delete("/", h.DeleteProject)

				r.Get("/data-id-list", h.DataIDList)
				r.Post("/data", h.Data)

				r.Get("/models", h.Models)
				r.Route("/models/{modelId}", func(r chi.Router) {
					r.Delete("/", h.DeleteModel)
					r.Get("/evaluated-data-id-list", h.EvaluatedIDs)
					r.Post("/results", h.ModelResults)
				})

				r.Get("/selections", h.Selections)
				r.Post("/selections", h.CreateSelection)
				r.Delete("/selections/{selectionId}", h.DeleteSelection)
			})
		})
	})

	// ========================
	// Observability
	// ========================
	if apiCfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}
	if apiCfg.SwaggerEnabled {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
			httpSwagger.DeepLinking(true),
			httpSwagger.DocExpansion("list"),
			httpSwagger.DomID("swagger-ui"),
		))
	}

	// ========================
	// Homepage
	// ========================
	if apiCfg.HomepageEnabled {
		r.Get("/", h.Home)
	}

	return r
}
