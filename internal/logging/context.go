// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	projectKey   contextKey = "project"
)

// GenerateRequestID returns a new UUID.
func GenerateRequestID() string {
	return uuid.New().String()
}

// ContextWithRequestID returns a context carrying the HTTP request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request ID, or "".
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithProject returns a context carrying the project being served.
func ContextWithProject(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, projectKey, name)
}

// ProjectFromContext returns the project name, or "".
func ProjectFromContext(ctx context.Context) string {
	if name, ok := ctx.Value(projectKey).(string); ok {
		return name
	}
	return ""
}

// Ctx returns the global logger enriched with the request_id and project
// stored in ctx.
//
//	logging.Ctx(ctx).Info().Msg("Processing request")
func Ctx(ctx context.Context) *zerolog.Logger {
	lc := With()
	if id := RequestIDFromContext(ctx); id != "" {
		lc = lc.Str("request_id", id)
	}
	if name := ProjectFromContext(ctx); name != "" {
		lc = lc.Str("project", name)
	}
	l := lc.Logger()
	return &l
}
