// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/tomtom215/debiai-data-provider/internal/logging"
)

//go:embed templates/home.html.tmpl
var templateFS embed.FS

var homeTemplate = template.Must(template.ParseFS(templateFS, "templates/home.html.tmpl"))

type homeData struct {
	Version        string
	SwaggerEnabled bool
	Projects       []string
}

// Home renders the HTML page listing the provided projects.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	data := homeData{
		Version:        h.config.API.Version,
		SwaggerEnabled: h.config.API.SwaggerEnabled,
		Projects:       h.registry.Names(),
	}

	var buf bytes.Buffer
	if err := homeTemplate.Execute(&buf, data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to render homepage")
		NewResponseWriter(w, r).InternalError("Failed to render homepage")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write homepage")
	}
}
