// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package api

import (
	"net/http"

	"github.com/tomtom215/debiai-data-provider/internal/config"
)

// InfoResponse describes the provider to the DebiAI client.
type InfoResponse struct {
	Version                string                 `json:"version" example:"0.0.0"`
	MaxSampleIDByRequest   int                    `json:"maxSampleIdByRequest" example:"10000"`
	MaxSampleDataByRequest int                    `json:"maxSampleDataByRequest" example:"2000"`
	MaxResultByRequest     int                    `json:"maxResultByRequest" example:"5000"`
	CanDelete              config.CanDeleteConfig `json:"canDelete"`
}

// Info handles GET /info
//
// @Summary Get provider information
// @Description Returns the provider version, the maximum number of ids per request on each route and the deletions the client may offer.
// @Tags Info
// @Produce json
// @Success 200 {object} InfoResponse
// @Router /info [get]
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	api := h.config.API
	NewResponseWriter(w, r).OK(InfoResponse{
		Version:                api.Version,
		MaxSampleIDByRequest:   api.MaxSampleIDs,
		MaxSampleDataByRequest: api.MaxSampleData,
		MaxResultByRequest:     api.MaxResults,
		CanDelete:              api.CanDelete,
	})
}
