// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package api

import (
	"net/http"

	"github.com/tomtom215/debiai-data-provider/internal/logging"
	"github.com/tomtom215/debiai-data-provider/internal/project"
)

// Selections handles GET /projects/{projectId}/selections
//
// @Summary List selections
// @Tags Selections
// @Produce json
// @Param projectId path string true "Project name"
// @Success 200 {array} project.Selection
// @Failure 404 {object} APIResponse "Unknown project"
// @Router /projects/{projectId}/selections [get]
func (h *Handler) Selections(w http.ResponseWriter, r *http.Request) {
	e, r := h.exposure(w, r)
	if e == nil {
		return
	}
	selections, err := e.Selections(r.Context())
	if err != nil {
		RespondProjectError(w, r, err)
		return
	}
	NewResponseWriter(w, r).OK(selections)
}

// CreateSelection handles POST /projects/{projectId}/selections
//
// @Summary Create selection
// @Description Stores a named subset of samples. Projects that do not store selections accept and ignore the request.
// @Tags Selections
// @Accept json
// @Param projectId path string true "Project name"
// @Param selection body project.SelectionRequest true "Selection"
// @Success 204
// @Failure 400 {object} APIResponse "Malformed selection"
// @Failure 404 {object} APIResponse "Unknown project or sample"
// @Router /projects/{projectId}/selections [post]
func (h *Handler) CreateSelection(w http.ResponseWriter, r *http.Request) {
	e, r := h.exposure(w, r)
	if e == nil {
		return
	}

	rw := NewResponseWriter(w, r)
	var req project.SelectionRequest
	if err := decodeBody(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validate(w, r, &req) {
		return
	}
	if err := project.CheckIDs("idList", req.IDs); err != nil {
		rw.BadRequest(err.Error())
		return
	}

	if err := e.CreateSelection(r.Context(), req); err != nil {
		RespondProjectError(w, r, err)
		return
	}
	logging.Ctx(r.Context()).Info().
		Str("selection", sanitizeLogValue(req.Name)).
		Int("samples", len(req.IDs)).
		Msg("Selection created")
	rw.NoContent()
}

// DeleteSelection handles DELETE /projects/{projectId}/selections/{selectionId}
//
// @Summary Delete selection
// @Tags Selections
// @Param projectId path string true "Project name"
// @Param selectionId path string true "Selection id"
// @Success 204
// @Failure 403 {object} APIResponse "Selection deletion is disabled"
// @Failure 404 {object} APIResponse "Unknown project or selection"
// @Router /projects/{projectId}/selections/{selectionId} [delete]
func (h *Handler) DeleteSelection(w http.ResponseWriter, r *http.Request) {
	if !h.config.API.CanDelete.Selections {
		RespondProjectError(w, r, ErrDeletionDisabled)
		return
	}
	path := SelectionPath{
		ProjectID:   urlParam(r, "projectId"),
		SelectionID: urlParam(r, "selectionId"),
	}
	if !validate(w, r, &path) {
		return
	}
	e, r := h.exposure(w, r)
	if e == nil {
		return
	}
	if err := e.DeleteSelection(r.Context(), path.SelectionID); err != nil {
		RespondProjectError(w, r, err)
		return
	}
	NewResponseWriter(w, r).NoContent()
}
