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

// MessageResponse is the body of routes that only acknowledge an action.
type MessageResponse struct {
	Message string `json:"message" example:"Project deleted"`
}

// ListProjects handles GET /projects
//
// A project whose overview cannot be computed is left out of the listing
// and logged, so one broken source does not hide the others.
//
// @Summary List projects
// @Description Returns the overview of every provided project, keyed by project name. Unknown counts and dates are null.
// @Tags Projects
// @Produce json
// @Success 200 {object} map[string]project.Overview
// @Router /projects [get]
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	out := make(map[string]project.Overview, h.registry.Len())
	for _, e := range h.registry.List() {
		overview, err := e.Overview(ctx)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).
				Str("project", e.Name()).
				Msg("Skipping project in listing")
			continue
		}
		out[e.Name()] = overview
	}
	NewResponseWriter(w, r).OK(out)
}

// GetProject handles GET /projects/{projectId}
//
// @Summary Get project
// @Description Returns the project with its normalized column structure and expected results structure.
// @Tags Projects
// @Produce json
// @Param projectId path string true "Project name"
// @Success 200 {object} project.Detail
// @Failure 404 {object} APIResponse "Unknown project"
// @Failure 500 {object} APIResponse "Project declaration is invalid"
// @Router /projects/{projectId} [get]
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	e, r := h.exposure(w, r)
	if e == nil {
		return
	}
	detail, err := e.Detail(r.Context())
	if err != nil {
		RespondProjectError(w, r, err)
		return
	}
	NewResponseWriter(w, r).OK(detail)
}

// DeleteProject handles DELETE /projects/{projectId}
//
// The declaration's own deletion runs first when it has one; the project
// is then no longer served.
//
// @Summary Delete project
// @Tags Projects
// @Produce json
// @Param projectId path string true "Project name"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} APIResponse "Project deletion is disabled"
// @Failure 404 {object} APIResponse "Unknown project"
// @Router /projects/{projectId} [delete]
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if !h.config.API.CanDelete.Projects {
		RespondProjectError(w, r, ErrDeletionDisabled)
		return
	}
	e, r := h.exposure(w, r)
	if e == nil {
		return
	}
	if err := e.Delete(r.Context()); err != nil {
		RespondProjectError(w, r, err)
		return
	}
	if err := h.registry.Remove(e.Name()); err != nil {
		RespondProjectError(w, r, err)
		return
	}
	logging.Ctx(r.Context()).Info().Msg("Project deleted")
	NewResponseWriter(w, r).OK(MessageResponse{Message: "Project deleted"})
}

// DataIDList handles GET /projects/{projectId}/data-id-list
//
// @Summary List sample ids
// @Description Returns the sample ids in project order. from and to are inclusive positions; bounds past the end are truncated.
// @Tags Data
// @Produce json
// @Param projectId path string true "Project name"
// @Param from query int false "First position (inclusive)" minimum(0)
// @Param to query int false "Last position (inclusive)" minimum(0)
// @Param analysisId query string false "DebiAI analysis id"
// @Param analysisStart query bool false "First page of the analysis"
// @Param analysisEnd query bool false "Last page of the analysis"
// @Success 200 {array} string
// @Failure 400 {object} APIResponse "Invalid query parameters"
// @Failure 404 {object} APIResponse "Unknown project"
// @Router /projects/{projectId}/data-id-list [get]
func (h *Handler) DataIDList(w http.ResponseWriter, r *http.Request) {
	req, ok := parseDataIDListRequest(w, r)
	if !ok {
		return
	}
	e, r := h.exposure(w, r)
	if e == nil {
		return
	}

	if req.AnalysisID != "" {
		ev := logging.Ctx(r.Context()).Debug().Str("analysis_id", sanitizeLogValue(req.AnalysisID))
		if req.AnalysisStart != nil {
			ev = ev.Bool("analysis_start", *req.AnalysisStart)
		}
		if req.AnalysisEnd != nil {
			ev = ev.Bool("analysis_end", *req.AnalysisEnd)
		}
		ev.Msg("Sample id page requested for analysis")
	}

	ids, err := e.Slice(r.Context(), req.From, req.To)
	if err != nil {
		RespondProjectError(w, r, err)
		return
	}
	NewResponseWriter(w, r).OK(ids)
}

func parseDataIDListRequest(w http.ResponseWriter, r *http.Request) (DataIDListRequest, bool) {
	var req DataIDListRequest
	var err error
	rw := NewResponseWriter(w, r)

	if req.From, err = queryInt(r, "from"); err != nil {
		rw.BadRequest(err.Error())
		return req, false
	}
	if req.To, err = queryInt(r, "to"); err != nil {
		rw.BadRequest(err.Error())
		return req, false
	}
	if req.AnalysisStart, err = queryBool(r, "analysisStart"); err != nil {
		rw.BadRequest(err.Error())
		return req, false
	}
	if req.AnalysisEnd, err = queryBool(r, "analysisEnd"); err != nil {
		rw.BadRequest(err.Error())
		return req, false
	}
	req.AnalysisID = r.URL.Query().Get("analysisId")

	if !validate(w, r, &req) {
		return req, false
	}
	return req, true
}

// Data handles POST /projects/{projectId}/data
//
// @Summary Get sample data
// @Description Returns, for each requested sample id, its values in column order. Columns the source does not provide are null.
// @Tags Data
// @Accept json
// @Produce json
// @Param projectId path string true "Project name"
// @Param ids body []string true "Sample ids"
// @Success 200 {object} map[string][]interface{}
// @Failure 400 {object} APIResponse "Malformed id list"
// @Failure 404 {object} APIResponse "Unknown project or sample"
// @Failure 413 {object} APIResponse "Too many ids"
// @Router /projects/{projectId}/data [post]
func (h *Handler) Data(w http.ResponseWriter, r *http.Request) {
	e, r := h.exposure(w, r)
	if e == nil {
		return
	}
	ids, ok := decodeIDList(w, r, h.config.API.MaxSampleData)
	if !ok {
		return
	}
	records, err := e.Records(r.Context(), ids)
	if err != nil {
		RespondProjectError(w, r, err)
		return
	}
	NewResponseWriter(w, r).OK(records.Keyed())
}
