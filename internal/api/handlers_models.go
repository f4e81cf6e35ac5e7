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

// modelPath resolves the project and validates {modelId}.
func (h *Handler) modelPath(w http.ResponseWriter, r *http.Request) (*project.Exposure, string, *http.Request) {
	path := ModelPath{
		ProjectID: urlParam(r, "projectId"),
		ModelID:   urlParam(r, "modelId"),
	}
	if !validate(w, r, &path) {
		return nil, "", r
	}
	e, r := h.exposure(w, r)
	return e, path.ModelID, r
}

// Models handles GET /projects/{projectId}/models
//
// @Summary List models
// @Description Returns the models evaluated on the project, sorted by name. Projects without models return an empty list.
// @Tags Models
// @Produce json
// @Param projectId path string true "Project name"
// @Success 200 {array} project.Model
// @Failure 404 {object} APIResponse "Unknown project"
// @Router /projects/{projectId}/models [get]
func (h *Handler) Models(w http.ResponseWriter, r *http.Request) {
	e, r := h.exposure(w, r)
	if e == nil {
		return
	}
	models, err := e.Models(r.Context())
	if err != nil {
		RespondProjectError(w, r, err)
		return
	}
	NewResponseWriter(w, r).OK(models)
}

// EvaluatedIDs handles GET /projects/{projectId}/models/{modelId}/evaluated-data-id-list
//
// @Summary List evaluated sample ids
// @Description Returns the ids of the samples the model has results for.
// @Tags Models
// @Produce json
// @Param projectId path string true "Project name"
// @Param modelId path string true "Model id"
// @Success 200 {array} string
// @Failure 404 {object} APIResponse "Unknown project or model"
// @Router /projects/{projectId}/models/{modelId}/evaluated-data-id-list [get]
func (h *Handler) EvaluatedIDs(w http.ResponseWriter, r *http.Request) {
	e, modelID, r := h.modelPath(w, r)
	if e == nil {
		return
	}
	ids, err := e.EvaluatedIDs(r.Context(), modelID)
	if err != nil {
		RespondProjectError(w, r, err)
		return
	}
	NewResponseWriter(w, r).OK(ids)
}

// ModelResults handles POST /projects/{projectId}/models/{modelId}/results
//
// Only the requested ids the model was evaluated on are returned.
//
// @Summary Get model results
// @Description Returns, for each requested and evaluated sample id, the model results in results-structure order.
// @Tags Models
// @Accept json
// @Produce json
// @Param projectId path string true "Project name"
// @Param modelId path string true "Model id"
// @Param ids body []string true "Sample ids"
// @Success 200 {object} map[string][]interface{}
// @Failure 400 {object} APIResponse "Malformed id list"
// @Failure 404 {object} APIResponse "Unknown project or model"
// @Failure 413 {object} APIResponse "Too many ids"
// @Router /projects/{projectId}/models/{modelId}/results [post]
func (h *Handler) ModelResults(w http.ResponseWriter, r *http.Request) {
	e, modelID, r := h.modelPath(w, r)
	if e == nil {
		return
	}
	ids, ok := decodeIDList(w, r, h.config.API.MaxResults)
	if !ok {
		return
	}
	records, err := e.Results(r.Context(), modelID, ids)
	if err != nil {
		RespondProjectError(w, r, err)
		return
	}
	NewResponseWriter(w, r).OK(records.Keyed())
}

// DeleteModel handles DELETE /projects/{projectId}/models/{modelId}
//
// @Summary Delete model
// @Tags Models
// @Param projectId path string true "Project name"
// @Param modelId path string true "Model id"
// @Success 204
// @Failure 403 {object} APIResponse "Model deletion is disabled"
// @Failure 404 {object} APIResponse "Unknown project or model"
// @Router /projects/{projectId}/models/{modelId} [delete]
func (h *Handler) DeleteModel(w http.ResponseWriter, r *http.Request) {
	if !h.config.API.CanDelete.Models {
		RespondProjectError(w, r, ErrDeletionDisabled)
		return
	}
	e, modelID, r := h.modelPath(w, r)
	if e == nil {
		return
	}
	if err := e.DeleteModel(r.Context(), modelID); err != nil {
		RespondProjectError(w, r, err)
		return
	}
	logging.Ctx(r.Context()).Info().Str("model", sanitizeLogValue(modelID)).Msg("Model deleted")
	NewResponseWriter(w, r).NoContent()
}
