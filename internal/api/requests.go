// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package api

// Request structs validated with go-playground/validator tags before the
// exposure layer is called. Path parameters are validated too: chi accepts
// any segment, the DebiAI client never sends an empty one.

// ProjectPath identifies a project in the URL.
type ProjectPath struct {
	ProjectID string `json:"projectId" validate:"required,min=1,max=255"`
}

// ModelPath identifies a model of a project in the URL.
type ModelPath struct {
	ProjectID string `json:"projectId" validate:"required,min=1,max=255"`
	ModelID   string `json:"modelId" validate:"required,min=1,max=255"`
}

// SelectionPath identifies a selection of a project in the URL.
type SelectionPath struct {
	ProjectID   string `json:"projectId" validate:"required,min=1,max=255"`
	SelectionID string `json:"selectionId" validate:"required,min=1,max=255"`
}

// DataIDListRequest holds the query parameters of GET /data-id-list.
//
// From and To are inclusive positions in the project's sample order. The
// analysis parameters are sent by DebiAI when it pages through a project;
// they are only logged.
type DataIDListRequest struct {
	From          *int   `json:"from" validate:"omitempty,min=0"`
	To            *int   `json:"to" validate:"omitempty,min=0"`
	AnalysisID    string `json:"analysisId" validate:"omitempty,max=255"`
	AnalysisStart *bool  `json:"analysisStart"`
	AnalysisEnd   *bool  `json:"analysisEnd"`
}
