// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package project

import "context"

// A declaration is any value that describes a data source. What it can
// answer is expressed by the optional interfaces below: a declaration that
// does not implement one is "not implemented" for that question, which is a
// valid state and never an error. The exposure layer substitutes a
// documented default in that case.

// StructureDescriber declares the columns of the project's samples.
// Returning a nil Structure means the structure is unknown.
type StructureDescriber interface {
	Structure(ctx context.Context) (any, error)
}

// ResultsStructureDescriber declares the columns of model results.
type ResultsStructureDescriber interface {
	ResultsStructure(ctx context.Context) (any, error)
}

// SampleCounter reports the number of samples. A negative count means the
// count is unknown.
type SampleCounter interface {
	SampleCount(ctx context.Context) (int, error)
}

// SampleLister returns every sample identifier, in a stable order.
type SampleLister interface {
	SampleIDs(ctx context.Context) ([]ID, error)
}

// DataFetcher returns the values of the requested samples.
type DataFetcher interface {
	Data(ctx context.Context, ids []ID) (*Table, error)
}

// CreationDater returns the creation date, e.g. "2024-01-01" or RFC 3339.
type CreationDater interface {
	CreationDate() string
}

// UpdateDater returns the date of the last update.
type UpdateDater interface {
	UpdateDate() string
}

// Namer gives the project an explicit name.
type Namer interface {
	Name() string
}

// Model describes a model whose results are available.
type Model struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ResultCount int    `json:"nb_results"`
}

// ModelLister lists the models of a project.
type ModelLister interface {
	Models(ctx context.Context) ([]Model, error)
}

// ModelEvaluator returns the samples a model was evaluated on.
type ModelEvaluator interface {
	EvaluatedIDs(ctx context.Context, modelID string) ([]ID, error)
}

// ModelResultsFetcher returns the results of a model for the given samples.
type ModelResultsFetcher interface {
	ModelResults(ctx context.Context, modelID string, ids []ID) (*Table, error)
}

// ProjectDeleter deletes the underlying project.
type ProjectDeleter interface {
	DeleteProject(ctx context.Context) error
}

// ModelDeleter deletes a model and its results.
type ModelDeleter interface {
	DeleteModel(ctx context.Context, modelID string) error
}

// Selection is a named subset of samples.
type Selection struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	NbSamples int    `json:"nbSamples"`
}

// SelectionRequest asks a declaration to store a selection.
type SelectionRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	IDs  []ID   `json:"idList" validate:"required"`
}

// SelectionLister lists the stored selections.
type SelectionLister interface {
	Selections(ctx context.Context) ([]Selection, error)
}

// SelectionCreator stores a new selection.
type SelectionCreator interface {
	CreateSelection(ctx context.Context, req SelectionRequest) error
}

// SelectionDeleter deletes a stored selection.
type SelectionDeleter interface {
	DeleteSelection(ctx context.Context, selectionID string) error
}

// Guard protects calls into a declaration, e.g. with a circuit breaker.
// op names the declaration operation being called.
type Guard interface {
	Do(ctx context.Context, op string, fn func(ctx context.Context) error) error
}

// Capabilities reports which questions a declaration can answer.
type Capabilities struct {
	Structure        bool `json:"structure"`
	ResultsStructure bool `json:"resultsStructure"`
	SampleCount      bool `json:"sampleCount"`
	SampleIDs        bool `json:"sampleIds"`
	Data             bool `json:"data"`
	Models           bool `json:"models"`
	EvaluatedIDs     bool `json:"evaluatedIds"`
	ModelResults     bool `json:"modelResults"`
	DeleteProject    bool `json:"deleteProject"`
	DeleteModel      bool `json:"deleteModel"`
	Selections       bool `json:"selections"`
	CreateSelection  bool `json:"createSelection"`
	DeleteSelection  bool `json:"deleteSelection"`
	CreationDate     bool `json:"creationDate"`
	UpdateDate       bool `json:"updateDate"`
}

// CapabilitiesOf inspects decl.
func CapabilitiesOf(decl any) Capabilities {
	_, structure := decl.(StructureDescriber)
	_, results := decl.(ResultsStructureDescriber)
	_, count := decl.(SampleCounter)
	_, ids := decl.(SampleLister)
	_, data := decl.(DataFetcher)
	_, models := decl.(ModelLister)
	_, evaluated := decl.(ModelEvaluator)
	_, modelResults := decl.(ModelResultsFetcher)
	_, delProject := decl.(ProjectDeleter)
	_, delModel := decl.(ModelDeleter)
	_, selections := decl.(SelectionLister)
	_, createSel := decl.(SelectionCreator)
	_, deleteSel := decl.(SelectionDeleter)
	_, created := decl.(CreationDater)
	_, updated := decl.(UpdateDater)
	return Capabilities{
		Structure:        structure,
		ResultsStructure: results,
		SampleCount:      count,
		SampleIDs:        ids,
		Data:             data,
		Models:           models,
		EvaluatedIDs:     evaluated,
		ModelResults:     modelResults,
		DeleteProject:    delProject,
		DeleteModel:      delModel,
		Selections:       selections,
		CreateSelection:  createSel,
		DeleteSelection:  deleteSel,
		CreationDate:     created,
		UpdateDate:       updated,
	}
}
