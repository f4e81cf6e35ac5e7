// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

// Package memory provides project declarations over in-memory tables.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/tomtom215/debiai-data-provider/internal/project"
)

// Project is a declaration whose samples and results are held in memory.
// It answers every question; deletions and selections only change the
// in-memory state.
type Project struct {
	name             string
	created          string
	updated          string
	structure        project.Structure
	resultsStructure project.Structure
	samples          *project.Table

	mu         sync.RWMutex
	modelOrder []string
	results    map[string]*project.Table
	selections []storedSelection
	deleted    bool
}

type storedSelection struct {
	project.Selection
	ids []project.ID
}

// Option configures a Project.
type Option func(*Project) error

// WithStructure declares the sample columns.
func WithStructure(s project.Structure) Option {
	return func(p *Project) error {
		p.structure = s
		return nil
	}
}

// WithDates sets the creation and update dates. Empty values are left unset.
func WithDates(created, updated string) Option {
	return func(p *Project) error {
		p.created = created
		p.updated = updated
		return nil
	}
}

// WithResults adds model results. results holds one row per (sample, model)
// pair, indexed by sample id; modelColumn names the column holding the
// model id and is not exposed as a result column.
func WithResults(structure project.Structure, results *project.Table, modelColumn string) Option {
	return func(p *Project) error {
		if !results.HasColumn(modelColumn) {
			return fmt.Errorf("results have no model column %q", modelColumn)
		}
		p.resultsStructure = structure

		rowsByModel := make(map[string][]int)
		for row := 0; row < results.Len(); row++ {
			v, _ := results.Value(row, modelColumn)
			model := fmt.Sprint(v)
			if _, seen := rowsByModel[model]; !seen {
				p.modelOrder = append(p.modelOrder, model)
			}
			rowsByModel[model] = append(rowsByModel[model], row)
		}

		index := results.Index()
		for model, rows := range rowsByModel {
			ids := make([]project.ID, len(rows))
			for i, row := range rows {
				ids[i] = index[row]
			}
			t := project.NewTable(ids)
			for _, name := range results.ColumnNames() {
				if name == modelColumn {
					continue
				}
				values := make([]any, len(rows))
				for i, row := range rows {
					values[i], _ = results.Value(row, name)
				}
				if err := t.SetColumn(name, values); err != nil {
					return err
				}
			}
			p.results[model] = t
		}
		return nil
	}
}

// New builds a project over samples, whose index holds the sample ids.
func New(name string, samples *project.Table, opts ...Option) (*Project, error) {
	p := &Project{
		name:    name,
		samples: samples,
		results: make(map[string]*project.Table),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, fmt.Errorf("memory project %q: %w", name, err)
		}
	}
	return p, nil
}

// Name implements project.Namer.
func (p *Project) Name() string { return p.name }

// CreationDate implements project.CreationDater.
func (p *Project) CreationDate() string { return p.created }

// UpdateDate implements project.UpdateDater.
func (p *Project) UpdateDate() string { return p.updated }

// Structure implements project.StructureDescriber. A project built without
// a structure reports it as unknown.
func (p *Project) Structure(context.Context) (any, error) {
	if p.structure == nil {
		return nil, nil
	}
	return p.structure, nil
}

// ResultsStructure implements project.ResultsStructureDescriber.
func (p *Project) ResultsStructure(context.Context) (any, error) {
	if p.resultsStructure == nil {
		return nil, nil
	}
	return p.resultsStructure, nil
}

// SampleCount implements project.SampleCounter.
func (p *Project) SampleCount(context.Context) (int, error) {
	return p.samples.Len(), nil
}

// SampleIDs implements project.SampleLister.
func (p *Project) SampleIDs(context.Context) ([]project.ID, error) {
	return p.samples.Index(), nil
}

// Data implements project.DataFetcher. Unknown ids are left out.
func (p *Project) Data(_ context.Context, ids []project.ID) (*project.Table, error) {
	return p.samples.Select(ids), nil
}

// Models implements project.ModelLister.
func (p *Project) Models(context.Context) ([]project.Model, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	models := make([]project.Model, 0, len(p.modelOrder))
	for _, id := range p.modelOrder {
		models = append(models, project.Model{ID: id, Name: id, ResultCount: p.results[id].Len()})
	}
	return models, nil
}

func (p *Project) model(id string) (*project.Table, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	t, ok := p.results[id]
	if !ok {
		return nil, project.NewLookupError(project.KindModel, id)
	}
	return t, nil
}

// EvaluatedIDs implements project.ModelEvaluator.
func (p *Project) EvaluatedIDs(_ context.Context, modelID string) ([]project.ID, error) {
	t, err := p.model(modelID)
	if err != nil {
		return nil, err
	}
	return t.Index(), nil
}

// ModelResults implements project.ModelResultsFetcher.
func (p *Project) ModelResults(_ context.Context, modelID string, ids []project.ID) (*project.Table, error) {
	t, err := p.model(modelID)
	if err != nil {
		return nil, err
	}
	return t.Select(ids), nil
}

// DeleteModel implements project.ModelDeleter.
func (p *Project) DeleteModel(_ context.Context, modelID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.results[modelID]; !ok {
		return project.NewLookupError(project.KindModel, modelID)
	}
	delete(p.results, modelID)
	for i, id := range p.modelOrder {
		if id == modelID {
			p.modelOrder = append(p.modelOrder[:i], p.modelOrder[i+1:]...)
			break
		}
	}
	return nil
}

// DeleteProject implements project.ProjectDeleter.
func (p *Project) DeleteProject(context.Context) error {
	p.mu.Lock()
	p.deleted = true
	p.mu.Unlock()
	return nil
}

// Deleted reports whether DeleteProject was called.
func (p *Project) Deleted() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.deleted
}

// Selections implements project.SelectionLister.
func (p *Project) Selections(context.Context) ([]project.Selection, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]project.Selection, len(p.selections))
	for i, s := range p.selections {
		out[i] = s.Selection
	}
	return out, nil
}

// CreateSelection implements project.SelectionCreator. Every id must be a
// sample of the project.
func (p *Project) CreateSelection(_ context.Context, req project.SelectionRequest) error {
	for _, id := range req.IDs {
		if _, ok := p.samples.Row(id); !ok {
			return project.NewLookupError(project.KindSample, id.String())
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selections = append(p.selections, storedSelection{
		Selection: project.Selection{ID: uuid.NewString(), Name: req.Name, NbSamples: len(req.IDs)},
		ids:       append([]project.ID(nil), req.IDs...),
	})
	return nil
}

// DeleteSelection implements project.SelectionDeleter.
func (p *Project) DeleteSelection(_ context.Context, selectionID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, s := range p.selections {
		if s.ID == selectionID {
			p.selections = append(p.selections[:i], p.selections[i+1:]...)
			return nil
		}
	}
	return project.NewLookupError(project.KindSelection, selectionID)
}
