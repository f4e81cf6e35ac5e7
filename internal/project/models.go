// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package project

import (
	"context"
	"fmt"
	"sort"
)

// Models returns the project's models sorted by name. Models sharing a name
// keep the declaration's order.
func (e *Exposure) Models(ctx context.Context) ([]Model, error) {
	d, ok := e.decl.(ModelLister)
	if !ok {
		return []Model{}, nil
	}
	var models []Model
	if err := e.call(ctx, "models", func(ctx context.Context) error {
		var err error
		models, err = d.Models(ctx)
		return err
	}); err != nil {
		return nil, fmt.Errorf("project %q: models: %w", e.name, err)
	}
	sorted := append([]Model{}, models...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return sorted, nil
}

// requireModel returns a *LookupError when the declaration lists its models
// and modelID is not among them. Declarations that cannot list models are
// trusted.
func (e *Exposure) requireModel(ctx context.Context, modelID string) error {
	if _, ok := e.decl.(ModelLister); !ok {
		return nil
	}
	models, err := e.Models(ctx)
	if err != nil {
		return err
	}
	for _, m := range models {
		if m.ID == modelID {
			return nil
		}
	}
	return NewLookupError(KindModel, modelID)
}

// EvaluatedIDs returns the samples modelID was evaluated on, or an empty
// list when the declaration cannot tell.
func (e *Exposure) EvaluatedIDs(ctx context.Context, modelID string) ([]ID, error) {
	if err := e.requireModel(ctx, modelID); err != nil {
		return nil, err
	}
	d, ok := e.decl.(ModelEvaluator)
	if !ok {
		return []ID{}, nil
	}
	var ids []ID
	if err := e.call(ctx, "evaluated_ids", func(ctx context.Context) error {
		var err error
		ids, err = d.EvaluatedIDs(ctx, modelID)
		return err
	}); err != nil {
		return nil, fmt.Errorf("project %q: model %q: evaluated ids: %w", e.name, modelID, err)
	}
	if err := CheckIDs("evaluated ids", ids); err != nil {
		return nil, fmt.Errorf("project %q: model %q: %w", e.name, modelID, err)
	}
	if ids == nil {
		ids = []ID{}
	}
	return ids, nil
}

// Results returns the results of modelID for the requested samples. Only
// samples that were requested and, when the declaration can tell, evaluated
// by the model are included. Values follow the results structure when one
// is declared, otherwise the order of the returned table's columns.
func (e *Exposure) Results(ctx context.Context, modelID string, ids []ID) (Records, error) {
	if err := e.requireModel(ctx, modelID); err != nil {
		return nil, err
	}
	d, ok := e.decl.(ModelResultsFetcher)
	if !ok || len(ids) == 0 {
		return Records{}, nil
	}

	wanted := ids
	if _, canEvaluate := e.decl.(ModelEvaluator); canEvaluate {
		evaluated, err := e.EvaluatedIDs(ctx, modelID)
		if err != nil {
			return nil, err
		}
		set := make(map[ID]struct{}, len(evaluated))
		for _, id := range evaluated {
			set[id] = struct{}{}
		}
		wanted = make([]ID, 0, len(ids))
		for _, id := range ids {
			if _, ok := set[id]; ok {
				wanted = append(wanted, id)
			}
		}
	}
	if len(wanted) == 0 {
		return Records{}, nil
	}

	columns, err := e.ResultColumns(ctx)
	if err != nil {
		return nil, err
	}

	var table *Table
	if err := e.call(ctx, "model_results", func(ctx context.Context) error {
		var err error
		table, err = d.ModelResults(ctx, modelID, wanted)
		return err
	}); err != nil {
		return nil, fmt.Errorf("project %q: model %q: results: %w", e.name, modelID, err)
	}

	if columns == nil {
		for _, name := range table.ColumnNames() {
			columns = append(columns, Column{Name: name, Category: CategoryOther})
		}
	}

	present := make([]ID, 0, len(wanted))
	for _, id := range wanted {
		if _, ok := table.Row(id); ok {
			present = append(present, id)
		}
	}
	return Assemble(columns, present, table)
}

// DeleteModel deletes modelID when the declaration supports it.
func (e *Exposure) DeleteModel(ctx context.Context, modelID string) error {
	if err := e.requireModel(ctx, modelID); err != nil {
		return err
	}
	d, ok := e.decl.(ModelDeleter)
	if !ok {
		return nil
	}
	if err := e.call(ctx, "delete_model", func(ctx context.Context) error {
		return d.DeleteModel(ctx, modelID)
	}); err != nil {
		return fmt.Errorf("project %q: model %q: delete: %w", e.name, modelID, err)
	}
	return nil
}

// Selections returns the stored selections, or an empty list.
func (e *Exposure) Selections(ctx context.Context) ([]Selection, error) {
	d, ok := e.decl.(SelectionLister)
	if !ok {
		return []Selection{}, nil
	}
	var selections []Selection
	if err := e.call(ctx, "selections", func(ctx context.Context) error {
		var err error
		selections, err = d.Selections(ctx)
		return err
	}); err != nil {
		return nil, fmt.Errorf("project %q: selections: %w", e.name, err)
	}
	if selections == nil {
		selections = []Selection{}
	}
	return selections, nil
}

// CreateSelection forwards req to the declaration when it stores selections.
func (e *Exposure) CreateSelection(ctx context.Context, req SelectionRequest) error {
	d, ok := e.decl.(SelectionCreator)
	if !ok {
		return nil
	}
	if err := CheckIDs("selection ids", req.IDs); err != nil {
		return err
	}
	if err := e.call(ctx, "create_selection", func(ctx context.Context) error {
		return d.CreateSelection(ctx, req)
	}); err != nil {
		return fmt.Errorf("project %q: create selection: %w", e.name, err)
	}
	return nil
}

// DeleteSelection forwards the deletion when the declaration stores selections.
func (e *Exposure) DeleteSelection(ctx context.Context, selectionID string) error {
	d, ok := e.decl.(SelectionDeleter)
	if !ok {
		return nil
	}
	if err := e.call(ctx, "delete_selection", func(ctx context.Context) error {
		return d.DeleteSelection(ctx, selectionID)
	}); err != nil {
		return fmt.Errorf("project %q: delete selection %q: %w", e.name, selectionID, err)
	}
	return nil
}
