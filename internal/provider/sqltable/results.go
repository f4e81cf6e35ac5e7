// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package sqltable

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tomtom215/debiai-data-provider/internal/database"
	"github.com/tomtom215/debiai-data-provider/internal/database/query"
	"github.com/tomtom215/debiai-data-provider/internal/project"
)

// Results are read from a second table holding one row per evaluated
// (sample, model) pair. Every method reports a LookupError for an unknown
// model and an empty answer when no results table is configured.

func (p *Project) hasResults() bool { return p.cfg.ResultsTable != "" }

func (p *Project) resultColumns(ctx context.Context) ([]database.ColumnInfo, error) {
	return p.describe(ctx, p.cfg.ResultsTable, p.cfg.ResultsIDColumn, p.cfg.ResultsModelColumn)
}

// ResultsStructure implements project.ResultsStructureDescriber.
func (p *Project) ResultsStructure(ctx context.Context) (any, error) {
	if !p.hasResults() {
		return nil, nil
	}
	cols, err := p.resultColumns(ctx)
	if err != nil {
		return nil, err
	}
	return structureOf(cols, ""), nil
}

// Models implements project.ModelLister.
func (p *Project) Models(ctx context.Context) ([]project.Model, error) {
	if !p.hasResults() {
		return []project.Model{}, nil
	}
	model := query.QuoteIdent(p.cfg.ResultsModelColumn)
	q := fmt.Sprintf("SELECT CAST(%s AS VARCHAR), COUNT(*) FROM %s GROUP BY %s ORDER BY 1",
		model, query.QuoteIdent(p.cfg.ResultsTable), model)
	return database.QueryAndScan(ctx, p.db, "models", q, nil, func(r *sql.Rows) (project.Model, error) {
		var m project.Model
		var n int64
		if err := r.Scan(&m.ID, &n); err != nil {
			return m, err
		}
		m.Name = m.ID
		m.ResultCount = int(n)
		return m, nil
	})
}

func (p *Project) requireModel(ctx context.Context, modelID string) error {
	if !p.hasResults() {
		return project.NewLookupError(project.KindModel, modelID)
	}
	wb := query.NewWhereBuilder().AddEquals(p.cfg.ResultsModelColumn, modelID)
	where, args := wb.BuildWithPrefix()
	n, err := p.db.QueryInt(ctx, "model_exists",
		fmt.Sprintf("SELECT COUNT(*) FROM %s %s", query.QuoteIdent(p.cfg.ResultsTable), where), args...)
	if err != nil {
		return err
	}
	if n == 0 {
		return project.NewLookupError(project.KindModel, modelID)
	}
	return nil
}

// EvaluatedIDs implements project.ModelEvaluator.
func (p *Project) EvaluatedIDs(ctx context.Context, modelID string) ([]project.ID, error) {
	if err := p.requireModel(ctx, modelID); err != nil {
		return nil, err
	}
	id := query.QuoteIdent(p.cfg.ResultsIDColumn)
	where, args := query.NewWhereBuilder().AddEquals(p.cfg.ResultsModelColumn, modelID).BuildWithPrefix()
	q := fmt.Sprintf("SELECT %s FROM %s %s ORDER BY %s", id, query.QuoteIdent(p.cfg.ResultsTable), where, id)
	return database.QueryAndScan(ctx, p.db, "evaluated_ids", q, args, scanID)
}

// ModelResults implements project.ModelResultsFetcher.
func (p *Project) ModelResults(ctx context.Context, modelID string, ids []project.ID) (*project.Table, error) {
	if err := p.requireModel(ctx, modelID); err != nil {
		return nil, err
	}
	cols, err := p.resultColumns(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return p.fetch(ctx, "model_results", p.cfg.ResultsTable, p.cfg.ResultsIDColumn, names, ids, func(wb *query.WhereBuilder) {
		wb.AddEquals(p.cfg.ResultsModelColumn, modelID)
	})
}

// DeleteModel implements project.ModelDeleter by deleting the model's rows.
func (p *Project) DeleteModel(ctx context.Context, modelID string) error {
	if err := p.requireModel(ctx, modelID); err != nil {
		return err
	}
	where, args := query.NewWhereBuilder().AddEquals(p.cfg.ResultsModelColumn, modelID).BuildWithPrefix()
	return p.db.Exec(ctx, "delete_model", fmt.Sprintf("DELETE FROM %s %s", query.QuoteIdent(p.cfg.ResultsTable), where), args...)
}
