// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

// Package parquet exposes Parquet files as projects.
//
// The samples file is read once at load time. Each column other than the
// sample id column becomes a context column whose type is inferred from
// the Arrow schema. An optional results directory holds one Parquet file
// per model, named after the model (model_1.parquet, model_1.v2.parquet
// both define model_1), each with the same sample id column.
package parquet

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/tomtom215/debiai-data-provider/internal/config"
	"github.com/tomtom215/debiai-data-provider/internal/logging"
	"github.com/tomtom215/debiai-data-provider/internal/project"
)

// Project is a declaration backed by Parquet files.
type Project struct {
	name             string
	created          string
	structure        project.Structure
	samples          *project.Table
	resultsStructure project.Structure
	models           []string
	results          map[string]*project.Table
}

// Load reads the project described by cfg.
func Load(ctx context.Context, cfg config.ParquetProjectConfig) (*Project, error) {
	source := "parquet:" + cfg.Path

	info, err := os.Stat(cfg.Path)
	if err != nil {
		return nil, project.NewConfigError(source, "cannot read file: %v", err)
	}

	name := cfg.Name
	if name == "" {
		base := filepath.Base(cfg.Path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	table, err := readTable(ctx, cfg.Path)
	if err != nil {
		return nil, project.NewConfigError(source, "%v", err)
	}
	defer table.Release()

	samples, structure, err := buildSamples(table, cfg.SampleIDColumn, cfg.Columns)
	if err != nil {
		return nil, project.NewConfigError(source, "%v", err)
	}

	p := &Project{
		name:      name,
		created:   info.ModTime().UTC().Format(time.RFC3339),
		structure: structure,
		samples:   samples,
		results:   make(map[string]*project.Table),
	}

	if cfg.ResultsDir != "" {
		if err := p.loadResults(ctx, cfg); err != nil {
			return nil, err
		}
	}

	logging.Info().
		Str("project", name).
		Str("path", cfg.Path).
		Int("samples", samples.Len()).
		Int("models", len(p.models)).
		Msg("Loaded parquet project")
	return p, nil
}

// columnIndex finds name in schema and lists the available columns otherwise.
func columnIndex(schema *arrow.Schema, name, what string) (int, error) {
	indices := schema.FieldIndices(name)
	if len(indices) == 0 {
		return 0, fmt.Errorf("%s %q not found, available columns: %s", what, name, strings.Join(fieldNames(schema), ", "))
	}
	return indices[0], nil
}

// buildSamples converts table into a sample table and its structure.
func buildSamples(table arrow.Table, idColumn string, only []string) (*project.Table, project.Structure, error) {
	schema := table.Schema()
	idIdx, err := columnIndex(schema, idColumn, "sample id column")
	if err != nil {
		return nil, nil, err
	}
	ids, err := readIDs(table, idIdx)
	if err != nil {
		return nil, nil, err
	}
	if err := project.CheckIDs("sample id column "+idColumn, ids); err != nil {
		return nil, nil, err
	}

	selected, err := selectColumns(schema, idIdx, only)
	if err != nil {
		return nil, nil, err
	}

	samples := project.NewTable(ids)
	structure := make(project.Structure, 0, len(selected))
	for _, i := range selected {
		field := schema.Field(i)
		if err := samples.SetColumn(field.Name, columnValues(table, i)); err != nil {
			return nil, nil, err
		}
		attrs := project.Attrs{"category": string(project.CategoryContext)}
		if t := inferType(field.Type); t != project.TypeAuto {
			attrs["type"] = string(t)
		}
		structure = append(structure, project.StructureEntry{Name: field.Name, Attrs: attrs})
	}
	return samples, structure, nil
}

// selectColumns returns the indices of the exposed columns: every column
// but the id column, or the listed ones in the listed order.
func selectColumns(schema *arrow.Schema, idIdx int, only []string) ([]int, error) {
	if len(only) == 0 {
		indices := make([]int, 0, schema.NumFields()-1)
		for i := 0; i < schema.NumFields(); i++ {
			if i != idIdx {
				indices = append(indices, i)
			}
		}
		return indices, nil
	}
	indices := make([]int, 0, len(only))
	for _, name := range only {
		i, err := columnIndex(schema, name, "column")
		if err != nil {
			return nil, err
		}
		if i == idIdx {
			continue
		}
		indices = append(indices, i)
	}
	return indices, nil
}

// modelName returns the file name up to its first dot.
func modelName(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i > 0 {
		return base[:i]
	}
	return base
}

func (p *Project) loadResults(ctx context.Context, cfg config.ParquetProjectConfig) error {
	source := "parquet:" + cfg.ResultsDir

	files, err := filepath.Glob(filepath.Join(cfg.ResultsDir, "*.parquet"))
	if err != nil {
		return project.NewConfigError(source, "%v", err)
	}
	if _, err := os.Stat(cfg.ResultsDir); err != nil {
		return project.NewConfigError(source, "cannot read results directory: %v", err)
	}
	sort.Strings(files)

	seen := make(map[string]bool)
	for _, path := range files {
		model := modelName(path)
		if _, dup := p.results[model]; dup {
			return project.NewConfigError(source, "model %q is defined by more than one file", model)
		}

		table, err := readTable(ctx, path)
		if err != nil {
			return project.NewConfigError(source, "%v", err)
		}
		results, structure, err := buildSamples(table, cfg.SampleIDColumn, cfg.ResultsColumns)
		table.Release()
		if err != nil {
			return project.NewConfigError(source, "%s: %v", filepath.Base(path), err)
		}

		// Result columns are the union over all models, in first-seen order.
		for _, e := range structure {
			if !seen[e.Name] {
				seen[e.Name] = true
				p.resultsStructure = append(p.resultsStructure, project.StructureEntry{Name: e.Name, Attrs: project.Attrs{}})
			}
		}
		p.models = append(p.models, model)
		p.results[model] = results
	}
	slices.Sort(p.models)
	return nil
}

// Name implements project.Namer.
func (p *Project) Name() string { return p.name }

// CreationDate implements project.CreationDater.
func (p *Project) CreationDate() string { return p.created }

// Structure implements project.StructureDescriber.
func (p *Project) Structure(context.Context) (any, error) { return p.structure, nil }

// ResultsStructure implements project.ResultsStructureDescriber.
func (p *Project) ResultsStructure(context.Context) (any, error) {
	if p.resultsStructure == nil {
		return nil, nil
	}
	return p.resultsStructure, nil
}

// SampleCount implements project.SampleCounter.
func (p *Project) SampleCount(context.Context) (int, error) { return p.samples.Len(), nil }

// SampleIDs implements project.SampleLister.
func (p *Project) SampleIDs(context.Context) ([]project.ID, error) { return p.samples.Index(), nil }

// Data implements project.DataFetcher.
func (p *Project) Data(_ context.Context, ids []project.ID) (*project.Table, error) {
	return p.samples.Select(ids), nil
}

// Models implements project.ModelLister.
func (p *Project) Models(context.Context) ([]project.Model, error) {
	models := make([]project.Model, len(p.models))
	for i, m := range p.models {
		models[i] = project.Model{ID: m, Name: m, ResultCount: p.results[m].Len()}
	}
	return models, nil
}

func (p *Project) model(id string) (*project.Table, error) {
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
