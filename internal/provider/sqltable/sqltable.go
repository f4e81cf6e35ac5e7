// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

// Package sqltable exposes a SQL table or view as a project.
//
// Nothing is cached: every question is answered by a query, so the
// project follows the table as it changes. Column structure comes from the
// configuration when given, otherwise from the driver's column types.
package sqltable

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/tomtom215/debiai-data-provider/internal/config"
	"github.com/tomtom215/debiai-data-provider/internal/database"
	"github.com/tomtom215/debiai-data-provider/internal/database/query"
	"github.com/tomtom215/debiai-data-provider/internal/logging"
	"github.com/tomtom215/debiai-data-provider/internal/project"
)

// maxParams bounds the number of ids bound in one IN list.
var maxParams = 1000

// Project is a declaration backed by a SQL table.
type Project struct {
	cfg config.SQLProjectConfig
	db  *database.DB
}

// Open connects to the configured database, runs the setup statements and
// checks that the table and its id column exist.
func Open(ctx context.Context, cfg config.SQLProjectConfig) (*Project, error) {
	db, err := database.Open(ctx, cfg.Driver, cfg.DSN, cfg.MaxOpenConns)
	if err != nil {
		return nil, project.NewConfigError("sql:"+cfg.Name, "%v", err)
	}
	for i, stmt := range cfg.Setup {
		if err := db.Exec(ctx, "setup", stmt); err != nil {
			_ = db.Close()
			return nil, project.NewConfigError("sql:"+cfg.Name, "setup statement %d: %v", i+1, err)
		}
	}
	p, err := New(ctx, db, cfg)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return p, nil
}

// New exposes a table of an already open database.
func New(ctx context.Context, db *database.DB, cfg config.SQLProjectConfig) (*Project, error) {
	if cfg.ResultsIDColumn == "" {
		cfg.ResultsIDColumn = cfg.IDColumn
	}
	p := &Project{cfg: cfg, db: db}

	if _, err := p.describe(ctx, cfg.Table, cfg.IDColumn); err != nil {
		return nil, project.NewConfigError("sql:"+cfg.Name, "%v", err)
	}
	if cfg.ResultsTable != "" {
		if _, err := p.describe(ctx, cfg.ResultsTable, cfg.ResultsIDColumn, cfg.ResultsModelColumn); err != nil {
			return nil, project.NewConfigError("sql:"+cfg.Name, "%v", err)
		}
	}

	logging.Info().
		Str("project", cfg.Name).
		Str("driver", db.Driver()).
		Str("table", cfg.Table).
		Msg("Opened SQL project")
	return p, nil
}

// Close closes the database pool.
func (p *Project) Close() error { return p.db.Close() }

// describe returns the columns of table other than the excluded ones, and
// fails when an excluded column is missing.
func (p *Project) describe(ctx context.Context, table string, excluded ...string) ([]database.ColumnInfo, error) {
	cols, err := p.db.Describe(ctx, "SELECT * FROM "+query.QuoteIdent(table)+" LIMIT 0")
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", table, err)
	}
	found := make(map[string]bool, len(excluded))
	out := make([]database.ColumnInfo, 0, len(cols))
	for _, c := range cols {
		skip := false
		for _, ex := range excluded {
			if c.Name == ex {
				found[ex] = true
				skip = true
			}
		}
		if !skip {
			out = append(out, c)
		}
	}
	for _, ex := range excluded {
		if !found[ex] {
			names := make([]string, len(cols))
			for i, c := range cols {
				names[i] = c.Name
			}
			return nil, fmt.Errorf("table %s has no column %q, available columns: %s", table, ex, strings.Join(names, ", "))
		}
	}
	return out, nil
}

// typeOf maps a database type name onto a column type.
func typeOf(dbType string) project.ColumnType {
	t := strings.ToUpper(dbType)
	switch {
	case strings.HasSuffix(t, "[]") || strings.HasPrefix(t, "_") || strings.HasPrefix(t, "LIST"):
		return project.TypeList
	case t == "VARCHAR" || t == "TEXT" || t == "BPCHAR" || strings.HasPrefix(t, "CHAR") || t == "UUID":
		return project.TypeText
	case t == "BOOLEAN" || t == "BOOL":
		return project.TypeBool
	case strings.HasPrefix(t, "STRUCT") || strings.HasPrefix(t, "MAP") || t == "JSON" || t == "JSONB":
		return project.TypeDict
	}
	switch t {
	case "TINYINT", "SMALLINT", "INTEGER", "BIGINT", "HUGEINT",
		"UTINYINT", "USMALLINT", "UINTEGER", "UBIGINT",
		"INT2", "INT4", "INT8", "FLOAT", "FLOAT4", "FLOAT8",
		"REAL", "DOUBLE", "DECIMAL", "NUMERIC":
		return project.TypeNumber
	}
	if strings.HasPrefix(t, "DECIMAL") || strings.HasPrefix(t, "NUMERIC") {
		return project.TypeNumber
	}
	return project.TypeAuto
}

// structureOf declares cols with an inferred type. An empty category is
// left out of the attributes.
func structureOf(cols []database.ColumnInfo, category project.Category) project.Structure {
	s := make(project.Structure, len(cols))
	for i, c := range cols {
		attrs := project.Attrs{}
		if category != "" {
			attrs["category"] = string(category)
		}
		if t := typeOf(c.DatabaseType); t != project.TypeAuto {
			attrs["type"] = string(t)
		}
		s[i] = project.StructureEntry{Name: c.Name, Attrs: attrs}
	}
	return s
}

// sampleColumns returns the exposed sample columns.
func (p *Project) sampleColumns(ctx context.Context) ([]string, error) {
	if len(p.cfg.Structure) > 0 {
		cols, err := project.Normalize(p.cfg.Structure)
		if err != nil {
			return nil, err
		}
		return cols.Names(), nil
	}
	cols, err := p.describe(ctx, p.cfg.Table, p.cfg.IDColumn)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names, nil
}

// Name implements project.Namer.
func (p *Project) Name() string { return p.cfg.Name }

// CreationDate implements project.CreationDater.
func (p *Project) CreationDate() string { return p.cfg.CreationDate }

// Structure implements project.StructureDescriber.
func (p *Project) Structure(ctx context.Context) (any, error) {
	if len(p.cfg.Structure) > 0 {
		return p.cfg.Structure, nil
	}
	cols, err := p.describe(ctx, p.cfg.Table, p.cfg.IDColumn)
	if err != nil {
		return nil, err
	}
	return structureOf(cols, project.CategoryContext), nil
}

// SampleCount implements project.SampleCounter.
func (p *Project) SampleCount(ctx context.Context) (int, error) {
	n, err := p.db.QueryInt(ctx, "count", "SELECT COUNT(*) FROM "+query.QuoteIdent(p.cfg.Table))
	return int(n), err
}

// SampleIDs implements project.SampleLister. Ids are ordered by value.
func (p *Project) SampleIDs(ctx context.Context) ([]project.ID, error) {
	id := query.QuoteIdent(p.cfg.IDColumn)
	q := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", id, query.QuoteIdent(p.cfg.Table), id)
	ids, err := database.QueryAndScan(ctx, p.db, "sample_ids", q, nil, scanID)
	if ids == nil && err == nil {
		ids = []project.ID{}
	}
	return ids, err
}

func scanID(rows *sql.Rows) (project.ID, error) {
	values, err := database.ScanRow(rows, 1)
	if err != nil {
		return project.ID{}, err
	}
	return toID(values[0])
}

func toID(v any) (project.ID, error) {
	switch x := v.(type) {
	case string:
		return project.StringID(x), nil
	case int64:
		return project.IntID(x), nil
	default:
		return project.ID{}, fmt.Errorf("sample id %v has type %T, expected a string or integer", v, v)
	}
}

func idArgs(ids []project.ID) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id.Value()
	}
	return args
}

// fetch runs "SELECT id, columns FROM table WHERE <filter> AND id IN (...)"
// in chunks and collects the rows into a table.
func (p *Project) fetch(ctx context.Context, op, table, idColumn string, columns []string, ids []project.ID, filter func(*query.WhereBuilder)) (*project.Table, error) {
	selectList := make([]string, 0, len(columns)+1)
	selectList = append(selectList, query.QuoteIdent(idColumn))
	for _, c := range columns {
		selectList = append(selectList, query.QuoteIdent(c))
	}

	var index []project.ID
	values := make([][]any, len(columns))
	for _, chunk := range query.Chunk(ids, maxParams) {
		wb := query.NewWhereBuilder()
		if filter != nil {
			filter(wb)
		}
		wb.AddIn(idColumn, idArgs(chunk))
		where, args := wb.BuildWithPrefix()
		q := fmt.Sprintf("SELECT %s FROM %s %s", strings.Join(selectList, ", "), query.QuoteIdent(table), where)

		rows, err := database.QueryAndScan(ctx, p.db, op, q, args, func(r *sql.Rows) ([]any, error) {
			return database.ScanRow(r, len(selectList))
		})
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			id, err := toID(row[0])
			if err != nil {
				return nil, err
			}
			index = append(index, id)
			for i := range columns {
				values[i] = append(values[i], row[i+1])
			}
		}
	}

	t := project.NewTable(index)
	for i, c := range columns {
		if values[i] == nil {
			values[i] = []any{}
		}
		if err := t.SetColumn(c, values[i]); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Data implements project.DataFetcher.
func (p *Project) Data(ctx context.Context, ids []project.ID) (*project.Table, error) {
	columns, err := p.sampleColumns(ctx)
	if err != nil {
		return nil, err
	}
	return p.fetch(ctx, "data", p.cfg.Table, p.cfg.IDColumn, columns, ids, nil)
}
