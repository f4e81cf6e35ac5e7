// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package project

import (
	"context"
	"strings"
	"time"

	"github.com/tomtom215/debiai-data-provider/internal/logging"
)

// Overview is the short description of a project shown in listings.
// Nil fields are unknown.
type Overview struct {
	Name         string `json:"name"`
	NbSamples    *int   `json:"nbSamples"`
	NbModels     *int   `json:"nbModels"`
	NbSelections *int   `json:"nbSelections"`
	CreationDate *int64 `json:"creationDate"`
	UpdateDate   *int64 `json:"updateDate"`
}

// Detail is the full description of a project.
type Detail struct {
	Name            string  `json:"name"`
	Columns         Columns `json:"columns"`
	ExpectedResults Columns `json:"expectedResults"`
	NbSamples       *int    `json:"nbSamples"`
	CreationDate    *int64  `json:"creationDate"`
	UpdateDate      *int64  `json:"updateDate"`
}

// Overview summarizes the project.
func (e *Exposure) Overview(ctx context.Context) (Overview, error) {
	o := Overview{Name: e.name}

	n, known, err := e.SampleCount(ctx)
	if err != nil {
		return Overview{}, err
	}
	if known {
		o.NbSamples = &n
	}

	if _, ok := e.decl.(ModelLister); ok {
		models, err := e.Models(ctx)
		if err != nil {
			return Overview{}, err
		}
		count := len(models)
		o.NbModels = &count
	}

	if _, ok := e.decl.(SelectionLister); ok {
		selections, err := e.Selections(ctx)
		if err != nil {
			return Overview{}, err
		}
		count := len(selections)
		o.NbSelections = &count
	}

	o.CreationDate, o.UpdateDate = e.dates(ctx)
	return o, nil
}

// Detail describes the project with its normalized structures.
func (e *Exposure) Detail(ctx context.Context) (Detail, error) {
	d := Detail{Name: e.name}

	columns, err := e.Columns(ctx)
	if err != nil {
		return Detail{}, err
	}
	d.Columns = columns
	if d.Columns == nil {
		d.Columns = Columns{}
	}

	results, err := e.ResultColumns(ctx)
	if err != nil {
		return Detail{}, err
	}
	d.ExpectedResults = results
	if d.ExpectedResults == nil {
		d.ExpectedResults = Columns{}
	}

	n, known, err := e.SampleCount(ctx)
	if err != nil {
		return Detail{}, err
	}
	if known {
		d.NbSamples = &n
	}

	d.CreationDate, d.UpdateDate = e.dates(ctx)
	return d, nil
}

func (e *Exposure) dates(ctx context.Context) (created, updated *int64) {
	if d, ok := e.decl.(CreationDater); ok {
		created = e.date(ctx, "creation", d.CreationDate())
	}
	if d, ok := e.decl.(UpdateDater); ok {
		updated = e.date(ctx, "update", d.UpdateDate())
	}
	return created, updated
}

func (e *Exposure) date(ctx context.Context, kind, raw string) *int64 {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	ms, ok := ParseDate(raw)
	if !ok {
		logging.Ctx(ctx).Warn().
			Str("project", e.name).
			Str("kind", kind).
			Str("value", raw).
			Msg("Ignoring unparseable project date")
		return nil
	}
	return &ms
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses a date in RFC 3339 or a plain "2006-01-02" style layout
// and returns Unix epoch milliseconds. Dates without a zone are UTC.
func ParseDate(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UnixMilli(), true
		}
	}
	return 0, false
}
