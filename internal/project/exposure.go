// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package project

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/debiai-data-provider/internal/metrics"
)

// Exposure pairs a declaration with the name it is served under. It holds
// no data of its own: every query is forwarded to the declaration and the
// answer is validated and reshaped on the way out.
type Exposure struct {
	name  string
	decl  any
	guard Guard
}

// Option configures an Exposure.
type Option func(*Exposure)

// WithGuard protects every declaration call with g.
func WithGuard(g Guard) Option {
	return func(e *Exposure) { e.guard = g }
}

// NewExposure wraps decl under name.
func NewExposure(name string, decl any, opts ...Option) *Exposure {
	e := &Exposure{name: name, decl: decl}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the name the project is served under.
func (e *Exposure) Name() string { return e.name }

// Declaration returns the wrapped declaration.
func (e *Exposure) Declaration() any { return e.decl }

// Capabilities reports what the declaration implements.
func (e *Exposure) Capabilities() Capabilities { return CapabilitiesOf(e.decl) }

// call runs fn through the guard and records its outcome.
func (e *Exposure) call(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	start := time.Now()
	var err error
	if e.guard != nil {
		err = e.guard.Do(ctx, op, fn)
	} else {
		err = fn(ctx)
	}

	outcome := "success"
	switch {
	case err == nil:
	case IsNotFound(err):
		outcome = "not_found"
	default:
		outcome = "error"
	}
	metrics.RecordProjectCall(e.name, op, outcome, time.Since(start))
	return err
}

// Columns returns the normalized sample structure, or nil when unknown.
func (e *Exposure) Columns(ctx context.Context) (Columns, error) {
	d, ok := e.decl.(StructureDescriber)
	if !ok {
		return nil, nil
	}
	var raw any
	if err := e.call(ctx, "structure", func(ctx context.Context) error {
		var err error
		raw, err = d.Structure(ctx)
		return err
	}); err != nil {
		return nil, fmt.Errorf("project %q: structure: %w", e.name, err)
	}
	cols, err := Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("project %q: %w", e.name, err)
	}
	return cols, nil
}

// ResultColumns returns the normalized results structure, or nil when unknown.
func (e *Exposure) ResultColumns(ctx context.Context) (Columns, error) {
	d, ok := e.decl.(ResultsStructureDescriber)
	if !ok {
		return nil, nil
	}
	var raw any
	if err := e.call(ctx, "results_structure", func(ctx context.Context) error {
		var err error
		raw, err = d.ResultsStructure(ctx)
		return err
	}); err != nil {
		return nil, fmt.Errorf("project %q: results structure: %w", e.name, err)
	}
	cols, err := Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("project %q: results structure: %w", e.name, err)
	}
	return cols, nil
}

// Validate checks everything that can be checked without a request: the
// structures and the sample identifiers. Registration calls it so that a
// malformed project fails before it is served.
func (e *Exposure) Validate(ctx context.Context) error {
	if _, err := e.Columns(ctx); err != nil {
		return err
	}
	if _, err := e.ResultColumns(ctx); err != nil {
		return err
	}
	if _, _, err := e.SampleCount(ctx); err != nil {
		return err
	}
	if _, err := e.SampleIDs(ctx); err != nil {
		return err
	}
	return nil
}

// Delete deletes the underlying project when the declaration supports it.
func (e *Exposure) Delete(ctx context.Context) error {
	d, ok := e.decl.(ProjectDeleter)
	if !ok {
		return nil
	}
	if err := e.call(ctx, "delete_project", d.DeleteProject); err != nil {
		return fmt.Errorf("project %q: delete: %w", e.name, err)
	}
	return nil
}
