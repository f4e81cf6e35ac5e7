// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package project

import (
	"context"
	"fmt"
)

// SampleCount returns the number of samples. known is false when the
// declaration cannot count its samples or reports a negative count.
func (e *Exposure) SampleCount(ctx context.Context) (n int, known bool, err error) {
	d, ok := e.decl.(SampleCounter)
	if !ok {
		return 0, false, nil
	}
	if err := e.call(ctx, "sample_count", func(ctx context.Context) error {
		var err error
		n, err = d.SampleCount(ctx)
		return err
	}); err != nil {
		return 0, false, fmt.Errorf("project %q: sample count: %w", e.name, err)
	}
	if n < 0 {
		return 0, false, nil
	}
	return n, true, nil
}

// SampleIDs returns every sample identifier in the declaration's order, or
// an empty list when the declaration cannot list them. Invalid or repeated
// identifiers are a *ValidationError.
func (e *Exposure) SampleIDs(ctx context.Context) ([]ID, error) {
	d, ok := e.decl.(SampleLister)
	if !ok {
		return []ID{}, nil
	}
	var ids []ID
	if err := e.call(ctx, "sample_ids", func(ctx context.Context) error {
		var err error
		ids, err = d.SampleIDs(ctx)
		return err
	}); err != nil {
		return nil, fmt.Errorf("project %q: sample ids: %w", e.name, err)
	}
	if err := CheckIDs("sample ids", ids); err != nil {
		return nil, fmt.Errorf("project %q: %w", e.name, err)
	}
	if ids == nil {
		ids = []ID{}
	}
	return ids, nil
}

// CheckIDs rejects invalid identifiers and identifiers that collide once
// rendered as JSON object keys.
func CheckIDs(op string, ids []ID) error {
	seen := make(map[string]struct{}, len(ids))
	for i, id := range ids {
		if !id.IsValid() {
			return newValidationError(op, "element %d is not a string or integer identifier", i)
		}
		key := id.String()
		if _, dup := seen[key]; dup {
			return newValidationError(op, "identifier %q appears more than once", key)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// Slice returns the identifiers between positions from and to, both
// inclusive. A nil from starts at the beginning and a nil to runs to the
// end. Bounds past the end are truncated.
func (e *Exposure) Slice(ctx context.Context, from, to *int) ([]ID, error) {
	ids, err := e.SampleIDs(ctx)
	if err != nil {
		return nil, err
	}
	return SliceIDs(ids, from, to), nil
}

// SliceIDs applies the inclusive from/to window to ids. Negative bounds are
// treated as zero.
func SliceIDs(ids []ID, from, to *int) []ID {
	start, end := 0, len(ids)
	if from != nil {
		start = clamp(*from, 0, len(ids))
	}
	if to != nil {
		end = clamp(*to+1, 0, len(ids))
	}
	if start >= end {
		return []ID{}
	}
	return append([]ID(nil), ids[start:end]...)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Records returns the values of the requested samples, one per column of
// the structure and in structure order. Missing columns are nil. A requested
// sample the declaration does not return is a *LookupError.
func (e *Exposure) Records(ctx context.Context, ids []ID) (Records, error) {
	if len(ids) == 0 {
		return Records{}, nil
	}
	columns, err := e.Columns(ctx)
	if err != nil {
		return nil, err
	}
	d, ok := e.decl.(DataFetcher)
	if !ok {
		return nil, NewLookupError(KindSample, ids[0].String())
	}
	var table *Table
	if err := e.call(ctx, "data", func(ctx context.Context) error {
		var err error
		table, err = d.Data(ctx, ids)
		return err
	}); err != nil {
		return nil, fmt.Errorf("project %q: data: %w", e.name, err)
	}
	records, err := Assemble(columns, ids, table)
	if err != nil {
		return nil, fmt.Errorf("project %q: %w", e.name, err)
	}
	return records, nil
}
