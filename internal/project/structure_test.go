// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package project

import (
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

func TestNormalize_Nil(t *testing.T) {
	t.Parallel()

	for name, raw := range map[string]any{
		"untyped nil":   nil,
		"nil structure": Structure(nil),
	} {
		cols, err := Normalize(raw)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if cols != nil {
			t.Errorf("%s: expected nil columns (unknown structure), got %v", name, cols)
		}
	}
}

func TestNormalize_PreservesOrder(t *testing.T) {
	t.Parallel()

	raw := Structure{
		{Name: "b", Attrs: Attrs{"category": "context"}},
		{Name: "a", Attrs: Attrs{"type": "number"}},
		{Name: "c", Attrs: Attrs{"category": "groundtruth", "type": "text", "group": "g"}},
	}

	got, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	want := Columns{
		{Name: "b", Category: CategoryContext, Type: TypeAuto},
		{Name: "a", Category: CategoryOther, Type: TypeNumber},
		{Name: "c", Category: CategoryGroundTruth, Type: TypeText, Group: "g"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_MapSortsKeys(t *testing.T) {
	t.Parallel()

	got, err := Normalize(map[string]any{
		"zeta":  map[string]any{"category": "input"},
		"alpha": map[string]any{},
	})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if diff := cmp.Diff([]string{"alpha", "zeta"}, got.Names()); diff != "" {
		t.Errorf("column order mismatch (-want +got):\n%s", diff)
	}
	if got[0].Category != CategoryOther {
		t.Errorf("omitted category = %q, want %q", got[0].Category, CategoryOther)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	first, err := Normalize(Structure{
		{Name: "x", Attrs: Attrs{"category": "context", "type": "text", "group": "ctx"}},
		{Name: "y", Attrs: Attrs{}},
		{Name: "z", Attrs: map[string]string{"type": "list"}},
	})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	second, err := Normalize(first.Structure())
	if err != nil {
		t.Fatalf("Normalize(Structure()) error = %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("normalize is not idempotent (-first +second):\n%s", diff)
	}
}

func TestNormalize_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    any
		column string
		field  string
	}{
		{name: "top level not a mapping", raw: []string{"a"}},
		{name: "column value not a mapping", raw: Structure{{Name: "a", Attrs: "context"}}, column: "a"},
		{name: "nil column value", raw: Structure{{Name: "a", Attrs: nil}}, column: "a"},
		{name: "category not a string", raw: Structure{{Name: "a", Attrs: Attrs{"category": 3}}}, column: "a", field: "category"},
		{name: "unknown category", raw: Structure{{Name: "a", Attrs: Attrs{"category": "bogus"}}}, column: "a", field: "category"},
		{name: "type not a string", raw: Structure{{Name: "a", Attrs: Attrs{"type": true}}}, column: "a", field: "type"},
		{name: "unknown type", raw: Structure{{Name: "a", Attrs: Attrs{"type": "float"}}}, column: "a", field: "type"},
		{name: "group not a string", raw: Structure{{Name: "a", Attrs: Attrs{"group": 1}}}, column: "a", field: "group"},
		{name: "duplicate column", raw: Structure{{Name: "a", Attrs: Attrs{}}, {Name: "a", Attrs: Attrs{}}}, column: "a"},
		{name: "empty column name", raw: Structure{{Name: "", Attrs: Attrs{}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Normalize(tt.raw)
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected *SchemaError, got %v", err)
			}
			if schemaErr.Column != tt.column {
				t.Errorf("Column = %q, want %q", schemaErr.Column, tt.column)
			}
			if schemaErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", schemaErr.Field, tt.field)
			}
			if !errors.Is(err, ErrConfiguration) {
				t.Error("SchemaError should match ErrConfiguration")
			}
		})
	}
}

func TestColumn_MarshalJSON_Auto(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Column{Name: "x", Category: CategoryOther})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"name":"x","category":"other","type":"auto"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}
