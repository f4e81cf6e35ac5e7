// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWhereBuilder_Empty(t *testing.T) {
	wb := NewWhereBuilder()

	if !wb.IsEmpty() {
		t.Error("Expected new builder to be empty")
	}
	if wb.Count() != 0 {
		t.Errorf("Expected count 0, got %d", wb.Count())
	}

	whereClause, args := wb.Build()
	if whereClause != "1=1" {
		t.Errorf("Expected '1=1' for empty builder, got %q", whereClause)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestWhereBuilder_NumbersPlaceholders(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddEquals("model", "m1").AddIn("sample_id", []any{"s1", int64(2), "s3"})

	whereClause, args := wb.BuildWithPrefix()
	expected := `WHERE "model" = $1 AND "sample_id" IN ($2, $3, $4)`
	if whereClause != expected {
		t.Errorf("Expected %q, got %q", expected, whereClause)
	}
	if diff := cmp.Diff([]any{"m1", "s1", int64(2), "s3"}, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
	if wb.Count() != 2 {
		t.Errorf("Expected count 2, got %d", wb.Count())
	}
}

func TestWhereBuilder_EmptyInMatchesNothing(t *testing.T) {
	whereClause, args := NewWhereBuilder().AddIn("sample_id", nil).Build()
	if whereClause != "1=0" {
		t.Errorf("Expected '1=0', got %q", whereClause)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestQuoteIdent(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"samples", `"samples"`},
		{"main.samples", `"main"."samples"`},
		{`we"ird`, `"we""ird"`},
		{"Data ID", `"Data ID"`},
	}
	for _, tt := range tests {
		if got := QuoteIdent(tt.in); got != tt.want {
			t.Errorf("QuoteIdent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestChunk(t *testing.T) {
	values := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name string
		size int
		want [][]int
	}{
		{"even split", 2, [][]int{{1, 2}, {3, 4}, {5}}},
		{"single chunk", 10, [][]int{{1, 2, 3, 4, 5}}},
		{"exact", 5, [][]int{{1, 2, 3, 4, 5}}},
		{"unbounded", 0, [][]int{{1, 2, 3, 4, 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Chunk(values, tt.size)); diff != "" {
				t.Errorf("Chunk mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if got := Chunk([]int{}, 3); got != nil {
		t.Errorf("Chunk(empty) = %v, want nil", got)
	}
}
