// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package query

import (
	"fmt"
	"strconv"
	"strings"
)

// QuoteIdent quotes a possibly schema-qualified identifier, e.g.
// main.samples becomes "main"."samples". Embedded quotes are doubled.
func QuoteIdent(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = `"` + strings.ReplaceAll(p, `"`, `""`) + `"`
	}
	return strings.Join(parts, ".")
}

// WhereBuilder constructs SQL WHERE clauses with positional arguments.
// Placeholders are numbered ($1, $2, ...), which both DuckDB and
// PostgreSQL accept.
//
// Example usage:
//
//	wb := query.NewWhereBuilder()
//	wb.AddEquals("model", "m1")
//	wb.AddIn("sample_id", []any{"s1", "s2"})
//	whereClause, args := wb.Build()
//	// "model" = $1 AND "sample_id" IN ($2, $3)
type WhereBuilder struct {
	clauses []string
	args    []any
}

// NewWhereBuilder creates a new WhereBuilder instance.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{
		clauses: []string{},
		args:    []any{},
	}
}

// next binds v and returns its placeholder.
func (wb *WhereBuilder) next(v any) string {
	wb.args = append(wb.args, v)
	return "$" + strconv.Itoa(len(wb.args))
}

// AddEquals adds "column = value".
func (wb *WhereBuilder) AddEquals(column string, value any) *WhereBuilder {
	wb.clauses = append(wb.clauses, fmt.Sprintf("%s = %s", QuoteIdent(column), wb.next(value)))
	return wb
}

// AddIn adds "column IN (...)". An empty list matches nothing.
func (wb *WhereBuilder) AddIn(column string, values []any) *WhereBuilder {
	if len(values) == 0 {
		wb.clauses = append(wb.clauses, "1=0")
		return wb
	}
	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = wb.next(v)
	}
	wb.clauses = append(wb.clauses, fmt.Sprintf("%s IN (%s)", QuoteIdent(column), strings.Join(placeholders, ", ")))
	return wb
}

// Build constructs the final WHERE clause and returns it with arguments.
// Clauses are joined with "AND". Returns ("1=1", []) if no clauses were added.
func (wb *WhereBuilder) Build() (string, []any) {
	if len(wb.clauses) == 0 {
		return "1=1", []any{}
	}
	return strings.Join(wb.clauses, " AND "), wb.args
}

// BuildWithPrefix returns the WHERE clause with "WHERE " prefix.
func (wb *WhereBuilder) BuildWithPrefix() (string, []any) {
	whereClause, args := wb.Build()
	return "WHERE " + whereClause, args
}

// Count returns the number of clauses added to the builder.
func (wb *WhereBuilder) Count() int {
	return len(wb.clauses)
}

// IsEmpty returns true if no clauses have been added.
func (wb *WhereBuilder) IsEmpty() bool {
	return len(wb.clauses) == 0
}

// Chunk splits values into slices of at most size elements, so that large
// IN lists stay under driver parameter limits.
func Chunk[T any](values []T, size int) [][]T {
	if size <= 0 || len(values) <= size {
		if len(values) == 0 {
			return nil
		}
		return [][]T{values}
	}
	chunks := make([][]T, 0, (len(values)+size-1)/size)
	for start := 0; start < len(values); start += size {
		end := start + size
		if end > len(values) {
			end = len(values)
		}
		chunks = append(chunks, values[start:end])
	}
	return chunks
}
