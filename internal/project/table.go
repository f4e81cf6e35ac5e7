// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package project

import (
	"fmt"

	"github.com/goccy/go-json"
)

var jsonMarshal = json.Marshal

// Table is a column-oriented batch of values keyed by sample identifier.
// Every column holds one value per index entry. When the index holds the
// same identifier twice, lookups resolve to the first row.
type Table struct {
	index   []ID
	rows    map[ID]int
	names   []string
	columns map[string][]any
}

// NewTable returns an empty table over the given row index.
func NewTable(index []ID) *Table {
	t := &Table{
		index:   append([]ID(nil), index...),
		rows:    make(map[ID]int, len(index)),
		columns: make(map[string][]any),
	}
	for i, id := range t.index {
		if _, seen := t.rows[id]; !seen {
			t.rows[id] = i
		}
	}
	return t
}

// SetColumn adds or replaces a column. values must align with the index.
func (t *Table) SetColumn(name string, values []any) error {
	if len(values) != len(t.index) {
		return fmt.Errorf("column %q has %d values for %d rows", name, len(values), len(t.index))
	}
	if _, exists := t.columns[name]; !exists {
		t.names = append(t.names, name)
	}
	t.columns[name] = values
	return nil
}

// MustSetColumn is SetColumn for statically built tables; it panics on a
// length mismatch.
func (t *Table) MustSetColumn(name string, values ...any) *Table {
	if err := t.SetColumn(name, values); err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.index)
}

// Index returns a copy of the row identifiers.
func (t *Table) Index() []ID {
	if t == nil {
		return nil
	}
	return append([]ID(nil), t.index...)
}

// ColumnNames returns the column names in insertion order.
func (t *Table) ColumnNames() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.names...)
}

// HasColumn reports whether the table holds the named column.
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.columns[name]
	return ok
}

// Row returns the row position of id.
func (t *Table) Row(id ID) (int, bool) {
	if t == nil {
		return 0, false
	}
	i, ok := t.rows[id]
	return i, ok
}

// Value returns the value at the given row and column.
func (t *Table) Value(row int, column string) (any, bool) {
	values, ok := t.columns[column]
	if !ok || row < 0 || row >= len(values) {
		return nil, false
	}
	return values[row], true
}

// Clone returns a copy that shares no slices with t.
func (t *Table) Clone() *Table {
	if t == nil {
		return NewTable(nil)
	}
	c := NewTable(t.index)
	for _, name := range t.names {
		c.names = append(c.names, name)
		c.columns[name] = append([]any(nil), t.columns[name]...)
	}
	return c
}

// Select returns the rows of t whose identifier is in ids, in the order of
// ids. Identifiers absent from t are skipped.
func (t *Table) Select(ids []ID) *Table {
	rows := make([]int, 0, len(ids))
	index := make([]ID, 0, len(ids))
	for _, id := range ids {
		if row, ok := t.Row(id); ok {
			rows = append(rows, row)
			index = append(index, id)
		}
	}
	out := NewTable(index)
	for _, name := range t.ColumnNames() {
		src := t.columns[name]
		values := make([]any, len(rows))
		for i, row := range rows {
			values[i] = src[row]
		}
		out.names = append(out.names, name)
		out.columns[name] = values
	}
	return out
}
