// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package project

// Records maps a sample identifier to its values, one per column.
type Records map[ID][]any

// Keyed returns the records keyed by the textual identifier, the form used
// for JSON object keys.
func (r Records) Keyed() map[string][]any {
	out := make(map[string][]any, len(r))
	for id, values := range r {
		out[id.String()] = values
	}
	return out
}

// Assemble converts a column-oriented table into records. For every id it
// emits one value per column, in column order. Columns the table lacks are
// padded with nil. An id without a row in the table is a *LookupError.
// table is not modified.
func Assemble(columns Columns, ids []ID, table *Table) (Records, error) {
	owned := table.Clone()
	for _, c := range columns {
		if !owned.HasColumn(c.Name) {
			// Lengths always match on a fresh column.
			_ = owned.SetColumn(c.Name, make([]any, owned.Len()))
		}
	}

	records := make(Records, len(ids))
	for _, id := range ids {
		row, ok := owned.Row(id)
		if !ok {
			return nil, NewLookupError(KindSample, id.String())
		}
		values := make([]any, len(columns))
		for i, c := range columns {
			values[i], _ = owned.Value(row, c.Name)
		}
		records[id] = values
	}
	return records, nil
}
