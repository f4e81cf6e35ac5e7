// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package project

import (
	"fmt"
	"sort"
)

// Category is the semantic role of a column.
type Category string

// Column categories.
const (
	CategoryContext     Category = "context"
	CategoryInput       Category = "input"
	CategoryGroundTruth Category = "groundtruth"
	CategoryOther       Category = "other"
)

// ColumnType is the declared value type of a column. TypeAuto means the
// type is left for the consumer to infer from the data.
type ColumnType string

// Column types.
const (
	TypeAuto   ColumnType = ""
	TypeText   ColumnType = "text"
	TypeNumber ColumnType = "number"
	TypeBool   ColumnType = "bool"
	TypeDict   ColumnType = "dict"
	TypeList   ColumnType = "list"
)

var (
	validCategories = map[string]Category{
		string(CategoryContext):     CategoryContext,
		string(CategoryInput):       CategoryInput,
		string(CategoryGroundTruth): CategoryGroundTruth,
		string(CategoryOther):       CategoryOther,
	}
	validTypes = map[string]ColumnType{
		string(TypeText):   TypeText,
		string(TypeNumber): TypeNumber,
		string(TypeBool):   TypeBool,
		string(TypeDict):   TypeDict,
		string(TypeList):   TypeList,
	}
)

// Column is a normalized column description.
type Column struct {
	Name     string     `json:"name"`
	Category Category   `json:"category"`
	Type     ColumnType `json:"type"`
	Group    string     `json:"group,omitempty"`
}

// MarshalJSON renders an unset type as "auto".
func (c Column) MarshalJSON() ([]byte, error) {
	type wire Column
	w := wire(c)
	if w.Type == TypeAuto {
		w.Type = "auto"
	}
	return jsonMarshal(w)
}

// Attrs holds the raw attributes of one column as declared by the user:
// optional "category", "type" and "group" keys.
type Attrs map[string]any

// StructureEntry is one declared column.
type StructureEntry struct {
	Name  string
	Attrs any
}

// Structure is an ordered structure declaration.
type Structure []StructureEntry

// Columns is a normalized structure.
type Columns []Column

// Names returns the column names in order.
func (cs Columns) Names() []string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Name
	}
	return names
}

// Structure converts normalized columns back into a declaration. Normalizing
// the result yields the same columns.
func (cs Columns) Structure() Structure {
	if cs == nil {
		return nil
	}
	s := make(Structure, 0, len(cs))
	for _, c := range cs {
		attrs := Attrs{"category": string(c.Category)}
		if c.Type != TypeAuto {
			attrs["type"] = string(c.Type)
		}
		if c.Group != "" {
			attrs["group"] = c.Group
		}
		s = append(s, StructureEntry{Name: c.Name, Attrs: attrs})
	}
	return s
}

// Normalize validates a raw structure declaration and returns its columns in
// declaration order. A nil input means the structure is unknown and yields
// nil columns with no error. Plain maps carry no order, so their keys are
// sorted. Every validation failure is a *SchemaError.
func Normalize(raw any) (Columns, error) {
	var entries Structure
	switch s := raw.(type) {
	case nil:
		return nil, nil
	case Structure:
		if s == nil {
			return nil, nil
		}
		entries = s
	case []StructureEntry:
		if s == nil {
			return nil, nil
		}
		entries = s
	case map[string]any:
		entries = sortedEntries(s)
	case map[string]Attrs:
		m := make(map[string]any, len(s))
		for k, v := range s {
			m[k] = v
		}
		entries = sortedEntries(m)
	case map[string]map[string]any:
		m := make(map[string]any, len(s))
		for k, v := range s {
			m[k] = v
		}
		entries = sortedEntries(m)
	default:
		return nil, &SchemaError{Reason: fmt.Sprintf("structure must be a mapping of column name to attributes, got %T", raw)}
	}

	columns := make(Columns, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			return nil, &SchemaError{Reason: "column name must not be empty"}
		}
		if _, dup := seen[e.Name]; dup {
			return nil, &SchemaError{Column: e.Name, Reason: "column declared more than once"}
		}
		seen[e.Name] = struct{}{}

		col, err := normalizeColumn(e.Name, e.Attrs)
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)
	}
	return columns, nil
}

func sortedEntries(m map[string]any) Structure {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	s := make(Structure, len(names))
	for i, n := range names {
		s[i] = StructureEntry{Name: n, Attrs: m[n]}
	}
	return s
}

func normalizeColumn(name string, raw any) (Column, error) {
	var attrs map[string]any
	switch a := raw.(type) {
	case Attrs:
		attrs = a
	case map[string]any:
		attrs = a
	case map[string]string:
		attrs = make(map[string]any, len(a))
		for k, v := range a {
			attrs[k] = v
		}
	default:
		return Column{}, &SchemaError{Column: name, Reason: fmt.Sprintf("attributes must be a mapping, got %T", raw)}
	}

	col := Column{Name: name, Category: CategoryOther, Type: TypeAuto}

	if v, ok := attrs["category"]; ok {
		s, isString := v.(string)
		if !isString {
			return Column{}, &SchemaError{Column: name, Field: "category", Reason: fmt.Sprintf("must be a string, got %T", v)}
		}
		c, known := validCategories[s]
		if !known {
			return Column{}, &SchemaError{Column: name, Field: "category", Reason: fmt.Sprintf("unknown category %q, expected one of context, input, groundtruth, other", s)}
		}
		col.Category = c
	}

	if v, ok := attrs["type"]; ok {
		s, isString := v.(string)
		if !isString {
			return Column{}, &SchemaError{Column: name, Field: "type", Reason: fmt.Sprintf("must be a string, got %T", v)}
		}
		t, known := validTypes[s]
		if !known {
			return Column{}, &SchemaError{Column: name, Field: "type", Reason: fmt.Sprintf("unknown type %q, expected one of text, number, bool, dict, list", s)}
		}
		col.Type = t
	}

	if v, ok := attrs["group"]; ok {
		s, isString := v.(string)
		if !isString {
			return Column{}, &SchemaError{Column: name, Field: "group", Reason: fmt.Sprintf("must be a string, got %T", v)}
		}
		col.Group = s
	}

	return col, nil
}
