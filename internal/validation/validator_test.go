// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil || v1 != v2 {
		t.Error("GetValidator() should return the same non-nil instance")
	}
}

type sliceRequest struct {
	From *int   `json:"from" validate:"omitempty,min=0"`
	To   *int   `json:"to" validate:"omitempty,min=0"`
	IDs  []any  `json:"ids" validate:"max=3"`
	Kind string `koanf:"kind" validate:"omitempty,oneof=parquet sql"`
}

type tableConfig struct {
	Table string `koanf:"table" validate:"required,sqlident"`
}

func intp(v int) *int { return &v }

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		input     any
		wantField string
		wantMsg   string
	}{
		{name: "valid", input: &sliceRequest{From: intp(0), To: intp(10)}},
		{name: "nil bounds", input: &sliceRequest{}},
		{name: "negative from", input: &sliceRequest{From: intp(-1)}, wantField: "from", wantMsg: "from must be at least 0"},
		{name: "too many ids", input: &sliceRequest{IDs: []any{1, 2, 3, 4}}, wantField: "ids", wantMsg: "ids must be at most 3 items"},
		{name: "koanf tag name", input: &sliceRequest{Kind: "csv"}, wantField: "kind", wantMsg: "kind must be one of: parquet sql"},
		{name: "sql identifier", input: &tableConfig{Table: "main.samples"}},
		{name: "sql injection", input: &tableConfig{Table: "samples; DROP TABLE x"}, wantField: "table", wantMsg: "table must be a SQL identifier"},
		{name: "required", input: &tableConfig{}, wantField: "table", wantMsg: "table is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(tt.input)
			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("unexpected validation error: %v", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("expected a validation error")
			}
			if len(verr.Fields) != 1 {
				t.Fatalf("expected one failure, got %v", verr.Fields)
			}
			if verr.Fields[0].Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Fields[0].Field, tt.wantField)
			}
			if verr.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", verr.Error(), tt.wantMsg)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	single := ValidateStruct(&sliceRequest{From: intp(-5)}).ToAPIError()
	if single.Code != "VALIDATION_FAILED" {
		t.Errorf("Code = %q", single.Code)
	}
	if single.Details["field"] != "from" {
		t.Errorf("Details = %v", single.Details)
	}

	multi := ValidateStruct(&sliceRequest{From: intp(-1), To: intp(-1)}).ToAPIError()
	fields, ok := multi.Details["fields"].([]map[string]any)
	if !ok || len(fields) != 2 {
		t.Fatalf("Details = %v, want two fields", multi.Details)
	}
	if !strings.Contains(multi.Message, "; ") {
		t.Errorf("Message = %q, want joined messages", multi.Message)
	}
}
