// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package project

import (
	"bytes"
	"math"
	"strconv"

	"github.com/goccy/go-json"
)

// ID identifies a sample. It holds either a string or an integer and is
// comparable, so it can key maps. The zero value is invalid.
type ID struct {
	str   string
	num   int64
	isInt bool
	valid bool
}

// StringID returns a string sample identifier.
func StringID(s string) ID {
	return ID{str: s, valid: true}
}

// IntID returns an integer sample identifier.
func IntID(n int64) ID {
	return ID{num: n, isInt: true, valid: true}
}

// StringIDs converts a list of strings to identifiers.
func StringIDs(values ...string) []ID {
	ids := make([]ID, len(values))
	for i, v := range values {
		ids[i] = StringID(v)
	}
	return ids
}

// IsValid reports whether the identifier was built from a string or an int.
func (id ID) IsValid() bool { return id.valid }

// IsInt reports whether the identifier holds an integer.
func (id ID) IsInt() bool { return id.valid && id.isInt }

// Int returns the integer value and whether the identifier holds one.
func (id ID) Int() (int64, bool) { return id.num, id.IsInt() }

// String returns the textual form. Integer identifiers are rendered in base 10.
func (id ID) String() string {
	if id.isInt {
		return strconv.FormatInt(id.num, 10)
	}
	return id.str
}

// Value returns the identifier as a plain Go value (string or int64).
func (id ID) Value() any {
	if !id.valid {
		return nil
	}
	if id.isInt {
		return id.num
	}
	return id.str
}

// MarshalJSON encodes string identifiers as JSON strings and integer
// identifiers as JSON numbers.
func (id ID) MarshalJSON() ([]byte, error) {
	if !id.valid {
		return nil, newValidationError("encode sample id", "invalid sample id")
	}
	if id.isInt {
		return strconv.AppendInt(nil, id.num, 10), nil
	}
	return json.Marshal(id.str)
}

// MarshalText returns the textual form, used when identifiers key a JSON object.
func (id ID) MarshalText() ([]byte, error) {
	if !id.valid {
		return nil, newValidationError("encode sample id", "invalid sample id")
	}
	return []byte(id.String()), nil
}

// UnmarshalJSON accepts a JSON string or an integral JSON number.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return newValidationError("decode sample id", "sample id must be a string or an integer, got null")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return newValidationError("decode sample id", "malformed string: %v", err)
		}
		*id = StringID(s)
		return nil
	}
	parsed, err := parseNumber(string(data))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func parseNumber(s string) (ID, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntID(n), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ID{}, newValidationError("decode sample id", "sample id must be a string or an integer, got %s", s)
	}
	return floatID(f)
}

func floatID(f float64) (ID, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > (1<<53) {
		return ID{}, newValidationError("decode sample id", "sample id must be a string or an integer, got %v", f)
	}
	return IntID(int64(f)), nil
}
