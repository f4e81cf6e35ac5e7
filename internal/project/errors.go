// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package project

import (
	"errors"
	"fmt"
)

// Sentinel errors. Typed errors below match one of them through errors.Is,
// so callers can branch on the category without knowing the concrete type.
var (
	// ErrConfiguration marks a project that cannot be served at all:
	// malformed structure, missing source file or column, bad identifiers.
	ErrConfiguration = errors.New("project configuration error")

	// ErrNotFound marks a lookup of a sample, model, selection or project
	// that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks data returned by a declaration that breaks the
	// exposure contract at request time.
	ErrValidation = errors.New("project contract violation")
)

// SchemaError reports a malformed structure declaration. Column is empty
// when the top-level value itself is invalid.
type SchemaError struct {
	Column string
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	switch {
	case e.Column == "":
		return fmt.Sprintf("invalid structure: %s", e.Reason)
	case e.Field == "":
		return fmt.Sprintf("invalid structure for column %q: %s", e.Column, e.Reason)
	default:
		return fmt.Sprintf("invalid structure for column %q, field %q: %s", e.Column, e.Field, e.Reason)
	}
}

// Is reports whether target is ErrConfiguration.
func (e *SchemaError) Is(target error) bool {
	return target == ErrConfiguration
}

// ConfigError reports a provider that failed to load.
type ConfigError struct {
	Source string
	Reason string
	Err    error
}

// NewConfigError builds a ConfigError with a formatted reason.
func NewConfigError(source, format string, args ...any) *ConfigError {
	return &ConfigError{Source: source, Reason: fmt.Sprintf(format, args...)}
}

func (e *ConfigError) Error() string {
	msg := e.Reason
	if e.Source != "" {
		msg = e.Source + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Is reports whether target is ErrConfiguration.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

// Lookup kinds.
const (
	KindProject   = "project"
	KindSample    = "sample"
	KindModel     = "model"
	KindSelection = "selection"
)

// LookupError reports a missing sample, model, selection or project.
type LookupError struct {
	Kind string
	Key  string
}

// NewLookupError returns a LookupError for the given kind and key.
func NewLookupError(kind, key string) *LookupError {
	return &LookupError{Kind: kind, Key: key}
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

// Is reports whether target is ErrNotFound.
func (e *LookupError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError reports data from a declaration that violates the
// exposure contract, e.g. a sample id that is neither a string nor an int.
type ValidationError struct {
	Op     string
	Reason string
}

func newValidationError(op, format string, args ...any) *ValidationError {
	return &ValidationError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Op == "" {
		return e.Reason
	}
	return e.Op + ": " + e.Reason
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// IsNotFound reports whether err is, or wraps, a lookup failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsContractViolation reports whether err comes from a declaration
// breaking the exposure contract (bad schema or bad data).
func IsContractViolation(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrConfiguration)
}
