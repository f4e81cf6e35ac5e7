// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

// Package project is the exposure layer between user-declared data sources
// and the DebiAI data-provider API.
//
// A declaration is any Go value. What it can answer is expressed through
// small optional interfaces (StructureDescriber, SampleLister, DataFetcher,
// ModelLister, ...). A declaration that does not implement one of them is
// "not implemented" for that question, and the exposure layer substitutes a
// documented default instead of failing:
//
//	structure          unknown (nil columns, [] on the wire)
//	sample count       unknown (null on the wire)
//	sample ids         []
//	models             []
//	evaluated ids      []
//	model results      {}
//	selections         []
//
// # Components
//
//   - Normalize validates a raw structure declaration into Columns.
//   - Exposure.SampleIDs and Exposure.Slice resolve the sample index.
//   - Assemble turns a column-oriented Table into identifier-keyed Records.
//   - Exposure.Models, EvaluatedIDs and Results adapt model results.
//   - Exposure.Overview and Exposure.Detail aggregate project metadata.
//
// # Errors
//
// Errors fall into three categories, matched with errors.Is:
//
//	ErrConfiguration  *SchemaError, *ConfigError   project cannot be served
//	ErrNotFound       *LookupError                 unknown sample, model, project
//	ErrValidation     *ValidationError             declaration broke the contract
//
// The exposure layer keeps no cache. Every call reaches the declaration,
// optionally through a Guard such as a circuit breaker.
package project
