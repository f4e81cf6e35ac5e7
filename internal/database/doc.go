// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

// Package database wraps the SQL connections used by SQL-backed projects.
//
// Two database/sql drivers are registered:
//   - duckdb (github.com/duckdb/duckdb-go/v2): embedded, can read Parquet
//     and CSV files directly through views created by setup statements
//   - pgx (github.com/jackc/pgx/v5/stdlib): PostgreSQL
//
// Every query records its duration and errors under the
// db_query_duration_seconds and db_query_errors_total metrics, labelled
// by driver and operation. Connection failures are wrapped with
// ErrConnection.
//
// Scanned values are normalized by NormalizeValue: integers become int64,
// floats and decimals float64, timestamps RFC 3339 strings and byte
// slices strings.
package database
