// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

// Package testinfra starts the databases used by integration tests.
//
// Files in this package carry the integration build tag:
//
//	go test -tags integration ./internal/provider/sqltable/...
//
// # PostgreSQL
//
//	pg := testinfra.StartPostgres(t)
//	pg.Seed(t, `CREATE TABLE samples (...)`, `INSERT INTO samples ...`)
//	cfg := config.SQLProjectConfig{Driver: "pgx", DSN: pg.DSN, ...}
//
// Tests are skipped when Docker is unavailable. The first run pulls the
// image.
package testinfra
