// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

// Package query builds parameterized SQL fragments for the SQL-backed
// projects.
//
// Identifiers come from configuration and are validated there; they are
// still quoted with QuoteIdent. Values are always bound as arguments:
//
//	wb := query.NewWhereBuilder()
//	wb.AddIn("sample_id", ids)
//	where, args := wb.BuildWithPrefix()
//	sql := "SELECT * FROM " + query.QuoteIdent(table) + " " + where
package query
