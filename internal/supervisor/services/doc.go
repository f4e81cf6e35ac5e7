// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

// Package services adapts provider components to suture.Service.
//
//   - HTTPServerService: *http.Server with drain hook and graceful shutdown
//   - RevalidationService: periodic Exposure.Validate of every registered project
package services
