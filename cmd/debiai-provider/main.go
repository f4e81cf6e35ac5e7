// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package main

import "os"

// @title DebiAI Data Provider API
// @description Serves user-declared projects to the DebiAI client.
// @description Successful responses use the payloads the DebiAI client expects; errors and health checks use the APIResponse envelope.

// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/debiai-data-provider/issues

// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @BasePath /
// @schemes http https

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
