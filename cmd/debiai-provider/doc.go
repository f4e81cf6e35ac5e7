// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

/*
Command debiai-provider serves projects to the DebiAI client.

Projects are declared in the configuration file: the bundled examples,
Parquet files and SQL tables (DuckDB or PostgreSQL). Projects written in Go
are registered by embedding the internal packages instead.

# Commands

	debiai-provider serve     # start the HTTP API
	debiai-provider inspect   # print what every project exposes, then exit
	debiai-provider version

# Process Layout

serve runs under a Suture v4 supervisor tree:

	RootSupervisor ("debiai-provider")
	├── DataSupervisor ("data-layer")
	│   └── Project revalidation (when supervisor.revalidate_interval > 0)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
  - Environment variables (the .env file is applied first)
  - Config file (config.yaml, or --config / CONFIG_PATH)
  - Built-in defaults

Changing logging.level in the config file takes effect without a restart.

# Signal Handling

SIGINT and SIGTERM cancel the root context. Readiness turns false, in-flight
requests get server.shutdown_timeout to finish, then SQL connections are
closed.
*/
package main
