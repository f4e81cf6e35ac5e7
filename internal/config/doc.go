// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

/*
Package config loads the provider configuration with koanf.

# Configuration Sources

Layered, later sources override earlier ones:
  - Built-in defaults
  - A YAML file: $CONFIG_PATH, then debiai-provider.yaml, config.yaml,
    /etc/debiai-provider/config.yaml
  - Environment variables, after a local .env file has been applied

# Environment Variables

Server:
  - HTTP_HOST (default 0.0.0.0), HTTP_PORT (default 8000), HTTP_TIMEOUT (60s)

Logging:
  - LOG_LEVEL (info), LOG_FORMAT (json|console), LOG_CALLER

API:
  - API_MAX_SAMPLE_IDS (10000), API_MAX_SAMPLE_DATA (2000), API_MAX_RESULTS (5000)
  - CAN_DELETE_PROJECTS, CAN_DELETE_SELECTIONS, CAN_DELETE_MODELS (true)
  - CORS_ORIGINS (comma-separated, default *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Circuit breaker and supervision:
  - BREAKER_ENABLED, BREAKER_TIMEOUT, BREAKER_FAILURE_RATIO, ...
  - REVALIDATE_INTERVAL (0 disables periodic project validation)

# Projects

Projects are declared in the YAML file:

	projects:
	  examples: true
	  parquet:
	    - path: data/titanic.parquet
	      sample_id_column: PassengerId
	      results_dir: data/results
	  sql:
	    - name: Samples
	      driver: duckdb
	      setup:
	        - CREATE VIEW samples AS SELECT * FROM read_parquet('data/samples.parquet')
	      table: samples
	      id_column: sample_id
*/
package config
