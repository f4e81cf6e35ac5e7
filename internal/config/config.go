// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
	Security   SecurityConfig   `koanf:"security"`
	API        APIConfig        `koanf:"api"`
	Breaker    BreakerConfig    `koanf:"breaker"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
	Projects   ProjectsConfig   `koanf:"projects"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// APIConfig holds the values advertised by GET /info and the optional
// endpoints served next to the data-provider routes.
type APIConfig struct {
	Version            string          `koanf:"version"`
	MaxSampleIDs       int             `koanf:"max_sample_ids"`
	MaxSampleData      int             `koanf:"max_sample_data"`
	MaxResults         int             `koanf:"max_results"`
	CanDelete          CanDeleteConfig `koanf:"can_delete"`
	HomepageEnabled    bool            `koanf:"homepage_enabled"`
	SwaggerEnabled     bool            `koanf:"swagger_enabled"`
	MetricsEnabled     bool            `koanf:"metrics_enabled"`
	CompressionEnabled bool            `koanf:"compression_enabled"`
}

// CanDeleteConfig tells the client which deletions it may offer.
type CanDeleteConfig struct {
	Projects   bool `koanf:"projects" json:"projects"`
	Selections bool `koanf:"selections" json:"selections"`
	Models     bool `koanf:"models" json:"models"`
}

// BreakerConfig configures the circuit breaker guarding each project.
type BreakerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// SupervisorConfig configures the suture supervisor tree.
type SupervisorConfig struct {
	FailureThreshold   float64       `koanf:"failure_threshold"`
	FailureDecay       float64       `koanf:"failure_decay"`
	FailureBackoff     time.Duration `koanf:"failure_backoff"`
	ShutdownTimeout    time.Duration `koanf:"shutdown_timeout"`
	RevalidateInterval time.Duration `koanf:"revalidate_interval"`
}

// ProjectsConfig declares the projects served without writing Go code.
type ProjectsConfig struct {
	// Examples registers the bundled MyProject and MyProjectWithResults.
	Examples bool                   `koanf:"examples"`
	Parquet  []ParquetProjectConfig `koanf:"parquet"`
	SQL      []SQLProjectConfig     `koanf:"sql"`
}

// ParquetProjectConfig declares a project backed by a Parquet file.
type ParquetProjectConfig struct {
	// Name defaults to the file name without its extension.
	Name           string `koanf:"name"`
	Path           string `koanf:"path" validate:"required"`
	SampleIDColumn string `koanf:"sample_id_column" validate:"required"`
	// Columns restricts the exposed columns; empty means all.
	Columns []string `koanf:"columns" validate:"unique"`
	// ResultsDir holds one Parquet file per model.
	ResultsDir     string   `koanf:"results_dir"`
	ResultsColumns []string `koanf:"results_columns" validate:"unique"`
}

// SQLProjectConfig declares a project backed by a SQL table or view.
type SQLProjectConfig struct {
	Name     string `koanf:"name" validate:"required"`
	Driver   string `koanf:"driver" validate:"required,oneof=duckdb pgx"`
	DSN      string `koanf:"dsn"`
	Table    string `koanf:"table" validate:"required,sqlident"`
	IDColumn string `koanf:"id_column" validate:"required,sqlident"`
	// Setup runs once after connecting, e.g. to create a view over a file.
	Setup        []string                  `koanf:"setup"`
	Structure    map[string]map[string]any `koanf:"structure"`
	CreationDate string                    `koanf:"creation_date"`

	ResultsTable       string `koanf:"results_table" validate:"omitempty,sqlident"`
	ResultsModelColumn string `koanf:"results_model_column" validate:"required_with=ResultsTable,omitempty,sqlident"`
	ResultsIDColumn    string `koanf:"results_id_column" validate:"omitempty,sqlident"`

	MaxOpenConns int `koanf:"max_open_conns" validate:"min=0"`
}

// Load reads configuration from .env, the config file and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
