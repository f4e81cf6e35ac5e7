// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/debiai-data-provider/internal/validation"
)

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateBreaker(); err != nil {
		return err
	}
	return c.validateProjects()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.Server.Timeout)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "disabled", "off":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, disabled; got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateAPI() error {
	limits := map[string]int{
		"API_MAX_SAMPLE_IDS":  c.API.MaxSampleIDs,
		"API_MAX_SAMPLE_DATA": c.API.MaxSampleData,
		"API_MAX_RESULTS":     c.API.MaxResults,
	}
	for name, v := range limits {
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %d", name, v)
		}
	}
	return nil
}

func (c *Config) validateBreaker() error {
	if !c.Breaker.Enabled {
		return nil
	}
	if c.Breaker.FailureRatio <= 0 || c.Breaker.FailureRatio > 1 {
		return fmt.Errorf("BREAKER_FAILURE_RATIO must be in (0, 1], got %v", c.Breaker.FailureRatio)
	}
	if c.Breaker.Timeout <= 0 {
		return fmt.Errorf("BREAKER_TIMEOUT must be positive, got %s", c.Breaker.Timeout)
	}
	return nil
}

func (c *Config) validateProjects() error {
	names := make(map[string]string)
	claim := func(name, where string) error {
		if name == "" {
			return nil
		}
		if prev, ok := names[name]; ok {
			return fmt.Errorf("project name %q is used by both %s and %s", name, prev, where)
		}
		names[name] = where
		return nil
	}

	for i := range c.Projects.Parquet {
		p := &c.Projects.Parquet[i]
		where := fmt.Sprintf("projects.parquet[%d]", i)
		if verr := validation.ValidateStruct(p); verr != nil {
			return fmt.Errorf("%s: %w", where, verr)
		}
		if err := claim(p.Name, where); err != nil {
			return err
		}
	}
	for i := range c.Projects.SQL {
		p := &c.Projects.SQL[i]
		where := fmt.Sprintf("projects.sql[%d]", i)
		if verr := validation.ValidateStruct(p); verr != nil {
			return fmt.Errorf("%s: %w", where, verr)
		}
		if err := claim(p.Name, where); err != nil {
			return err
		}
	}
	return nil
}
