// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/tomtom215/debiai-data-provider/internal/breaker"
	"github.com/tomtom215/debiai-data-provider/internal/config"
	"github.com/tomtom215/debiai-data-provider/internal/logging"
	"github.com/tomtom215/debiai-data-provider/internal/project"
	"github.com/tomtom215/debiai-data-provider/internal/provider/memory"
	"github.com/tomtom215/debiai-data-provider/internal/provider/parquet"
	"github.com/tomtom215/debiai-data-provider/internal/provider/sqltable"
	"github.com/tomtom215/debiai-data-provider/internal/registry"
)

// projectSet is the registry built from the configuration plus the
// resources that must be released on shutdown.
type projectSet struct {
	registry *registry.Registry
	closers  []io.Closer
}

// Close releases every SQL connection pool.
func (s *projectSet) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// buildProjects loads and registers every declared project. Any project that
// fails to load or validate aborts startup.
func buildProjects(ctx context.Context, cfg *config.Config) (*projectSet, error) {
	set := &projectSet{registry: registry.New()}

	add := func(decl any, name string) error {
		var opts []project.Option
		if cfg.Breaker.Enabled {
			if name == "" {
				name = registry.NameOf(decl)
			}
			opts = append(opts, breaker.New(name, cfg.Breaker).Option())
		}
		_, err := set.registry.Add(ctx, decl, name, opts...)
		return err
	}

	fail := func(err error) (*projectSet, error) {
		if cerr := set.Close(); cerr != nil {
			logging.Warn().Err(cerr).Msg("Failed to close project connections")
		}
		return nil, err
	}

	if cfg.Projects.Examples {
		for _, p := range memory.Examples() {
			if err := add(p, ""); err != nil {
				return fail(fmt.Errorf("example project %s: %w", p.Name(), err))
			}
		}
	}

	for _, pc := range cfg.Projects.Parquet {
		p, err := parquet.Load(ctx, pc)
		if err != nil {
			return fail(err)
		}
		if err := add(p, ""); err != nil {
			return fail(fmt.Errorf("parquet project %s: %w", p.Name(), err))
		}
	}

	for _, sc := range cfg.Projects.SQL {
		p, err := sqltable.Open(ctx, sc)
		if err != nil {
			return fail(err)
		}
		set.closers = append(set.closers, p)
		if err := add(p, ""); err != nil {
			return fail(fmt.Errorf("sql project %s: %w", sc.Name, err))
		}
	}

	if set.registry.Len() == 0 {
		logging.Warn().Msg("No project declared; enable projects.examples or declare parquet/sql projects")
	}
	return set, nil
}
