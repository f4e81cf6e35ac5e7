// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/debiai-data-provider/internal/console"
	"github.com/tomtom215/debiai-data-provider/internal/logging"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [project...]",
	Short: "print what each declared project exposes",
	Long: `Load and validate the declared projects, then print the structure, sample
count, models and supported operations of each one. Nothing is served.`,
	Example: `  # Inspect every project
  $ debiai-provider inspect

  # Inspect a single project
  $ debiai-provider inspect MyProject`,
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	projects, err := buildProjects(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := projects.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close project connections")
		}
	}()

	names := args
	if len(names) == 0 {
		names = projects.registry.Names()
	}

	out := cmd.OutOrStdout()
	for _, name := range names {
		e, err := projects.registry.Resolve(name)
		if err != nil {
			return fmt.Errorf("inspect: %w", err)
		}
		fmt.Fprintf(out, "\n%s\n", name)
		console.Summary(ctx, out, e)
		console.Capabilities(out, e)
	}
	return nil
}
