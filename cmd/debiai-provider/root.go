// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomtom215/debiai-data-provider/internal/config"
	"github.com/tomtom215/debiai-data-provider/internal/logging"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	configPath    string
	envFile       string
	forceExamples bool
)

// rootCmd is the root command
var rootCmd = &cobra.Command{
	Use:     "debiai-provider",
	Short:   "Serve projects to the DebiAI client",
	Version: version,
	Long: `A data provider for DebiAI. Projects declared in the configuration file
(Parquet files, SQL tables or the bundled examples) are validated at startup
and served over the DebiAI data-provider HTTP API.`,
	Example: `  # Serve the projects declared in ./config.yaml
  $ debiai-provider serve

  # Serve the example projects only
  $ debiai-provider serve --examples

  # Check what each project exposes without starting the server
  $ debiai-provider inspect --config projects.yaml`,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		if configPath != "" {
			if err := os.Setenv(config.ConfigPathEnvVar, configPath); err != nil {
				return fmt.Errorf("set %s: %w", config.ConfigPathEnvVar, err)
			}
		}
		config.DotEnvPath = envFile
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceUsage = true

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: first of "+fmt.Sprint(config.DefaultConfigPaths)+")")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", config.DotEnvPath, "file of KEY=value pairs applied before the environment")
	rootCmd.PersistentFlags().BoolVar(&forceExamples, "examples", false, "also serve the bundled example projects")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads the configuration and applies its logging settings.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if forceExamples {
		cfg.Projects.Examples = true
	}
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	return cfg, nil
}
