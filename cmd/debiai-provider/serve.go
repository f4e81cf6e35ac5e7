// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/debiai-data-provider/docs"
	"github.com/tomtom215/debiai-data-provider/internal/api"
	"github.com/tomtom215/debiai-data-provider/internal/config"
	"github.com/tomtom215/debiai-data-provider/internal/console"
	"github.com/tomtom215/debiai-data-provider/internal/logging"
	"github.com/tomtom215/debiai-data-provider/internal/metrics"
	"github.com/tomtom215/debiai-data-provider/internal/supervisor"
	"github.com/tomtom215/debiai-data-provider/internal/supervisor/services"
)

var quiet bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the data-provider HTTP API",
	Long: `Load and validate every declared project, print a summary of each, then
serve them until SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the banner and project summaries")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		logging.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	logging.Info().
		Str("version", cfg.API.Version).
		Str("addr", cfg.Server.Addr()).
		Msg("Starting DebiAI data provider")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	projects, err := buildProjects(ctx, cfg)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to load projects")
		return err
	}
	defer func() {
		if err := projects.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close project connections")
		}
	}()

	if !quiet {
		out := cmd.OutOrStdout()
		console.Banner(out, cfg.API.Version, cfg.Server.Addr(), projects.registry.Len())
		for _, e := range projects.registry.List() {
			console.Summary(ctx, out, e)
		}
	}

	metrics.SetAppInfo(cfg.API.Version)
	docs.SwaggerInfo.Version = cfg.API.Version
	docs.SwaggerInfo.Host = cfg.Server.Addr()

	handler := api.NewHandler(projects.registry, cfg)
	router := api.NewRouter(handler, cfg)
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfigFrom(cfg.Supervisor))
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create supervisor tree")
		return err
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout,
		services.WithDrainHook(func() { handler.SetReady(false) })))
	if cfg.Supervisor.RevalidateInterval > 0 {
		tree.AddDataService(services.NewRevalidationService(projects.registry, cfg.Supervisor.RevalidateInterval, 0))
		logging.Info().Dur("interval", cfg.Supervisor.RevalidateInterval).Msg("Project revalidation enabled")
	}

	watchLogLevel()

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	errCh := tree.ServeBackground(ctx)
	handler.SetReady(true)
	logging.Info().Int("projects", projects.registry.Len()).Msg("Server ready")

	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		serveErr = <-errCh
	case serveErr = <-errCh:
		cancel()
	}
	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		logging.Error().Err(serveErr).Msg("Supervisor stopped with error")
	} else {
		serveErr = nil
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Unstopped service")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
	return serveErr
}

// watchLogLevel re-applies the logging section whenever the config file
// changes. Other settings need a restart.
func watchLogLevel() {
	path := config.FindConfigFile()
	if path == "" {
		return
	}
	err := config.WatchConfigFile(path, func() {
		cfg, err := loadConfig()
		if err != nil {
			logging.Warn().Err(err).Str("path", path).Msg("Ignoring invalid configuration change")
			return
		}
		logging.Info().Str("level", cfg.Logging.Level).Msg("Logging configuration reloaded")
	})
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Cannot watch config file")
	}
}
