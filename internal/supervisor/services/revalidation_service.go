// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package services

import (
	"context"
	"time"

	"github.com/tomtom215/debiai-data-provider/internal/logging"
	"github.com/tomtom215/debiai-data-provider/internal/metrics"
	"github.com/tomtom215/debiai-data-provider/internal/project"
)

// ProjectLister is satisfied by *registry.Registry.
type ProjectLister interface {
	List() []*project.Exposure
}

// RevalidationService periodically re-runs the registration checks of every
// project. Failures are logged and counted in
// project_validation_failures_total. A failing project stays registered.
type RevalidationService struct {
	projects ProjectLister
	interval time.Duration
	timeout  time.Duration
	name     string
}

// NewRevalidationService creates the service. Each project gets at most
// timeout to validate; zero means half the interval.
func NewRevalidationService(projects ProjectLister, interval, timeout time.Duration) *RevalidationService {
	if timeout <= 0 {
		timeout = interval / 2
	}
	return &RevalidationService{
		projects: projects,
		interval: interval,
		timeout:  timeout,
		name:     "project-revalidation",
	}
}

// Serve implements suture.Service. A non-positive interval disables the
// service: Serve then just waits for shutdown.
func (s *RevalidationService) Serve(ctx context.Context) error {
	if s.interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce validates every registered project and returns the number of failures.
func (s *RevalidationService) RunOnce(ctx context.Context) int {
	failures := 0
	for _, e := range s.projects.List() {
		if ctx.Err() != nil {
			return failures
		}
		if err := s.validate(ctx, e); err != nil {
			failures++
			metrics.ProjectValidationFailures.WithLabelValues(e.Name()).Inc()
			logging.Warn().Err(err).Str("project", e.Name()).Msg("Project failed revalidation")
		}
	}
	logging.Debug().Int("failures", failures).Msg("Project revalidation finished")
	return failures
}

func (s *RevalidationService) validate(ctx context.Context, e *project.Exposure) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return e.Validate(ctx)
}

// String implements fmt.Stringer for suture's logs.
func (s *RevalidationService) String() string {
	return s.name
}
