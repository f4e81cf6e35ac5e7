// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package breaker

import (
	"context"
	"errors"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/tomtom215/debiai-data-provider/internal/config"
	"github.com/tomtom215/debiai-data-provider/internal/project"
)

func testConfig() config.BreakerConfig {
	return config.BreakerConfig{
		Enabled:      true,
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Hour,
		MinRequests:  3,
		FailureRatio: 0.5,
	}
}

func TestBreakerOpensOnBackendFailures(t *testing.T) {
	b := New("opens", testConfig())
	ctx := context.Background()
	boom := errors.New("connection refused")

	for i := 0; i < 3; i++ {
		err := b.Do(ctx, "data", func(context.Context) error { return boom })
		if !errors.Is(err, boom) {
			t.Fatalf("call %d: error = %v, want %v", i, err, boom)
		}
	}

	if got := b.State(); got != "open" {
		t.Fatalf("State() = %q, want open", got)
	}

	called := false
	err := b.Do(ctx, "data", func(context.Context) error {
		called = true
		return nil
	})
	if called {
		t.Error("function should not run while the circuit is open")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("error = %v, want it to wrap gobreaker.ErrOpenState", err)
	}
}

func TestBreakerIgnoresLookupAndContractErrors(t *testing.T) {
	b := New("answers", testConfig())
	ctx := context.Background()

	answers := []error{
		project.NewLookupError(project.KindSample, "s9"),
		&project.SchemaError{Column: "a", Field: "category", Reason: "unknown"},
		project.NewLookupError(project.KindModel, "m9"),
		context.Canceled,
	}
	for _, want := range answers {
		err := b.Do(ctx, "data", func(context.Context) error { return want })
		if !errors.Is(err, want) {
			t.Fatalf("error = %v, want %v", err, want)
		}
	}

	if got := b.State(); got != "closed" {
		t.Errorf("State() = %q, want closed", got)
	}
}

func TestBreakerPassesSuccess(t *testing.T) {
	b := New("success", testConfig())
	var gotOp string
	err := b.Do(context.Background(), "sample_ids", func(ctx context.Context) error {
		if ctx == nil {
			t.Error("context not forwarded")
		}
		gotOp = "ran"
		return nil
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if gotOp != "ran" {
		t.Error("function was not called")
	}
	if b.Name() != "project:success" {
		t.Errorf("Name() = %q", b.Name())
	}
}

func TestBreakerAsExposureGuard(t *testing.T) {
	b := New("guarded", testConfig())
	decl := failingCounter{err: errors.New("disk gone")}
	exp := project.NewExposure("guarded", decl, b.Option())

	for i := 0; i < 3; i++ {
		if _, _, err := exp.SampleCount(context.Background()); err == nil {
			t.Fatal("SampleCount() should fail")
		}
	}
	_, _, err := exp.SampleCount(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable once the circuit opened", err)
	}
}

type failingCounter struct{ err error }

func (f failingCounter) SampleCount(context.Context) (int, error) { return 0, f.err }
