// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// capture redirects the global logger to a buffer for the duration of the test.
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := Logger()
	prevLevel := zerolog.GlobalLevel()
	SetLogger(NewTestLogger(&buf))
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() {
		SetLogger(previous)
		zerolog.SetGlobalLevel(prevLevel)
	})
	return &buf
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("log output is not a single JSON object: %v (%q)", err, buf.String())
	}
	return entry
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{" ERROR ", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"off", zerolog.Disabled},
		{"nonsense", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestInit_ConsoleFormat(t *testing.T) {
	previous := Logger()
	prevLevel := zerolog.GlobalLevel()
	defer func() {
		SetLogger(previous)
		zerolog.SetGlobalLevel(prevLevel)
	}()

	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "console", Output: &buf})
	Debug().Str("project", "MyProject").Msg("console line")

	out := buf.String()
	if !strings.Contains(out, "console line") || strings.HasPrefix(out, "{") {
		t.Errorf("expected human readable output, got %q", out)
	}
}

func TestCtx_AddsRequestAndProject(t *testing.T) {
	buf := capture(t)

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithProject(ctx, "MyProject")
	Ctx(ctx).Info().Msg("hello")

	entry := decode(t, buf)
	if entry["request_id"] != "req-1" {
		t.Errorf("request_id = %v, want req-1", entry["request_id"])
	}
	if entry["project"] != "MyProject" {
		t.Errorf("project = %v, want MyProject", entry["project"])
	}
	if entry["message"] != "hello" {
		t.Errorf("message = %v, want hello", entry["message"])
	}
}

func TestCtx_EmptyContext(t *testing.T) {
	buf := capture(t)

	Ctx(context.Background()).Warn().Msg("bare")
	entry := decode(t, buf)
	if _, ok := entry["request_id"]; ok {
		t.Error("request_id should be absent without a request context")
	}
}

func TestGenerateRequestID_Unique(t *testing.T) {
	a, b := GenerateRequestID(), GenerateRequestID()
	if a == b || len(a) != 36 {
		t.Errorf("GenerateRequestID() = %q, %q", a, b)
	}
}

func TestSlogHandler(t *testing.T) {
	buf := capture(t)

	logger := slog.New(NewSlogHandler(Logger())).
		With("service", "http-server").
		WithGroup("event")
	logger.Error("service failed", "restarts", 3, "err", errors.New("boom"))

	entry := decode(t, buf)
	if entry["level"] != "error" {
		t.Errorf("level = %v, want error", entry["level"])
	}
	if entry["service"] != "http-server" {
		t.Errorf("service = %v, want http-server", entry["service"])
	}
	if entry["event.restarts"] != float64(3) {
		t.Errorf("event.restarts = %v, want 3", entry["event.restarts"])
	}
	if entry["event.err"] != "boom" {
		t.Errorf("event.err = %v, want boom", entry["event.err"])
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	h := NewSlogHandler(NewTestLogger(&bytes.Buffer{}).Level(zerolog.WarnLevel))
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled on a warn-level logger")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled on a warn-level logger")
	}
}
