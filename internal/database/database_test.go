// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/duckdb/duckdb-go/v2"
	"github.com/google/go-cmp/cmp"
)

// testDBSemaphore limits concurrent DuckDB usage; concurrent CGO calls
// from parallel tests can hang under CI resource pressure.
var testDBSemaphore = make(chan struct{}, 1)

// setupTestDB opens an in-memory DuckDB database with a samples table.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db, err := Open(ctx, DriverDuckDB, "", 2)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { closeQuietly(db) })

	stmts := []string{
		`CREATE TABLE samples ("Data ID" VARCHAR, context DOUBLE, label INTEGER, created DATE)`,
		`INSERT INTO samples VALUES ('image-1', 0.28, 8, DATE '2024-01-01'), ('image-2', 0.388, 7, DATE '2024-01-02'), ('image-3', 0.5, 19, NULL)`,
	}
	for _, s := range stmts {
		if err := db.Exec(ctx, "setup", s); err != nil {
			t.Fatalf("Exec(%q) error = %v", s, err)
		}
	}
	return db
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "", 0)
	if !errors.Is(err, ErrUnsupportedDriver) {
		t.Errorf("Open(mysql) error = %v, want ErrUnsupportedDriver", err)
	}
}

func TestPing(t *testing.T) {
	db := setupTestDB(t)
	if err := db.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := db.Ping(context.Background()); err == nil {
		t.Error("Ping() on a closed pool should fail")
	}
}

func TestQueryInt(t *testing.T) {
	db := setupTestDB(t)
	n, err := db.QueryInt(context.Background(), "count", "SELECT COUNT(*) FROM samples")
	if err != nil {
		t.Fatalf("QueryInt() error = %v", err)
	}
	if n != 3 {
		t.Errorf("QueryInt() = %d, want 3", n)
	}
	if db.Driver() != DriverDuckDB {
		t.Errorf("Driver() = %q", db.Driver())
	}
}

func TestQueryAndScanNormalizes(t *testing.T) {
	db := setupTestDB(t)
	rows, err := QueryAndScan(context.Background(), db, "data",
		`SELECT "Data ID", context, label, created FROM samples WHERE "Data ID" IN ($1, $2) ORDER BY "Data ID"`,
		[]any{"image-1", "image-3"},
		func(r *sql.Rows) ([]any, error) { return ScanRow(r, 4) },
	)
	if err != nil {
		t.Fatalf("QueryAndScan() error = %v", err)
	}

	want := [][]any{
		{"image-1", 0.28, int64(8), "2024-01-01"},
		{"image-3", 0.5, int64(19), nil},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestDescribe(t *testing.T) {
	db := setupTestDB(t)
	cols, err := db.Describe(context.Background(), "SELECT * FROM samples LIMIT 0")
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	if diff := cmp.Diff([]string{"Data ID", "context", "label", "created"}, names); diff != "" {
		t.Errorf("column names mismatch (-want +got):\n%s", diff)
	}
	if cols[1].DatabaseType != "DOUBLE" {
		t.Errorf("context type = %q, want DOUBLE", cols[1].DatabaseType)
	}
}

func TestExecErrorIsReturned(t *testing.T) {
	db := setupTestDB(t)
	if err := db.Exec(context.Background(), "setup", "SELECT * FROM missing_table"); err == nil {
		t.Error("Exec() on a missing table should fail")
	}
}

func TestNormalizeValue(t *testing.T) {
	ts := time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"bytes", []byte("abc"), "abc"},
		{"int32", int32(7), int64(7)},
		{"uint16", uint16(9), int64(9)},
		{"float32", float32(0.5), 0.5},
		{"date", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "2024-01-01"},
		{"timestamp", ts, "2024-01-01T12:30:00Z"},
		{"big int", big.NewInt(42), int64(42)},
		{"huge int", new(big.Int).Lsh(big.NewInt(1), 70), "1180591620717411303424"},
		{"decimal", decimal(1.25), 1.25},
		{"stringer", stringer("uuid"), "uuid"},
		{"list", []any{int32(1), nil, []byte("b")}, []any{int64(1), nil, "b"}},
		{"struct", map[string]any{"a": int32(1), "when": time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
			map[string]any{"a": int64(1), "when": "2024-01-01"}},
		{"nested", []any{map[string]any{"xs": []any{uint8(2)}}}, []any{map[string]any{"xs": []any{int64(2)}}}},
		{"map", duckdb.Map{int32(1): "one", "k": float32(0.5)}, map[string]any{"1": "one", "k": 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, NormalizeValue(tt.in)); diff != "" {
				t.Errorf("NormalizeValue mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

type decimal float64

func (d decimal) Float64() float64 { return float64(d) }

type stringer string

func (s stringer) String() string { return string(s) }

func TestClassify(t *testing.T) {
	if classify(nil) != nil {
		t.Error("classify(nil) should be nil")
	}
	if err := classify(errors.New("syntax error")); errors.Is(err, ErrConnection) {
		t.Error("query errors should not be connection errors")
	}
	for _, err := range []error{
		driver.ErrBadConn,
		fmt.Errorf("dial tcp 127.0.0.1:5432: connect: connection refused"),
		errors.New("sql: database is closed"),
	} {
		if !errors.Is(classify(err), ErrConnection) {
			t.Errorf("classify(%v) should wrap ErrConnection", err)
		}
	}
}
