// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/tomtom215/debiai-data-provider/internal/logging"
	"github.com/tomtom215/debiai-data-provider/internal/metrics"
)

// Supported database/sql driver names.
const (
	DriverDuckDB = "duckdb"
	DriverPgx    = "pgx"
)

// ErrUnsupportedDriver is returned by Open for unknown driver names.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// ErrConnection marks errors caused by a lost or refused connection.
var ErrConnection = errors.New("database connection error")

// DB wraps a database/sql pool with query metrics and value normalization.
type DB struct {
	conn   *sql.DB
	driver string
}

// Open connects to dsn with the given driver and verifies the connection.
// An empty DuckDB dsn opens an in-memory database shared by the pool.
func Open(ctx context.Context, driver, dsn string, maxOpenConns int) (*DB, error) {
	switch driver {
	case DriverDuckDB, DriverPgx:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	db := &DB{conn: conn, driver: driver}
	db.configureConnectionPool(maxOpenConns)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.Ping(pingCtx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}

	logging.Debug().Str("driver", driver).Int("max_open_conns", maxOpenConns).Msg("Database connection opened")
	return db, nil
}

// configureConnectionPool sets connection pool parameters
func (db *DB) configureConnectionPool(maxOpenConns int) {
	if maxOpenConns <= 0 {
		maxOpenConns = runtime.NumCPU()
	}
	db.conn.SetMaxOpenConns(maxOpenConns)
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// Driver returns the driver name the pool was opened with.
func (db *DB) Driver() string { return db.driver }

// Ping verifies the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return classify(db.conn.PingContext(ctx))
}

// Close closes the pool.
func (db *DB) Close() error {
	if db == nil || db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// Exec runs a statement that returns no rows. op labels the metrics.
func (db *DB) Exec(ctx context.Context, op, query string, args ...any) error {
	start := time.Now()
	_, err := db.conn.ExecContext(ctx, query, args...)
	err = classify(err)
	metrics.RecordDBQuery(db.driver, op, time.Since(start), err)
	return err
}

// ScanFunc scans the current row of rows.
type ScanFunc[T any] func(*sql.Rows) (T, error)

// QueryAndScan executes a query and scans all rows using the provided scan function
func QueryAndScan[T any](ctx context.Context, db *DB, op, query string, args []any, scan ScanFunc[T]) ([]T, error) {
	start := time.Now()
	results, err := queryAndScan(ctx, db.conn, query, args, scan)
	err = classify(err)
	metrics.RecordDBQuery(db.driver, op, time.Since(start), err)
	return results, err
}

func queryAndScan[T any](ctx context.Context, conn *sql.DB, query string, args []any, scan ScanFunc[T]) ([]T, error) {
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeWithLog(rows, nil, "rows")

	var results []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// QueryInt runs a query returning a single integer, e.g. a COUNT.
func (db *DB) QueryInt(ctx context.Context, op, query string, args ...any) (int64, error) {
	start := time.Now()
	var n sql.NullInt64
	err := db.conn.QueryRowContext(ctx, query, args...).Scan(&n)
	err = classify(err)
	metrics.RecordDBQuery(db.driver, op, time.Since(start), err)
	if err != nil {
		return 0, err
	}
	return n.Int64, nil
}

// ColumnInfo describes one column of a result set.
type ColumnInfo struct {
	Name string
	// DatabaseType is the upper-case type name reported by the driver,
	// e.g. VARCHAR, BIGINT, INT8, TEXT.
	DatabaseType string
}

// Describe returns the columns of query without reading any row.
func (db *DB) Describe(ctx context.Context, query string, args ...any) ([]ColumnInfo, error) {
	start := time.Now()
	cols, err := db.describe(ctx, query, args...)
	err = classify(err)
	metrics.RecordDBQuery(db.driver, "describe", time.Since(start), err)
	return cols, err
}

func (db *DB) describe(ctx context.Context, query string, args ...any) ([]ColumnInfo, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeWithLog(rows, nil, "rows")

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}
	cols := make([]ColumnInfo, len(types))
	for i, ct := range types {
		cols[i] = ColumnInfo{Name: ct.Name(), DatabaseType: ct.DatabaseTypeName()}
	}
	return cols, nil
}

// classify wraps connection failures with ErrConnection.
func classify(err error) error {
	if err == nil || errors.Is(err, ErrConnection) {
		return err
	}
	if isConnectionError(err) {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	return err
}
