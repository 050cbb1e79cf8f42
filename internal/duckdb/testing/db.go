// Package duckdbtesting provides DuckDB fixtures for tests.
package duckdbtesting

import (
	"database/sql"
	"testing"
	"time"

	"ragjudge/internal/duckdb"
	"ragjudge/internal/results"
	"ragjudge/internal/testutil"
)

// IngestedAt is the timestamp recorded for runs loaded through Ingest.
var IngestedAt = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

const timeout = 2 * time.Second

// Open opens a bare DuckDB connection without the schema. It is closed when
// the test ends.
func Open(t testing.TB, dsn string) *sql.DB {
	t.Helper()
	conn, err := sql.Open(duckdb.DriverName, dsn)
	if err != nil {
		t.Fatalf("open duckdb: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	if err := conn.PingContext(testutil.Context(t, timeout)); err != nil {
		t.Fatalf("ping duckdb: %v", err)
	}
	return conn
}

// OpenStore opens an in-memory results store with the schema applied.
func OpenStore(t testing.TB) *sql.DB {
	t.Helper()
	db, err := duckdb.Open(testutil.Context(t, timeout), ":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// ApplySchema re-executes the schema DDL on db.
func ApplySchema(t testing.TB, db *sql.DB) {
	t.Helper()
	if _, err := db.ExecContext(testutil.Context(t, timeout), duckdb.SchemaDDL()); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
}

// Ingest loads each table into db as its own run, stamped with IngestedAt.
func Ingest(t testing.TB, db *sql.DB, tables ...results.Table) []duckdb.IngestResult {
	t.Helper()
	ctx := testutil.Context(t, timeout)
	out := make([]duckdb.IngestResult, 0, len(tables))
	for _, table := range tables {
		res, err := duckdb.IngestTable(ctx, db, table, "", IngestedAt)
		if err != nil {
			t.Fatalf("ingest %s: %v", table.Name, err)
		}
		out = append(out, res)
	}
	return out
}
