package duckdb_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"ragjudge/internal/duckdb/testing"
	"ragjudge/internal/testutil"
)

// openTestDB opens an in-memory store and a context bounded to two seconds.
func openTestDB(t *testing.T) (*sql.DB, context.Context) {
	t.Helper()
	return duckdbtesting.OpenStore(t), testutil.Context(t, 2*time.Second)
}

func execSQL(t *testing.T, ctx context.Context, db *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}

// queryInt scans a single integer result.
func queryInt(t *testing.T, ctx context.Context, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var out int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&out); err != nil {
		t.Fatalf("query %q: %v", query, err)
	}
	return out
}
