package duckdb_test

import (
	"testing"

	"ragjudge/internal/duckdb/testing"
)

// TestSchemaObjectsExist verifies core tables and views are created.
func TestSchemaObjectsExist(t *testing.T) {
	db, ctx := openTestDB(t)
	for _, table := range []string{"runs", "questions", "records"} {
		count := queryInt(t, ctx, db, "SELECT COUNT(*) FROM information_schema.tables WHERE table_name = ?", table)
		if count != 1 {
			t.Fatalf("expected table %s to exist", table)
		}
	}
	for _, view := range []string{"v_run_accuracy", "v_question_consistency"} {
		count := queryInt(t, ctx, db, "SELECT COUNT(*) FROM information_schema.tables WHERE table_name = ? AND table_type = 'VIEW'", view)
		if count != 1 {
			t.Fatalf("expected view %s to exist", view)
		}
		execSQL(t, ctx, db, "SELECT * FROM "+view+" LIMIT 0")
	}
}

// TestSchemaIsReapplicable verifies the DDL can run against an initialized database.
func TestSchemaIsReapplicable(t *testing.T) {
	db, ctx := openTestDB(t)
	execSQL(t, ctx, db, "INSERT INTO questions VALUES ('q-1', 'k-1', 'Kapan?', now())")
	duckdbtesting.ApplySchema(t, db)
	if got := queryInt(t, ctx, db, "SELECT COUNT(*) FROM questions"); got != 1 {
		t.Fatalf("expected existing rows to survive, got %d", got)
	}
}
