package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RunAccuracy is one row of the v_run_accuracy view.
type RunAccuracy struct {
	RunID       string
	Name        string
	IngestedAt  time.Time
	Total       int
	RAGCorrect  int
	OGCorrect   int
	BothCorrect int
	RAGPercent  float64
	OGPercent   float64
}

// QuestionConsistency is one row of the v_question_consistency view.
type QuestionConsistency struct {
	QuestionID string
	Text       string
	Runs       int
	RAGCorrect int
	OGCorrect  int
}

// ListRunAccuracy returns per-run accuracy ordered by run name.
func ListRunAccuracy(ctx context.Context, db *sql.DB) ([]RunAccuracy, error) {
	rows, err := db.QueryContext(ctx, `SELECT run_id, name, ingested_at, total, rag_correct, og_correct, both_correct, rag_percent, og_percent
		FROM v_run_accuracy ORDER BY name, ingested_at`)
	if err != nil {
		return nil, fmt.Errorf("query run accuracy: %w", err)
	}
	defer rows.Close()
	var out []RunAccuracy
	for rows.Next() {
		var r RunAccuracy
		if err := rows.Scan(&r.RunID, &r.Name, &r.IngestedAt, &r.Total, &r.RAGCorrect, &r.OGCorrect, &r.BothCorrect, &r.RAGPercent, &r.OGPercent); err != nil {
			return nil, fmt.Errorf("scan run accuracy: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListQuestionConsistency returns questions seen in more than one run, least
// stable first.
func ListQuestionConsistency(ctx context.Context, db *sql.DB) ([]QuestionConsistency, error) {
	rows, err := db.QueryContext(ctx, `SELECT question_id, text, runs, rag_correct, og_correct
		FROM v_question_consistency
		WHERE runs > 1
		ORDER BY abs(CAST(rag_correct AS DOUBLE) * 100 / runs - 50), text`)
	if err != nil {
		return nil, fmt.Errorf("query question consistency: %w", err)
	}
	defer rows.Close()
	var out []QuestionConsistency
	for rows.Next() {
		var q QuestionConsistency
		if err := rows.Scan(&q.QuestionID, &q.Text, &q.Runs, &q.RAGCorrect, &q.OGCorrect); err != nil {
			return nil, fmt.Errorf("scan question consistency: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}
