package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ragjudge/internal/results"
)

// IngestResult describes the outcome of ingesting one result table.
type IngestResult struct {
	RunID   string
	RunKey  string
	Name    string
	Records int
	// Created is false when a run with identical content already existed.
	Created bool
}

// UpsertQuestion inserts a question by its fingerprint key and returns its id.
func UpsertQuestion(ctx context.Context, db execQuerier, text string) (string, string, error) {
	if ctx == nil {
		return "", "", errors.New("duckdb: context is nil")
	}
	if db == nil {
		return "", "", errors.New("duckdb: db is nil")
	}
	key, err := QuestionKey(text)
	if err != nil {
		return "", "", err
	}
	if _, err := db.ExecContext(
		ctx,
		`INSERT INTO questions (question_id, question_key, text, created_at)
		 VALUES (?, ?, ?, now())
		 ON CONFLICT (question_key) DO NOTHING`,
		uuid.NewString(),
		key,
		text,
	); err != nil {
		return "", "", fmt.Errorf("upsert question: %w", err)
	}
	outID, err := lookupID(ctx, db, "questions", "question_id", "question_key", key)
	if err != nil {
		return "", "", fmt.Errorf("lookup question id: %w", err)
	}
	return outID, key, nil
}

// IngestTable stores a result table as a run with its records. Ingesting the
// same content twice is a no-op that returns the existing run.
func IngestTable(ctx context.Context, db *sql.DB, table results.Table, sourcePath string, now time.Time) (IngestResult, error) {
	if ctx == nil {
		return IngestResult{}, errors.New("duckdb: context is nil")
	}
	if db == nil {
		return IngestResult{}, errors.New("duckdb: db is nil")
	}
	key, err := RunKey(table)
	if err != nil {
		return IngestResult{}, fmt.Errorf("fingerprint run: %w", err)
	}
	out := IngestResult{RunKey: key, Name: table.Name, Records: len(table.Records)}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return IngestResult{}, fmt.Errorf("begin ingest: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := lookupID(ctx, tx, "runs", "run_id", "run_key", key)
	switch {
	case err == nil:
		out.RunID = existing
		return out, nil
	case !errors.Is(err, sql.ErrNoRows):
		return IngestResult{}, fmt.Errorf("lookup run: %w", err)
	}

	out.RunID = uuid.NewString()
	out.Created = true
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO runs (run_id, run_key, name, source_path, total, dropped, has_scores, has_verdicts, ingested_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		out.RunID,
		key,
		table.Name,
		nullableString(&sourcePath),
		len(table.Records),
		table.Dropped,
		table.Schema.HasScores,
		table.Schema.HasVerdicts,
		now.UTC(),
	); err != nil {
		return IngestResult{}, fmt.Errorf("insert run: %w", err)
	}
	for i, rec := range table.Records {
		questionID, _, err := UpsertQuestion(ctx, tx, rec.Question)
		if err != nil {
			return IngestResult{}, err
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO records (
			  run_id, row_index, question_id, gold,
			  rag_answer, rag_correct, rag_score, rag_verdict, rag_reason,
			  og_answer, og_correct, og_score, og_verdict, og_reason
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			out.RunID, i, questionID, nullableString(&rec.Gold),
			nullableString(&rec.RAG.Answer), rec.RAG.Correct, nullableScore(rec.RAG), nullableVerdict(rec.RAG), nullableString(&rec.RAG.Reason),
			nullableString(&rec.OG.Answer), rec.OG.Correct, nullableScore(rec.OG), nullableVerdict(rec.OG), nullableString(&rec.OG.Reason),
		); err != nil {
			return IngestResult{}, fmt.Errorf("insert record %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return IngestResult{}, fmt.Errorf("commit ingest: %w", err)
	}
	return out, nil
}
