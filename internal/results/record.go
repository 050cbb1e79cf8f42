// Package results defines the persisted result table written by batch runs
// and read by every analyzer.
package results

import (
	"errors"

	"ragjudge/internal/judge"
)

// Column names of the batch result file, in order.
const (
	ColQuestion   = "pertanyaan"
	ColGold       = "expected"
	ColRAGAnswer  = "ragAI"
	ColRAGCorrect = "rag_benar"
	ColRAGScore   = "rag_score"
	ColRAGVerdict = "rag_verdict"
	ColRAGReason  = "rag_reason"
	ColOGAnswer   = "ogAI"
	ColOGCorrect  = "og_benar"
	ColOGScore    = "og_score"
	ColOGVerdict  = "og_verdict"
	ColOGReason   = "og_reason"
)

// Header is the exact header row of a batch result file.
var Header = []string{
	ColQuestion, ColGold,
	ColRAGAnswer, ColRAGCorrect, ColRAGScore, ColRAGVerdict, ColRAGReason,
	ColOGAnswer, ColOGCorrect, ColOGScore, ColOGVerdict, ColOGReason,
}

// ErrMissingColumns reports a result file lacking a required column.
var ErrMissingColumns = errors.New("missing required columns")

// Side is one system's answer and judgment within a record.
type Side struct {
	Answer  string
	Correct bool
	Score   float64
	// Scored is false when the stored score was absent or unparseable.
	Scored  bool
	Verdict judge.Label
	Reason  string
}

// Record is one judged question from one batch run.
type Record struct {
	Question string
	Gold     string
	RAG      Side
	OG       Side
}

// NewSide applies the correctness rule to a judged answer.
func NewSide(answer string, v judge.Verdict, threshold float64) Side {
	return Side{
		Answer:  answer,
		Correct: judge.IsCorrect(v, threshold),
		Score:   v.Score,
		Scored:  true,
		Verdict: v.Label,
		Reason:  v.Reason,
	}
}

// Schema records which optional columns a loaded table carried.
type Schema struct {
	HasGold     bool
	HasAnswers  bool
	HasScores   bool
	HasVerdicts bool
	HasReasons  bool
}

// Table is the ordered records of one batch run.
type Table struct {
	Name    string
	Records []Record
	Schema  Schema
	// Dropped counts rows discarded for unparseable correctness flags.
	Dropped int
}
