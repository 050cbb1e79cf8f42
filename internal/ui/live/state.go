package live

import (
	"time"

	"ragjudge/internal/judge"
	"ragjudge/internal/runner"
)

// Status is the display state of one question row.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusAnswering Status = "answering"
	StatusJudging   Status = "judging"
	StatusDone      Status = "done"
	StatusDegraded  Status = "degraded"
)

// QuestionRow holds UI state for a single question.
type QuestionRow struct {
	Index      int
	Text       string
	Status     Status
	StartedAt  time.Time
	FinishedAt time.Time
	Judged     bool
	RAGCorrect bool
	OGCorrect  bool
	RAGVerdict judge.Label
	OGVerdict  judge.Label
}

// StatusCounts aggregates counts by status bucket.
type StatusCounts struct {
	Queued     int
	InFlight   int
	Done       int
	Degraded   int
	RAGCorrect int
	OGCorrect  int
}

// State captures the live UI state for a batch run.
type State struct {
	RunID      string
	OutputPath string
	Total      int
	StartedAt  time.Time
	// Cooldown is the seconds left in the current pause; 0 when running.
	Cooldown  int
	Cooldowns int
	LastEvent string
	Rows      []QuestionRow
	Counts    StatusCounts
	Summary   *runner.Summary
}
