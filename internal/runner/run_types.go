package runner

import (
	"context"
	"time"

	"ragjudge/internal/answer"
	"ragjudge/internal/judge"
	"ragjudge/internal/metrics"
	"ragjudge/internal/ratelimit"
	"ragjudge/internal/vcs"
)

// Evaluator grades one candidate answer.
type Evaluator interface {
	Evaluate(ctx context.Context, question, gold, answer string) judge.Verdict
}

// Params are the run-level settings of a batch.
type Params struct {
	InputPath       string
	OutputDir       string
	TopK            int
	Threshold       float64
	BatchSize       int
	CooldownSeconds int
	// Location stamps the output file name; nil uses the local zone.
	Location *time.Location
	// Documents is copied into the summary for provenance.
	Documents *vcs.Snapshot
}

// Dependencies are the collaborators a batch drives.
type Dependencies struct {
	RAG      answer.Provider
	OG       answer.Provider
	Judge    Evaluator
	Observer RunObserver
	Metrics  *metrics.Run
	Now      func() time.Time
	Sleep    ratelimit.SleepFunc
	RunID    func(now time.Time) (string, error)
}

// Summary describes a finished or interrupted batch run.
type Summary struct {
	RunID       string    `json:"run_id"`
	InputPath   string    `json:"input_path,omitempty"`
	OutputPath  string    `json:"output_path"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	Total       int       `json:"total"`
	Completed   int       `json:"completed"`
	Degraded    int       `json:"degraded"`
	RAGCorrect  int       `json:"rag_correct"`
	OGCorrect   int       `json:"og_correct"`
	Checkpoints int       `json:"checkpoints"`
	Cooldowns   int       `json:"cooldowns"`
	Threshold   float64   `json:"threshold"`
	TopK        int       `json:"top_k"`
	BatchSize   int       `json:"batch_size"`
	Cooldown    int       `json:"cooldown_seconds"`
	Interrupted bool      `json:"interrupted"`
	// Documents is the git state of the knowledge base, when it is tracked.
	Documents *vcs.Snapshot `json:"documents,omitempty"`
}
