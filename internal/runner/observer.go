package runner

import (
	"time"

	"ragjudge/internal/results"
)

// QuestionEventType identifies a question status update for observers.
type QuestionEventType string

const (
	// QuestionAnswering marks both providers being called.
	QuestionAnswering QuestionEventType = "answering"
	// QuestionJudging marks both answers being judged.
	QuestionJudging QuestionEventType = "judging"
	// QuestionDone marks a recorded question.
	QuestionDone QuestionEventType = "done"
	// QuestionDegraded marks a recorded question where a provider failed.
	QuestionDegraded QuestionEventType = "degraded"
)

// QuestionEvent carries a single status update for a question.
type QuestionEvent struct {
	Index     int
	Total     int
	Question  string
	Type      QuestionEventType
	Record    *results.Record
	Error     string
	EmittedAt time.Time
}

// RunObserver receives run lifecycle events for UI or logging.
type RunObserver interface {
	// OnRunStart signals the start of a run.
	OnRunStart(runID string, outputPath string, total int)
	// OnQuestionEvent delivers a question status update.
	OnQuestionEvent(event QuestionEvent)
	// OnCooldown reports seconds remaining in a cooldown; 0 marks its end.
	OnCooldown(remaining int)
	// OnRunEnd signals run completion.
	OnRunEnd(summary Summary)
}

type multiObserver []RunObserver

// Observers fans events out to every non-nil observer.
func Observers(observers ...RunObserver) RunObserver {
	var out multiObserver
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

func (m multiObserver) OnRunStart(runID, outputPath string, total int) {
	for _, o := range m {
		o.OnRunStart(runID, outputPath, total)
	}
}

func (m multiObserver) OnQuestionEvent(event QuestionEvent) {
	for _, o := range m {
		o.OnQuestionEvent(event)
	}
}

func (m multiObserver) OnCooldown(remaining int) {
	for _, o := range m {
		o.OnCooldown(remaining)
	}
}

func (m multiObserver) OnRunEnd(summary Summary) {
	for _, o := range m {
		o.OnRunEnd(summary)
	}
}
