package live

import (
	"fmt"
	"time"

	"ragjudge/internal/runner"
)

// Apply folds any UI event into the state.
func Apply(state State, event Event, now time.Time) State {
	switch event.Kind {
	case EventRunStart:
		state = Start(state, event.RunID, event.OutputPath, event.Total, now)
	case EventQuestion:
		state = Reduce(state, event.Question)
	case EventCooldown:
		state = ReduceCooldown(state, event.Remaining)
	case EventRunEnd:
		summary := event.Summary
		state.Summary = &summary
		state.Cooldown = 0
		if summary.Interrupted {
			state.LastEvent = fmt.Sprintf("Run interrupted after %d of %d questions", summary.Completed, summary.Total)
		} else {
			state.LastEvent = fmt.Sprintf("Run finished: RAG %d/%d, OG %d/%d", summary.RAGCorrect, summary.Total, summary.OGCorrect, summary.Total)
		}
	}
	return state
}

// Start resets the state for a new run with every question queued.
func Start(state State, runID, outputPath string, total int, now time.Time) State {
	state = State{RunID: runID, OutputPath: outputPath, Total: total, StartedAt: now}
	if total > 0 {
		state.Rows = make([]QuestionRow, total)
		for i := range state.Rows {
			state.Rows[i] = QuestionRow{Index: i, Status: StatusQueued}
		}
	}
	state.Counts = recount(state.Rows)
	return state
}

// Reduce applies a question event to the UI state.
func Reduce(state State, event runner.QuestionEvent) State {
	state = ensureRow(state, event.Index)
	state = applyQuestionEvent(state, event)
	state.Counts = recount(state.Rows)
	if message := formatLastEvent(event); message != "" {
		state.LastEvent = message
	}
	return state
}

// ReduceCooldown records cooldown progress. A zero marks the end of a pause.
func ReduceCooldown(state State, remaining int) State {
	if remaining > 0 && state.Cooldown == 0 {
		state.Cooldowns++
	}
	if remaining < 0 {
		remaining = 0
	}
	state.Cooldown = remaining
	if remaining > 0 {
		state.LastEvent = fmt.Sprintf("Cooldown %ds", remaining)
	} else {
		state.LastEvent = "Cooldown finished"
	}
	return state
}

// ensureRow grows the state rows to include the target index.
func ensureRow(state State, index int) State {
	if index < 0 || index < len(state.Rows) {
		return state
	}
	rows := make([]QuestionRow, index+1)
	copy(rows, state.Rows)
	for i := len(state.Rows); i < len(rows); i++ {
		rows[i] = QuestionRow{Index: i, Status: StatusQueued}
	}
	state.Rows = rows
	return state
}

// applyQuestionEvent updates a row with the given event.
func applyQuestionEvent(state State, event runner.QuestionEvent) State {
	if event.Index < 0 || event.Index >= len(state.Rows) {
		return state
	}
	if event.Total > state.Total {
		state.Total = event.Total
	}
	row := state.Rows[event.Index]
	if row.Text == "" {
		row.Text = event.Question
	}
	switch event.Type {
	case runner.QuestionAnswering:
		row.Status = StatusAnswering
		if row.StartedAt.IsZero() {
			row.StartedAt = event.EmittedAt
		}
	case runner.QuestionJudging:
		row.Status = StatusJudging
	case runner.QuestionDone, runner.QuestionDegraded:
		row.Status = StatusDone
		if event.Type == runner.QuestionDegraded {
			row.Status = StatusDegraded
		}
		row.FinishedAt = event.EmittedAt
		if rec := event.Record; rec != nil {
			row.Judged = true
			row.RAGCorrect = rec.RAG.Correct
			row.OGCorrect = rec.OG.Correct
			row.RAGVerdict = rec.RAG.Verdict
			row.OGVerdict = rec.OG.Verdict
		}
	}
	state.Rows[event.Index] = row
	return state
}

// recount recomputes status counts for the current rows.
func recount(rows []QuestionRow) StatusCounts {
	var counts StatusCounts
	for _, row := range rows {
		switch row.Status {
		case StatusQueued:
			counts.Queued++
		case StatusAnswering, StatusJudging:
			counts.InFlight++
		case StatusDone, StatusDegraded:
			counts.Done++
			if row.Status == StatusDegraded {
				counts.Degraded++
			}
			if row.RAGCorrect {
				counts.RAGCorrect++
			}
			if row.OGCorrect {
				counts.OGCorrect++
			}
		}
	}
	return counts
}

// formatLastEvent creates a short footer message for the event.
func formatLastEvent(event runner.QuestionEvent) string {
	switch event.Type {
	case runner.QuestionDone:
		return fmt.Sprintf("Q%d judged", event.Index+1)
	case runner.QuestionDegraded:
		return fmt.Sprintf("Q%d judged with provider error", event.Index+1)
	}
	return ""
}
