package live

import "ragjudge/internal/runner"

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventRunStart signals the start of a run.
	EventRunStart EventKind = iota
	// EventQuestion delivers a question status update.
	EventQuestion
	// EventCooldown reports the seconds left in a cooldown.
	EventCooldown
	// EventRunEnd signals run completion.
	EventRunEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind       EventKind
	RunID      string
	OutputPath string
	Total      int
	Remaining  int
	Question   runner.QuestionEvent
	Summary    runner.Summary
}
