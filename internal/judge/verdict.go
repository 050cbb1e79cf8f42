// Package judge grades candidate answers against gold answers using an LLM
// with a deterministic similarity fallback.
package judge

import "strings"

// Label is the three-valued correctness judgment.
type Label string

const (
	Correct   Label = "CORRECT"
	Incorrect Label = "INCORRECT"
	Uncertain Label = "UNCERTAIN"
)

// Wire values used in prompts and persisted result files.
const (
	WireCorrect   = "BENAR"
	WireIncorrect = "SALAH"
	WireUncertain = "TIDAK PASTI"
)

// Wire returns the persisted form of the label.
func (l Label) Wire() string {
	switch l {
	case Correct:
		return WireCorrect
	case Incorrect:
		return WireIncorrect
	default:
		return WireUncertain
	}
}

// ParseWire maps a persisted verdict string to a label, ignoring case and surrounding space.
func ParseWire(value string) (Label, bool) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case WireCorrect:
		return Correct, true
	case WireIncorrect:
		return Incorrect, true
	case WireUncertain:
		return Uncertain, true
	default:
		return "", false
	}
}

// Source records which path produced a verdict.
type Source string

const (
	SourceLLM         Source = "llm"
	SourceHeuristic   Source = "heuristic"
	SourceNoGold      Source = "no_gold"
	SourceUnavailable Source = "unavailable"
)

// Verdict is the outcome of judging one candidate answer.
type Verdict struct {
	Label  Label
	Score  float64
	Reason string
	Source Source
}

// Reasons attached to non-model verdicts.
const (
	ReasonNoGold      = "no gold answer"
	ReasonUnavailable = "LLM judge unavailable"
	ReasonHeuristic   = "heuristic similarity fallback"
	ReasonMissing     = "no reason given"
)

// IsCorrect applies the run-level correctness rule to a verdict.
func IsCorrect(v Verdict, threshold float64) bool {
	return v.Label == Correct || v.Score >= threshold
}
