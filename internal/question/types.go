// Package question loads the test cases a batch run evaluates.
package question

import "errors"

// ErrNoTestCases reports an input file with no usable questions.
var ErrNoTestCases = errors.New("no test cases")

// TestCase is one question with an optional gold answer.
type TestCase struct {
	Question string `json:"question" yaml:"question"`
	Gold     string `json:"gold,omitempty" yaml:"gold,omitempty"`
}

// Schema describes which columns were detected in a tabular input.
type Schema struct {
	HasHeader      bool
	QuestionColumn int
	// GoldColumn is -1 when no gold column was recognized.
	GoldColumn int
}

// HasGold reports whether the input carries gold answers.
func (s Schema) HasGold() bool {
	return s.GoldColumn >= 0
}

// Spec is the structured YAML/JSON alternative to a CSV input.
type Spec struct {
	Version int        `json:"version" yaml:"version"`
	Cases   []TestCase `json:"cases" yaml:"cases"`
}
