package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"ragjudge/internal/spec"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// Validate checks a normalized config for correctness.
func Validate(cfg *spec.Config) error {
	var issues []Issue
	add := func(field, message string) {
		issues = append(issues, Issue{Field: field, Message: message})
	}

	if cfg.Version == 0 {
		add("version", "is required")
	} else if cfg.Version != 1 {
		add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if strings.TrimSpace(cfg.Output.Dir) == "" {
		add("output.dir", "is required")
	}
	if _, err := time.LoadLocation(cfg.Output.Timezone); err != nil {
		add("output.timezone", fmt.Sprintf("unknown timezone %q", cfg.Output.Timezone))
	}

	switch cfg.Generation.Provider {
	case "gemini", "openai":
	default:
		add("generation.provider", fmt.Sprintf("unsupported provider %q (expected gemini|openai)", cfg.Generation.Provider))
	}
	if strings.TrimSpace(cfg.Generation.Model) == "" {
		add("generation.model", "is required")
	}
	if cfg.Generation.Temperature < 0 || cfg.Generation.Temperature > 2 {
		add("generation.temperature", "must be between 0 and 2")
	}

	if cfg.Retrieval.TopK < 1 {
		add("retrieval.top_k", "must be >= 1")
	}
	if strings.TrimSpace(cfg.Retrieval.Collection) == "" {
		add("retrieval.collection", "is required")
	}
	if cfg.Retrieval.VectorSize < 1 {
		add("retrieval.vector_size", "must be >= 1")
	}
	if cfg.Retrieval.ChunkWords < 1 {
		add("retrieval.chunk_words", "must be >= 1")
	}

	if cfg.Judge.Attempts < 1 {
		add("judge.attempts", "must be >= 1")
	}
	if cfg.Judge.BaseBackoffMs < 0 {
		add("judge.base_backoff_ms", "must be >= 0")
	}
	validateUnit(add, "judge.correct_threshold", cfg.Judge.CorrectThreshold)
	validateUnit(add, "judge.uncertain_threshold", cfg.Judge.UncertainThreshold)
	if cfg.Judge.UncertainThreshold > cfg.Judge.CorrectThreshold {
		add("judge.uncertain_threshold", "must not exceed judge.correct_threshold")
	}

	validateUnit(add, "batch.threshold", cfg.Batch.Threshold)
	if cfg.Batch.BatchSize < 1 {
		add("batch.batch_size", "must be >= 1")
	}
	if cfg.Batch.CooldownSeconds != nil && *cfg.Batch.CooldownSeconds < 0 {
		add("batch.cooldown_seconds", "must be >= 0")
	}

	validateUnit(add, "analysis.problematic_score_diff", cfg.Analysis.ProblematicScoreDiff)
	if strings.TrimSpace(cfg.Analysis.FallbackCategory) == "" {
		add("analysis.fallback_category", "is required")
	}
	names := map[string]struct{}{}
	for i, rule := range cfg.Analysis.Categories {
		fieldPrefix := fmt.Sprintf("analysis.categories[%d]", i)
		name := strings.TrimSpace(rule.Name)
		if name == "" {
			add(fieldPrefix+".name", "is required")
		} else if _, exists := names[name]; exists {
			add("analysis.categories.name", fmt.Sprintf("duplicate name %q", name))
		} else {
			names[name] = struct{}{}
		}
		if len(rule.Keywords) == 0 {
			add(fieldPrefix+".keywords", "at least one keyword is required")
		}
		for j, keyword := range rule.Keywords {
			if strings.TrimSpace(keyword) == "" {
				add(fmt.Sprintf("%s.keywords[%d]", fieldPrefix, j), "must not be blank")
			}
		}
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

func validateUnit(add func(field, message string), field string, value float64) {
	if value < 0 || value > 1 {
		add(field, "must be between 0 and 1")
	}
}
