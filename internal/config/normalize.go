package config

import (
	"strings"

	"ragjudge/internal/spec"
)

// Normalize fills unset fields with defaults.
func Normalize(cfg *spec.Config) {
	if strings.TrimSpace(cfg.Output.Dir) == "" {
		cfg.Output.Dir = DefaultOutputDir
	}
	if strings.TrimSpace(cfg.Output.Timezone) == "" {
		cfg.Output.Timezone = DefaultTimezone
	}

	cfg.Generation.Provider = strings.ToLower(strings.TrimSpace(cfg.Generation.Provider))
	if cfg.Generation.Provider == "" {
		cfg.Generation.Provider = DefaultProvider
	}
	if strings.TrimSpace(cfg.Generation.Model) == "" && cfg.Generation.Provider == DefaultProvider {
		cfg.Generation.Model = DefaultModel
	}

	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = DefaultTopK
	}
	if strings.TrimSpace(cfg.Retrieval.Collection) == "" {
		cfg.Retrieval.Collection = DefaultCollection
	}
	if strings.TrimSpace(cfg.Retrieval.EmbeddingModel) == "" {
		cfg.Retrieval.EmbeddingModel = DefaultEmbeddingModel
	}
	if cfg.Retrieval.VectorSize == 0 {
		cfg.Retrieval.VectorSize = DefaultVectorSize
	}
	if cfg.Retrieval.ChunkWords == 0 {
		cfg.Retrieval.ChunkWords = DefaultChunkWords
	}
	if strings.TrimSpace(cfg.Retrieval.DocumentsGlob) == "" {
		cfg.Retrieval.DocumentsGlob = DefaultDocumentsGlob
	}

	if cfg.Judge.Attempts == 0 {
		cfg.Judge.Attempts = DefaultJudgeAttempts
	}
	if cfg.Judge.BaseBackoffMs == 0 {
		cfg.Judge.BaseBackoffMs = DefaultBaseBackoffMs
	}
	if cfg.Judge.CorrectThreshold == 0 {
		cfg.Judge.CorrectThreshold = DefaultCorrectThreshold
	}
	if cfg.Judge.UncertainThreshold == 0 {
		cfg.Judge.UncertainThreshold = DefaultUncertainThreshold
	}

	if cfg.Batch.Threshold == 0 {
		cfg.Batch.Threshold = DefaultThreshold
	}
	if cfg.Batch.BatchSize == 0 {
		cfg.Batch.BatchSize = DefaultBatchSize
	}
	if cfg.Batch.CooldownSeconds == nil {
		cooldown := DefaultCooldownSeconds
		cfg.Batch.CooldownSeconds = &cooldown
	}

	if strings.TrimSpace(cfg.Analysis.InputGlob) == "" {
		cfg.Analysis.InputGlob = DefaultAnalysisGlob
	}
	if strings.TrimSpace(cfg.Analysis.OutputDir) == "" {
		cfg.Analysis.OutputDir = DefaultAnalysisOutputDir
	}
	if cfg.Analysis.ProblematicScoreDiff == 0 {
		cfg.Analysis.ProblematicScoreDiff = DefaultProblematicDiff
	}
	if strings.TrimSpace(cfg.Analysis.FallbackCategory) == "" {
		cfg.Analysis.FallbackCategory = DefaultFallbackCategory
	}
	if len(cfg.Analysis.Categories) == 0 {
		cfg.Analysis.Categories = DefaultCategories()
	}
}

// CooldownSeconds returns the configured cooldown, treating nil as the default.
func CooldownSeconds(cfg spec.Config) int {
	if cfg.Batch.CooldownSeconds == nil {
		return DefaultCooldownSeconds
	}
	return *cfg.Batch.CooldownSeconds
}
