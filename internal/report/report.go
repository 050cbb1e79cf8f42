// Package report renders single-file and multi-file analyses as terminal
// tables, an HTML page with SVG charts and machine-readable files.
package report

import (
	"errors"
	"time"

	"ragjudge/internal/consistency"
	"ragjudge/internal/results"
	"ragjudge/internal/spec"
	"ragjudge/internal/stats"
)

// Analysis is everything the analyze command reports for a corpus.
type Analysis struct {
	GeneratedAt time.Time              `json:"generated_at"`
	Files       []stats.FileStats      `json:"files"`
	Overall     stats.Overall          `json:"overall"`
	Categories  []stats.CategoryResult `json:"categories"`
	Consistency *consistency.Report    `json:"consistency,omitempty"`

	// Insufficient is set when the corpus cannot support cross-file analysis.
	Insufficient string `json:"insufficient_data,omitempty"`
}

// BuildAnalysis runs every analyzer over the corpus.
func BuildAnalysis(tables []results.Table, cfg spec.AnalysisConfig, now time.Time) (Analysis, error) {
	analysis := Analysis{
		GeneratedAt: now,
		Overall:     stats.Summarize(tables),
		Categories:  stats.ByCategory(stats.Flatten(tables), cfg.Categories, cfg.FallbackCategory),
	}
	for _, table := range tables {
		analysis.Files = append(analysis.Files, stats.Analyze(table, cfg.ProblematicScoreDiff))
	}
	report, err := consistency.Aggregate(tables)
	switch {
	case errors.Is(err, consistency.ErrInsufficientData):
		analysis.Insufficient = err.Error()
	case err != nil:
		return Analysis{}, err
	default:
		analysis.Consistency = &report
	}
	return analysis, nil
}
