// Package stats computes correctness statistics for a single result table.
package stats

import (
	"math"

	"ragjudge/internal/results"
)

// CategoryStats partitions records by the pair of correctness flags.
type CategoryStats struct {
	Total       int `json:"total"`
	RAGCorrect  int `json:"rag_true"`
	OGCorrect   int `json:"og_true"`
	BothCorrect int `json:"both_true"`
	OnlyRAG     int `json:"only_rag_true"`
	OnlyOG      int `json:"only_og_true"`
	BothWrong   int `json:"both_false"`

	RAGCorrectPercent  float64 `json:"rag_true_percent"`
	OGCorrectPercent   float64 `json:"og_true_percent"`
	BothCorrectPercent float64 `json:"both_true_percent"`
	OnlyRAGPercent     float64 `json:"only_rag_true_percent"`
	OnlyOGPercent      float64 `json:"only_og_true_percent"`
	BothWrongPercent   float64 `json:"both_false_percent"`
}

// Compute counts the four outcome categories and their share of the total.
func Compute(records []results.Record) CategoryStats {
	stats := CategoryStats{Total: len(records)}
	for _, rec := range records {
		rag, og := rec.RAG.Correct, rec.OG.Correct
		if rag {
			stats.RAGCorrect++
		}
		if og {
			stats.OGCorrect++
		}
		switch {
		case rag && og:
			stats.BothCorrect++
		case rag:
			stats.OnlyRAG++
		case og:
			stats.OnlyOG++
		default:
			stats.BothWrong++
		}
	}
	stats.RAGCorrectPercent = Percent(stats.RAGCorrect, stats.Total)
	stats.OGCorrectPercent = Percent(stats.OGCorrect, stats.Total)
	stats.BothCorrectPercent = Percent(stats.BothCorrect, stats.Total)
	stats.OnlyRAGPercent = Percent(stats.OnlyRAG, stats.Total)
	stats.OnlyOGPercent = Percent(stats.OnlyOG, stats.Total)
	stats.BothWrongPercent = Percent(stats.BothWrong, stats.Total)
	return stats
}

// Percent returns count as a percentage of total rounded to one decimal.
// A zero total yields zero.
func Percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return Round1(float64(count) / float64(total) * 100)
}

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Flatten concatenates the records of every table in order.
func Flatten(tables []results.Table) []results.Record {
	var all []results.Record
	for _, table := range tables {
		all = append(all, table.Records...)
	}
	return all
}
