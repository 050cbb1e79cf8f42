// Package consistency compares several runs of the same question set and
// reports how stable each system's correctness is across them.
package consistency

import (
	"errors"
	"math"
	"sort"

	"ragjudge/internal/results"
	"ragjudge/internal/stats"
)

// ErrInsufficientData is returned when fewer than two tables are supplied.
var ErrInsufficientData = errors.New("at least two result files are required")

// Class describes how a system fared on one question across every run.
type Class string

const (
	Always       Class = "always"
	Never        Class = "never"
	Inconsistent Class = "inconsistent"
)

// Question aggregates one row index across all tables.
type Question struct {
	Index    int    `json:"index"`
	Question string `json:"pertanyaan"`

	RAGCount         int `json:"rag_correct_count"`
	OGCount          int `json:"og_correct_count"`
	BothCorrectCount int `json:"both_correct_count"`
	BothWrongCount   int `json:"both_wrong_count"`

	RAGRate         float64 `json:"rag_consistency"`
	OGRate          float64 `json:"og_consistency"`
	BothCorrectRate float64 `json:"both_correct_consistency"`
	BothWrongRate   float64 `json:"both_wrong_consistency"`

	RAGClass Class `json:"rag_class"`
	OGClass  Class `json:"og_class"`
}

// ClassCounts tallies the questions in each class for one system.
type ClassCounts struct {
	Always       int `json:"always"`
	Never        int `json:"never"`
	Inconsistent int `json:"inconsistent"`
}

// Dispersion summarizes per-file accuracy percentages for one system.
type Dispersion struct {
	StdDev float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// FileAgreement is the per-run heatmap row.
type FileAgreement struct {
	Name        string  `json:"name"`
	RAGPercent  float64 `json:"rag_accuracy"`
	OGPercent   float64 `json:"og_accuracy"`
	BothPercent float64 `json:"both_correct"`
	Agreement   float64 `json:"agreement"`
}

// Cell values of the per-batch agreement matrix. CellMissing marks a row
// the run does not have.
const (
	CellMissing     = -1
	CellBothWrong   = 0
	CellOneCorrect  = 1
	CellBothCorrect = 2
)

// Matrix holds correctness per question (rows) and run (columns).
// Rows missing from a run are false in RAG and OG and CellMissing in
// Agreement, so they count towards neither both-correct nor both-wrong.
type Matrix struct {
	Files     []string `json:"files"`
	RAG       [][]bool `json:"rag"`
	OG        [][]bool `json:"og"`
	Agreement [][]int  `json:"agreement"`
}

// CountSpread summarizes the per-question correct counts of both systems.
type CountSpread struct {
	RAGMean     float64  `json:"rag_mean"`
	OGMean      float64  `json:"og_mean"`
	RAGStdDev   float64  `json:"rag_std"`
	OGStdDev    float64  `json:"og_std"`
	Correlation *float64 `json:"rag_og_correlation,omitempty"`
}

// Report is the full cross-run analysis.
type Report struct {
	Files     []string   `json:"files"`
	N         int        `json:"n"`
	Questions []Question `json:"questions"`

	RAGClasses ClassCounts `json:"rag_classes"`
	OGClasses  ClassCounts `json:"og_classes"`

	// Most inconsistent first: closest to a 50% success rate.
	RAGInconsistent []int `json:"rag_most_inconsistent"`
	OGInconsistent  []int `json:"og_most_inconsistent"`

	BothAlways []int `json:"both_always_correct"`
	BothNever  []int `json:"both_never_correct"`

	Agreement     Agreement       `json:"agreement"`
	RAGDispersion Dispersion      `json:"rag_dispersion"`
	OGDispersion  Dispersion      `json:"og_dispersion"`
	PerFile       []FileAgreement `json:"per_file"`
	Matrix        Matrix          `json:"matrix"`
	Spread        CountSpread     `json:"count_spread"`
}

// Aggregate builds the consistency report. The question count comes from the
// first table; tables are matched by row index.
func Aggregate(tables []results.Table) (Report, error) {
	if len(tables) < 2 {
		return Report{}, ErrInsufficientData
	}
	n := len(tables)
	rows := len(tables[0].Records)
	report := Report{N: n}
	for _, table := range tables {
		report.Files = append(report.Files, table.Name)
	}

	report.Matrix = buildMatrix(tables, rows)
	for q := 0; q < rows; q++ {
		item := Question{Index: q, Question: tables[0].Records[q].Question}
		for f := 0; f < n; f++ {
			rag, og := report.Matrix.RAG[q][f], report.Matrix.OG[q][f]
			if rag {
				item.RAGCount++
			}
			if og {
				item.OGCount++
			}
			switch report.Matrix.Agreement[q][f] {
			case CellBothCorrect:
				item.BothCorrectCount++
			case CellBothWrong:
				item.BothWrongCount++
			}
		}
		item.RAGRate = rate(item.RAGCount, n)
		item.OGRate = rate(item.OGCount, n)
		item.BothCorrectRate = rate(item.BothCorrectCount, n)
		item.BothWrongRate = rate(item.BothWrongCount, n)
		item.RAGClass = classify(item.RAGCount, n)
		item.OGClass = classify(item.OGCount, n)
		report.Questions = append(report.Questions, item)

		tally(&report.RAGClasses, item.RAGClass)
		tally(&report.OGClasses, item.OGClass)
		if item.RAGClass == Always && item.OGClass == Always {
			report.BothAlways = append(report.BothAlways, q)
		}
		if item.RAGClass == Never && item.OGClass == Never {
			report.BothNever = append(report.BothNever, q)
		}
	}
	report.RAGInconsistent = rankInconsistent(report.Questions, func(q Question) (Class, float64) { return q.RAGClass, q.RAGRate })
	report.OGInconsistent = rankInconsistent(report.Questions, func(q Question) (Class, float64) { return q.OGClass, q.OGRate })

	var rag, og []bool
	for _, table := range tables {
		for _, rec := range table.Records {
			rag = append(rag, rec.RAG.Correct)
			og = append(og, rec.OG.Correct)
		}
	}
	report.Agreement = Kappa(rag, og)

	var ragPct, ogPct []float64
	for _, table := range tables {
		cs := stats.Compute(table.Records)
		ragPct = append(ragPct, cs.RAGCorrectPercent)
		ogPct = append(ogPct, cs.OGCorrectPercent)
		agree := cs.BothCorrect + cs.BothWrong
		report.PerFile = append(report.PerFile, FileAgreement{
			Name:        table.Name,
			RAGPercent:  cs.RAGCorrectPercent,
			OGPercent:   cs.OGCorrectPercent,
			BothPercent: cs.BothCorrectPercent,
			Agreement:   stats.Percent(agree, cs.Total),
		})
	}
	report.RAGDispersion = disperse(ragPct)
	report.OGDispersion = disperse(ogPct)
	report.Spread = spread(report.Questions)
	return report, nil
}

func buildMatrix(tables []results.Table, rows int) Matrix {
	m := Matrix{
		RAG:       make([][]bool, rows),
		OG:        make([][]bool, rows),
		Agreement: make([][]int, rows),
	}
	for _, table := range tables {
		m.Files = append(m.Files, table.Name)
	}
	for q := 0; q < rows; q++ {
		m.RAG[q] = make([]bool, len(tables))
		m.OG[q] = make([]bool, len(tables))
		m.Agreement[q] = make([]int, len(tables))
		for f, table := range tables {
			if q >= len(table.Records) {
				m.Agreement[q][f] = CellMissing
				continue
			}
			rec := table.Records[q]
			m.RAG[q][f] = rec.RAG.Correct
			m.OG[q][f] = rec.OG.Correct
			switch {
			case rec.RAG.Correct && rec.OG.Correct:
				m.Agreement[q][f] = CellBothCorrect
			case rec.RAG.Correct || rec.OG.Correct:
				m.Agreement[q][f] = CellOneCorrect
			}
		}
	}
	return m
}

func rate(count, n int) float64 {
	return float64(count) / float64(n) * 100
}

func classify(count, n int) Class {
	switch count {
	case n:
		return Always
	case 0:
		return Never
	default:
		return Inconsistent
	}
}

func tally(c *ClassCounts, class Class) {
	switch class {
	case Always:
		c.Always++
	case Never:
		c.Never++
	default:
		c.Inconsistent++
	}
}

func rankInconsistent(questions []Question, pick func(Question) (Class, float64)) []int {
	type ranked struct {
		index int
		dist  float64
	}
	var items []ranked
	for _, q := range questions {
		class, r := pick(q)
		if class == Inconsistent {
			items = append(items, ranked{index: q.Index, dist: math.Abs(r - 50)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].dist != items[j].dist {
			return items[i].dist < items[j].dist
		}
		return items[i].index < items[j].index
	})
	out := make([]int, 0, len(items))
	for _, item := range items {
		out = append(out, item.index)
	}
	return out
}

func disperse(values []float64) Dispersion {
	lo, hi := stats.Bounds(values)
	return Dispersion{StdDev: stats.PopulationStdDev(values), Min: lo, Max: hi}
}

func spread(questions []Question) CountSpread {
	rag := make([]float64, len(questions))
	og := make([]float64, len(questions))
	for i, q := range questions {
		rag[i] = float64(q.RAGCount)
		og[i] = float64(q.OGCount)
	}
	s := CountSpread{
		RAGMean:   stats.Mean(rag),
		OGMean:    stats.Mean(og),
		RAGStdDev: stats.PopulationStdDev(rag),
		OGStdDev:  stats.PopulationStdDev(og),
	}
	if r, ok := stats.Pearson(rag, og); ok {
		s.Correlation = &r
	}
	return s
}
