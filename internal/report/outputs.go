package report

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"ragjudge/internal/results"
	"ragjudge/internal/stats"
)

// Files written by the analyze command.
const (
	ReportHTMLFile     = "report.html"
	PerformanceSVGFile = "performance.svg"
	ConsistencySVGFile = "consistency.svg"
	PerQuestionFile    = "per_question.csv"
	SummaryFile        = "summary.json"
)

// Files written by the stats command.
const (
	StatsJSONFile   = "analysis_summary.json"
	CategoryFile    = "category_stats.csv"
	VerdictFile     = "verdict_analysis.csv"
	ProblematicFile = "problematic_questions.csv"
)

// WriteAnalysisOutputs writes the multi-file report artifacts into dir and
// returns their paths.
func WriteAnalysisOutputs(ctx context.Context, dir string, a Analysis) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	html, err := RenderHTML(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	var paths []string
	write := func(name string, data []byte) error {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		paths = append(paths, path)
		return nil
	}
	if err := write(ReportHTMLFile, []byte(html)); err != nil {
		return nil, err
	}
	if err := write(PerformanceSVGFile, []byte(PerformanceSVG(a.Files))); err != nil {
		return nil, err
	}
	if a.Consistency != nil {
		if err := write(ConsistencySVGFile, []byte(ConsistencySVG(*a.Consistency))); err != nil {
			return nil, err
		}
		path := filepath.Join(dir, PerQuestionFile)
		if err := writePerQuestion(path, a); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	path := filepath.Join(dir, SummaryFile)
	if err := writeJSON(path, a); err != nil {
		return nil, err
	}
	return append(paths, path), nil
}

func writePerQuestion(path string, a Analysis) error {
	r := a.Consistency
	rows := [][]string{{"no", results.ColQuestion, "rag_correct_count", "og_correct_count",
		"both_correct_count", "both_wrong_count", "rag_consistency", "og_consistency", "rag_class", "og_class", "total_files"}}
	for _, q := range r.Questions {
		rows = append(rows, []string{
			strconv.Itoa(q.Index + 1),
			q.Question,
			strconv.Itoa(q.RAGCount),
			strconv.Itoa(q.OGCount),
			strconv.Itoa(q.BothCorrectCount),
			strconv.Itoa(q.BothWrongCount),
			formatFloat(q.RAGRate, 1),
			formatFloat(q.OGRate, 1),
			string(q.RAGClass),
			string(q.OGClass),
			strconv.Itoa(r.N),
		})
	}
	return writeCSV(path, rows)
}

// WriteFileOutputs writes the single-file analysis artifacts into dir.
func WriteFileOutputs(dir string, fs stats.FileStats, categories []stats.CategoryResult) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	var paths []string

	path := filepath.Join(dir, StatsJSONFile)
	payload := struct {
		stats.FileStats
		ByCategory []stats.CategoryResult `json:"by_category"`
	}{fs, categories}
	if err := writeJSON(path, payload); err != nil {
		return nil, err
	}
	paths = append(paths, path)

	rows := [][]string{{"kategori", "total", "rag_true", "og_true", "rag_true_percent", "og_true_percent"}}
	for _, c := range categories {
		rows = append(rows, []string{c.Name, strconv.Itoa(c.Stats.Total), strconv.Itoa(c.Stats.RAGCorrect),
			strconv.Itoa(c.Stats.OGCorrect), formatFloat(c.Stats.RAGCorrectPercent, 1), formatFloat(c.Stats.OGCorrectPercent, 1)})
	}
	path = filepath.Join(dir, CategoryFile)
	if err := writeCSV(path, rows); err != nil {
		return nil, err
	}
	paths = append(paths, path)

	if len(fs.Verdicts) > 0 {
		rows = [][]string{{"verdict", "rag_count", "og_count", "rag_percentage", "og_percentage"}}
		for _, v := range fs.Verdicts {
			rows = append(rows, []string{v.Verdict, strconv.Itoa(v.RAG), strconv.Itoa(v.OG),
				formatFloat(v.RAGPercent, 2), formatFloat(v.OGPercent, 2)})
		}
		path = filepath.Join(dir, VerdictFile)
		if err := writeCSV(path, rows); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	if len(fs.Problematic) > 0 {
		rows = [][]string{{"no", results.ColQuestion, results.ColRAGCorrect, results.ColOGCorrect,
			results.ColRAGVerdict, results.ColOGVerdict, results.ColRAGScore, results.ColOGScore, "score_difference"}}
		for _, p := range fs.Problematic {
			rows = append(rows, []string{
				strconv.Itoa(p.Index + 1),
				p.Question,
				results.FormatBool(p.RAGCorrect),
				results.FormatBool(p.OGCorrect),
				p.RAGVerdict,
				p.OGVerdict,
				optionalScore(p.RAGScore),
				optionalScore(p.OGScore),
				optionalScore(p.ScoreDiff),
			})
		}
		path = filepath.Join(dir, ProblematicFile)
		if err := writeCSV(path, rows); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func optionalScore(v *float64) string {
	if v == nil {
		return ""
	}
	return results.FormatScore(*v)
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	w := csv.NewWriter(file)
	if err := w.WriteAll(rows); err != nil {
		_ = file.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return file.Close()
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
