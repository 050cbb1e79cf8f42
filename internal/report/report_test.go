package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ragjudge/internal/config"
	"ragjudge/internal/judge"
	"ragjudge/internal/results"
	"ragjudge/internal/spec"
	"ragjudge/internal/stats"
)

func analysisConfig() spec.AnalysisConfig {
	return spec.AnalysisConfig{
		ProblematicScoreDiff: config.DefaultProblematicDiff,
		FallbackCategory:     config.DefaultFallbackCategory,
		Categories:           config.DefaultCategories(),
	}
}

func sampleTable(name string, ragSecond bool) results.Table {
	return results.Table{
		Name:   name,
		Schema: results.Schema{HasScores: true, HasVerdicts: true},
		Records: []results.Record{
			{
				Question: "Kapan UKRI berdiri?",
				RAG:      results.Side{Correct: true, Score: 0.9, Scored: true, Verdict: judge.Correct},
				OG:       results.Side{Correct: false, Score: 0.2, Scored: true, Verdict: judge.Incorrect},
			},
			{
				Question: "Siapa rektor <UKRI>?",
				RAG:      results.Side{Correct: ragSecond, Score: 0.5, Scored: true, Verdict: judge.Uncertain},
				OG:       results.Side{Correct: true, Score: 0.8, Scored: true, Verdict: judge.Correct},
			},
		},
	}
}

// TestBuildAnalysisWithConsistency verifies two tables produce a consistency section.
func TestBuildAnalysisWithConsistency(t *testing.T) {
	a, err := BuildAnalysis([]results.Table{sampleTable("a.csv", false), sampleTable("b.csv", true)}, analysisConfig(), time.Unix(0, 0).UTC())
	if err != nil {
		t.Fatalf("build analysis: %v", err)
	}
	if a.Consistency == nil || a.Insufficient != "" {
		t.Fatalf("expected consistency report, got insufficient %q", a.Insufficient)
	}
	if len(a.Files) != 2 || a.Overall.Total != 4 {
		t.Fatalf("unexpected files %d total %d", len(a.Files), a.Overall.Total)
	}
	if a.Consistency.Questions[1].RAGClass != "inconsistent" {
		t.Fatalf("expected question 2 to be inconsistent, got %s", a.Consistency.Questions[1].RAGClass)
	}
}

// TestBuildAnalysisSingleFileIsInsufficient verifies one table still yields per-file stats.
func TestBuildAnalysisSingleFileIsInsufficient(t *testing.T) {
	a, err := BuildAnalysis([]results.Table{sampleTable("a.csv", false)}, analysisConfig(), time.Now())
	if err != nil {
		t.Fatalf("build analysis: %v", err)
	}
	if a.Consistency != nil || a.Insufficient == "" {
		t.Fatalf("expected insufficient data marker")
	}
	var buf bytes.Buffer
	if err := WriteAnalysis(&buf, a); err != nil {
		t.Fatalf("write analysis: %v", err)
	}
	if !strings.Contains(buf.String(), "Data tidak cukup") || !strings.Contains(buf.String(), "a.csv") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

// TestWriteAnalysisOutputs verifies every analysis artifact is written and the HTML is escaped.
func TestWriteAnalysisOutputs(t *testing.T) {
	a, err := BuildAnalysis([]results.Table{sampleTable("a.csv", false), sampleTable("b.csv", true)}, analysisConfig(), time.Now())
	if err != nil {
		t.Fatalf("build analysis: %v", err)
	}
	dir := filepath.Join(t.TempDir(), "output")
	paths, err := WriteAnalysisOutputs(context.Background(), dir, a)
	if err != nil {
		t.Fatalf("write outputs: %v", err)
	}
	if len(paths) != 5 {
		t.Fatalf("expected 5 artifacts, got %v", paths)
	}
	for _, name := range []string{ReportHTMLFile, PerformanceSVGFile, ConsistencySVGFile, PerQuestionFile, SummaryFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
	html, err := os.ReadFile(filepath.Join(dir, ReportHTMLFile))
	if err != nil {
		t.Fatalf("read html: %v", err)
	}
	for _, token := range []string{"<svg", "<table", "a.csv", "Siapa rektor &lt;UKRI&gt;?", "Cohen&#39;s Kappa"} {
		if !strings.Contains(string(html), token) {
			t.Fatalf("expected report to include %q", token)
		}
	}
	csvData, err := os.ReadFile(filepath.Join(dir, PerQuestionFile))
	if err != nil {
		t.Fatalf("read per-question: %v", err)
	}
	if lines := strings.Split(strings.TrimSpace(string(csvData)), "\n"); len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(lines))
	}
}

// TestWriteFileStatsAndOutputs verifies the single-file tables and artifacts.
func TestWriteFileStatsAndOutputs(t *testing.T) {
	table := sampleTable("run.csv", false)
	fs := stats.Analyze(table, config.DefaultProblematicDiff)
	var buf bytes.Buffer
	if err := WriteFileStats(&buf, fs); err != nil {
		t.Fatalf("write stats: %v", err)
	}
	out := buf.String()
	for _, token := range []string{"Keduanya Benar", "Distribusi Verdict", "Pertanyaan Bermasalah (2)", "TIDAK PASTI"} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected output to include %q:\n%s", token, out)
		}
	}

	cfg := analysisConfig()
	paths, err := WriteFileOutputs(t.TempDir(), fs, stats.ByCategory(table.Records, cfg.Categories, cfg.FallbackCategory))
	if err != nil {
		t.Fatalf("write outputs: %v", err)
	}
	if len(paths) != 4 {
		t.Fatalf("expected 4 artifacts, got %v", paths)
	}
}

// TestSVGChartsEscapeLabels verifies chart labels are escaped and charts are well formed.
func TestSVGChartsEscapeLabels(t *testing.T) {
	files := []stats.FileStats{{Name: "<run>.csv", Categories: stats.Compute(sampleTable("x", true).Records)}}
	svg := PerformanceSVG(files)
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("unexpected svg framing")
	}
	if strings.Contains(svg, "<run>") || !strings.Contains(svg, "&lt;run&gt;") {
		t.Fatalf("expected escaped label")
	}
}
