package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"ragjudge/internal/judge"
)

// TestRunCounters verifies counters track verdicts, correctness and errors.
func TestRunCounters(t *testing.T) {
	m := NewRun()
	m.RecordQuestion()
	m.RecordVerdict("rag", judge.Verdict{Label: judge.Correct, Source: judge.SourceLLM}, true)
	m.RecordVerdict("og", judge.Verdict{Label: judge.Uncertain, Source: judge.SourceHeuristic}, false)
	m.RecordProviderError("og")
	m.RecordCooldown()

	if got := testutil.ToFloat64(m.Questions); got != 1 {
		t.Fatalf("expected 1 question, got %v", got)
	}
	if got := testutil.ToFloat64(m.Verdicts.WithLabelValues("rag", "CORRECT", "llm")); got != 1 {
		t.Fatalf("expected 1 rag verdict, got %v", got)
	}
	if got := testutil.ToFloat64(m.Correct.WithLabelValues("og")); got != 0 {
		t.Fatalf("expected og correct 0, got %v", got)
	}
	if got := testutil.ToFloat64(m.ProviderErrors.WithLabelValues("og")); got != 1 {
		t.Fatalf("expected 1 provider error, got %v", got)
	}
}

// TestWriteTextfile verifies the exposition file is written.
func TestWriteTextfile(t *testing.T) {
	m := NewRun()
	m.RecordCooldown()
	m.RecordDuration(1500 * time.Millisecond)
	path := filepath.Join(t.TempDir(), "run.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("write textfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "ragjudge_cooldowns_total 1") || !strings.Contains(text, "ragjudge_run_duration_seconds 1.5") {
		t.Fatalf("unexpected textfile:\n%s", text)
	}
}

// TestNilRunIsNoop verifies a nil Run can be used without metrics.
func TestNilRunIsNoop(t *testing.T) {
	var m *Run
	m.RecordQuestion()
	m.RecordCooldown()
	if err := m.WriteTextfile(filepath.Join(t.TempDir(), "x")); err != nil {
		t.Fatalf("expected nil run to skip writing, got %v", err)
	}
}
