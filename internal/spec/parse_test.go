package spec

import (
	"errors"
	"strings"
	"testing"
)

// TestParseConfigValid verifies valid config parsing succeeds.
func TestParseConfigValid(t *testing.T) {
	data := []byte(`version: 1
output:
  dir: "./test"
generation:
  provider: gemini
  model: gemini-2.0-flash
judge:
  correct_threshold: 0.8
  uncertain_threshold: 0.6
batch:
  threshold: 0.7
  batch_size: 5
analysis:
  categories:
    - name: Sejarah
      keywords: [kapan, tahun]
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if cfg.Batch.Threshold != 0.7 || cfg.Judge.CorrectThreshold != 0.8 {
		t.Fatalf("unexpected thresholds: %+v %+v", cfg.Batch, cfg.Judge)
	}
	if len(cfg.Analysis.Categories) != 1 || cfg.Analysis.Categories[0].Keywords[1] != "tahun" {
		t.Fatalf("unexpected categories: %+v", cfg.Analysis.Categories)
	}
}

// TestParseConfigUnknownField verifies unknown fields are rejected.
func TestParseConfigUnknownField(t *testing.T) {
	data := []byte(`version: 1
output:
  dir: "./out"
unknown: true
`)
	if _, err := ParseConfig(data); err == nil {
		t.Fatalf("expected parse error for unknown field")
	}
}

// TestParseConfigRejectsMultipleDocs verifies multiple YAML docs are rejected.
func TestParseConfigRejectsMultipleDocs(t *testing.T) {
	data := []byte("version: 1\n---\nversion: 1\n")
	if _, err := ParseConfig(data); err == nil {
		t.Fatalf("expected parse error for multiple documents")
	}
}

// TestParseConfigEmptyDocument verifies an empty file yields a zero config.
func TestParseConfigEmptyDocument(t *testing.T) {
	cfg, err := ParseConfig(nil)
	if err != nil {
		t.Fatalf("expected empty config to parse, got %v", err)
	}
	if cfg.Version != 0 {
		t.Fatalf("expected zero version, got %d", cfg.Version)
	}
}

// TestParseConfigCollectsProblems verifies every unknown key is reported at once.
func TestParseConfigCollectsProblems(t *testing.T) {
	data := []byte("version: 1\nbogus: 1\nbatch:\n  sizee: 3\n")
	_, err := ParseConfig(data)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if len(perr.Problems) != 2 {
		t.Fatalf("expected 2 problems, got %q", perr.Problems)
	}
	if !strings.Contains(perr.Problems[0], "bogus") || !strings.Contains(perr.Problems[1], "sizee") {
		t.Fatalf("unexpected problems: %q", perr.Problems)
	}
}
