//go:build cucumber

package cucumber

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"

	"ragjudge/internal/judge"
	"ragjudge/internal/results"
)

// aResultFileWithOutcomes writes eval/<name> with the given per-question outcomes.
func (s *featureState) aResultFileWithOutcomes(name string, table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("outcome table needs a header and rows")
	}
	dir := filepath.Join(s.projectDir, "eval")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create eval dir: %w", err)
	}
	file, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("create result file: %w", err)
	}
	defer file.Close()
	writer, err := results.NewWriter(file)
	if err != nil {
		return err
	}
	for _, row := range table.Rows[1:] {
		if len(row.Cells) < 3 {
			return fmt.Errorf("outcome rows need pertanyaan, rag_benar and og_benar")
		}
		ragCorrect, err := results.ParseBool(row.Cells[1].Value)
		if err != nil {
			return err
		}
		ogCorrect, err := results.ParseBool(row.Cells[2].Value)
		if err != nil {
			return err
		}
		q := strings.TrimSpace(row.Cells[0].Value)
		rec := results.Record{
			Question: q,
			Gold:     "acuan " + q,
			RAG:      results.NewSide("rag "+q, outcome(ragCorrect), 0.7),
			OG:       results.NewSide("og "+q, outcome(ogCorrect), 0.7),
		}
		if err := writer.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func outcome(correct bool) judge.Verdict {
	if correct {
		return judge.Verdict{Label: judge.Correct, Score: 0.9, Reason: "sesuai", Source: judge.SourceLLM}
	}
	return judge.Verdict{Label: judge.Incorrect, Score: 0.1, Reason: "tidak sesuai", Source: judge.SourceLLM}
}

// loadRunTable reads the result file written by the scenario's batch.
func (s *featureState) loadRunTable() (results.Table, error) {
	if s.summary.OutputPath == "" {
		return results.Table{}, fmt.Errorf("no batch has run")
	}
	return results.LoadFile(s.summary.OutputPath)
}
