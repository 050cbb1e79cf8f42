//go:build cucumber

package cucumber

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"
)

// theOutputListsCommands asserts the output contains expected command names.
func (s *featureState) theOutputListsCommands(table *godog.Table) error {
	output := s.stdout.String()
	for _, row := range table.Rows {
		for _, cell := range row.Cells {
			command := strings.TrimSpace(cell.Value)
			if command == "" {
				continue
			}
			if !strings.Contains(output, command) {
				return fmt.Errorf("expected command %q in output", command)
			}
		}
	}
	return nil
}

func (s *featureState) theExitCodeIsZero() error {
	if s.exitCode != 0 {
		return fmt.Errorf("expected exit code 0, got %d: %s", s.exitCode, s.stderr.String())
	}
	return nil
}

func (s *featureState) theExitCodeIsNonZero() error {
	if s.exitCode == 0 {
		return fmt.Errorf("expected non-zero exit code")
	}
	return nil
}

func (s *featureState) theOutputContains(text string) error {
	if !strings.Contains(s.stdout.String(), text) {
		return fmt.Errorf("expected %q in output, got %q", text, s.stdout.String())
	}
	return nil
}

func (s *featureState) theErrorOutputMentions(text string) error {
	if !strings.Contains(s.stderr.String(), text) {
		return fmt.Errorf("expected error to mention %q, got %q", text, s.stderr.String())
	}
	return nil
}

func (s *featureState) theFileContains(rel, text string) error {
	data, err := os.ReadFile(filepath.Join(s.projectDir, rel))
	if err != nil {
		return fmt.Errorf("read %s: %w", rel, err)
	}
	if !strings.Contains(string(data), text) {
		return fmt.Errorf("expected %q in %s, got %q", text, rel, data)
	}
	return nil
}

func (s *featureState) theResultFileHasRowsInOrder(n int) error {
	table, err := s.loadRunTable()
	if err != nil {
		return err
	}
	if len(table.Records) != n {
		return fmt.Errorf("expected %d rows, got %d", n, len(table.Records))
	}
	for i, rec := range table.Records {
		if rec.Question != s.cases[i].Question {
			return fmt.Errorf("row %d: expected %q, got %q", i, s.cases[i].Question, rec.Question)
		}
	}
	return nil
}

func (s *featureState) everyRAGAnswerIsCorrect() error {
	table, err := s.loadRunTable()
	if err != nil {
		return err
	}
	for i, rec := range table.Records {
		if !rec.RAG.Correct {
			return fmt.Errorf("row %d: expected RAG correct, got verdict %s", i, rec.RAG.Verdict.Wire())
		}
	}
	return nil
}

func (s *featureState) theOGAnswerStartsWith(q, prefix string) error {
	table, err := s.loadRunTable()
	if err != nil {
		return err
	}
	for _, rec := range table.Records {
		if rec.Question != q {
			continue
		}
		if !strings.HasPrefix(rec.OG.Answer, prefix) {
			return fmt.Errorf("expected OG answer to start with %q, got %q", prefix, rec.OG.Answer)
		}
		if rec.OG.Correct {
			return fmt.Errorf("expected failed OG answer to be incorrect")
		}
		return nil
	}
	return fmt.Errorf("question %q not in result file", q)
}

func (s *featureState) theRunPausedFor(n int) error {
	if s.summary.Cooldowns != n {
		return fmt.Errorf("expected %d cooldowns, got %d", n, s.summary.Cooldowns)
	}
	if n > 0 && s.sleeps == 0 {
		return fmt.Errorf("expected cooldown sleeps to be recorded")
	}
	return nil
}
