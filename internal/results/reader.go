package results

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"ragjudge/internal/judge"
)

type columns map[string]int

func (c columns) get(row []string, name string) string {
	idx, ok := c[strings.ToLower(name)]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func (c columns) has(names ...string) bool {
	for _, name := range names {
		if _, ok := c[strings.ToLower(name)]; !ok {
			return false
		}
	}
	return true
}

// Read parses a result file. Rows with an invalid correctness flag are dropped.
func Read(r io.Reader, name string) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Table{}, fmt.Errorf("%s: %w: empty file", name, ErrMissingColumns)
	}
	if err != nil {
		return Table{}, fmt.Errorf("read %s: %w", name, err)
	}
	cols := columns{}
	for i, cell := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(cell, "\ufeff")))
		if _, seen := cols[key]; !seen {
			cols[key] = i
		}
	}
	required := []string{ColQuestion, ColRAGCorrect, ColOGCorrect}
	var missing []string
	for _, col := range required {
		if !cols.has(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return Table{}, fmt.Errorf("%s: %w: %s", name, ErrMissingColumns, strings.Join(missing, ", "))
	}

	table := Table{
		Name: name,
		Schema: Schema{
			HasGold:     cols.has(ColGold),
			HasAnswers:  cols.has(ColRAGAnswer, ColOGAnswer),
			HasScores:   cols.has(ColRAGScore, ColOGScore),
			HasVerdicts: cols.has(ColRAGVerdict, ColOGVerdict),
			HasReasons:  cols.has(ColRAGReason, ColOGReason),
		},
	}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("read %s: %w", name, err)
		}
		rec, ok := cols.record(row)
		if !ok {
			table.Dropped++
			continue
		}
		table.Records = append(table.Records, rec)
	}
	return table, nil
}

func (c columns) record(row []string) (Record, bool) {
	ragCorrect, err := ParseBool(c.get(row, ColRAGCorrect))
	if err != nil {
		return Record{}, false
	}
	ogCorrect, err := ParseBool(c.get(row, ColOGCorrect))
	if err != nil {
		return Record{}, false
	}
	rec := Record{
		Question: strings.TrimSpace(c.get(row, ColQuestion)),
		Gold:     c.get(row, ColGold),
		RAG:      c.side(row, "rag", ColRAGAnswer, ragCorrect),
		OG:       c.side(row, "og", ColOGAnswer, ogCorrect),
	}
	return rec, true
}

func (c columns) side(row []string, prefix, answerCol string, correct bool) Side {
	side := Side{
		Answer:  c.get(row, answerCol),
		Correct: correct,
		Reason:  c.get(row, prefix+"_reason"),
	}
	if score, ok := parseScore(c.get(row, prefix+"_score")); ok {
		side.Score = score
		side.Scored = true
	}
	if label, ok := judge.ParseWire(c.get(row, prefix+"_verdict")); ok {
		side.Verdict = label
	}
	return side
}

// LoadFile reads one result file, naming the table after its base name.
func LoadFile(path string) (Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open result file: %w", err)
	}
	defer file.Close()
	return Read(file, filepath.Base(path))
}

// LoadCorpus reads result files and returns them sorted by name.
func LoadCorpus(paths []string) ([]Table, error) {
	tables := make([]Table, 0, len(paths))
	for _, path := range paths {
		table, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	sort.SliceStable(tables, func(i, j int) bool { return tables[i].Name < tables[j].Name })
	return tables, nil
}

// Glob expands a doublestar pattern into result file paths.
func Glob(pattern string) ([]string, error) {
	paths, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	sort.Strings(paths)
	return paths, nil
}
