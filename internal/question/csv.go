package question

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	questionHeaders = []string{"pertanyaan", "question", "query"}
	goldHeaders     = []string{"jawaban", "expected", "gold", "label", "answer"}
)

// DetectSchema inspects the first row for recognized header names.
func DetectSchema(first []string) Schema {
	lower := make(map[string]int, len(first))
	for i, cell := range first {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(cell, "\ufeff")))
		if _, seen := lower[key]; !seen {
			lower[key] = i
		}
	}
	schema := Schema{QuestionColumn: 0, GoldColumn: -1}
	for _, name := range questionHeaders {
		if idx, ok := lower[name]; ok {
			schema.HasHeader = true
			schema.QuestionColumn = idx
			break
		}
	}
	for _, name := range goldHeaders {
		if idx, ok := lower[name]; ok {
			schema.HasHeader = true
			schema.GoldColumn = idx
			break
		}
	}
	return schema
}

// ParseCSV reads test cases from CSV, skipping rows with a blank question.
func ParseCSV(r io.Reader) ([]TestCase, Schema, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	first, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, Schema{GoldColumn: -1}, ErrNoTestCases
	}
	if err != nil {
		return nil, Schema{}, fmt.Errorf("read csv: %w", err)
	}
	schema := DetectSchema(first)

	var cases []TestCase
	add := func(row []string) {
		if tc, ok := schema.caseFrom(row); ok {
			cases = append(cases, tc)
		}
	}
	if !schema.HasHeader {
		first[0] = strings.TrimPrefix(first[0], "\ufeff")
		add(first)
	}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, schema, fmt.Errorf("read csv: %w", err)
		}
		add(row)
	}
	if len(cases) == 0 {
		return nil, schema, ErrNoTestCases
	}
	return cases, schema, nil
}

func (s Schema) caseFrom(row []string) (TestCase, bool) {
	if s.QuestionColumn >= len(row) {
		return TestCase{}, false
	}
	q := strings.TrimSpace(row[s.QuestionColumn])
	if q == "" {
		return TestCase{}, false
	}
	tc := TestCase{Question: q}
	if s.HasHeader && s.GoldColumn >= 0 && s.GoldColumn < len(row) {
		tc.Gold = strings.TrimSpace(row[s.GoldColumn])
	}
	return tc, true
}
