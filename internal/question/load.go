package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads test cases from a CSV, YAML, or JSON file chosen by extension.
func Load(path string) ([]TestCase, Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Schema{}, fmt.Errorf("read test cases: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		spec, err := parseJSONSpec(data)
		if err != nil {
			return nil, Schema{}, err
		}
		return fromSpec(spec)
	case ".yaml", ".yml":
		spec, err := parseYAMLSpec(data)
		if err != nil {
			return nil, Schema{}, err
		}
		return fromSpec(spec)
	default:
		return ParseCSV(bytes.NewReader(data))
	}
}

func fromSpec(spec Spec) ([]TestCase, Schema, error) {
	schema := Schema{HasHeader: true, QuestionColumn: 0, GoldColumn: -1}
	cases := make([]TestCase, 0, len(spec.Cases))
	for _, tc := range spec.Cases {
		tc.Question = strings.TrimSpace(tc.Question)
		tc.Gold = strings.TrimSpace(tc.Gold)
		if tc.Question == "" {
			continue
		}
		if tc.Gold != "" {
			schema.GoldColumn = 1
		}
		cases = append(cases, tc)
	}
	if len(cases) == 0 {
		return nil, schema, ErrNoTestCases
	}
	return cases, schema, nil
}

func parseJSONSpec(data []byte) (Spec, error) {
	var spec Spec
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&spec); err != nil {
		if err == io.EOF {
			return Spec{}, nil
		}
		return Spec{}, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Spec{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return Spec{}, fmt.Errorf("parse json: %w", err)
	}
	return spec, nil
}

func parseYAMLSpec(data []byte) (Spec, error) {
	var spec Spec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		if err == io.EOF {
			return Spec{}, nil
		}
		return Spec{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Spec{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return Spec{}, fmt.Errorf("parse yaml: %w", err)
	}
	return spec, nil
}
