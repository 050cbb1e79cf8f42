package spec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseError lists every decoding problem found in a config document.
type ParseError struct {
	Problems []string
}

func (e *ParseError) Error() string {
	return "parse config:\n  - " + strings.Join(e.Problems, "\n  - ")
}

// ParseConfig decodes a single YAML document into Config, rejecting unknown
// keys. An empty document yields the zero Config.
func ParseConfig(data []byte) (Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	switch err := dec.Decode(&cfg); {
	case errors.Is(err, io.EOF):
		return Config{}, nil
	case err != nil:
		return Config{}, asParseError(err)
	}

	var extra yaml.Node
	switch err := dec.Decode(&extra); {
	case errors.Is(err, io.EOF):
		return cfg, nil
	case err != nil:
		return Config{}, asParseError(err)
	default:
		return Config{}, &ParseError{Problems: []string{fmt.Sprintf("line %d: multiple YAML documents are not supported", extra.Line)}}
	}
}

func asParseError(err error) error {
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		problems := make([]string, 0, len(typeErr.Errors))
		for _, msg := range typeErr.Errors {
			problems = append(problems, strings.TrimPrefix(msg, "yaml: "))
		}
		return &ParseError{Problems: problems}
	}
	return &ParseError{Problems: []string{strings.TrimPrefix(err.Error(), "yaml: ")}}
}
