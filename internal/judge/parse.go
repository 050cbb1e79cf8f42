package judge

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidResponse reports a judge reply with no usable JSON object.
var ErrInvalidResponse = errors.New("invalid judge response")

type reply struct {
	Verdict  string
	Score    float64
	HasScore bool
	Reason   string
}

// extractObject returns the first balanced {...} object in raw, skipping braces inside strings.
func extractObject(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}
	return "", false
}

func parseReply(raw string) (reply, error) {
	object, ok := extractObject(raw)
	if !ok {
		return reply{}, fmt.Errorf("%w: no JSON object", ErrInvalidResponse)
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(object), &fields); err != nil {
		return reply{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	out := reply{}
	if value, ok := fields["verdict"].(string); ok {
		out.Verdict = value
	}
	if value, ok := fields["reason"].(string); ok {
		out.Reason = strings.TrimSpace(value)
	}
	switch value := fields["score"].(type) {
	case float64:
		out.Score, out.HasScore = value, true
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			out.Score, out.HasScore = parsed, true
		}
	}
	return out, nil
}
