// Package similarity scores how closely two answer strings match.
package similarity

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// SubstringScore is returned when the reference text appears verbatim inside the candidate.
const SubstringScore = 0.95

// HeuristicScore compares a candidate answer against a gold answer.
// Both are trimmed and lowercased before comparison.
func HeuristicScore(gold, answer string) float64 {
	g := strings.ToLower(strings.TrimSpace(gold))
	a := strings.ToLower(strings.TrimSpace(answer))
	if g == "" || a == "" {
		return 0
	}
	if strings.Contains(a, g) {
		return SubstringScore
	}
	return Ratio(g, a)
}

// Ratio returns 2*M/T where M is the total size of the matching blocks
// between a and b and T is their combined rune length. Two empty strings
// score 1.
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(runes(a), runes(b)).Ratio()
}

// runes splits s into one element per rune so multi-byte text is compared
// character by character.
func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
