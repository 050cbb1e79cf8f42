package stats

import (
	"strings"

	"ragjudge/internal/results"
	"ragjudge/internal/spec"
)

// CategoryResult is the outcome breakdown for one question category.
type CategoryResult struct {
	Name  string        `json:"name"`
	Stats CategoryStats `json:"stats"`
}

// Categorize returns the first rule whose keyword occurs in the question,
// or fallback when none match.
func Categorize(question string, rules []spec.CategoryRule, fallback string) string {
	q := strings.ToLower(question)
	for _, rule := range rules {
		for _, keyword := range rule.Keywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(q, strings.ToLower(keyword)) {
				return rule.Name
			}
		}
	}
	return fallback
}

// ByCategory groups records by category and computes stats per group.
// Results follow rule order with the fallback last; empty categories are omitted.
func ByCategory(records []results.Record, rules []spec.CategoryRule, fallback string) []CategoryResult {
	groups := make(map[string][]results.Record)
	for _, rec := range records {
		name := Categorize(rec.Question, rules, fallback)
		groups[name] = append(groups[name], rec)
	}
	order := make([]string, 0, len(rules)+1)
	seen := make(map[string]bool)
	for _, rule := range rules {
		if !seen[rule.Name] {
			seen[rule.Name] = true
			order = append(order, rule.Name)
		}
	}
	if !seen[fallback] {
		order = append(order, fallback)
	}
	var out []CategoryResult
	for _, name := range order {
		group := groups[name]
		if len(group) == 0 {
			continue
		}
		out = append(out, CategoryResult{Name: name, Stats: Compute(group)})
	}
	return out
}

// DisplayName renders a category identifier for people.
func DisplayName(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}
