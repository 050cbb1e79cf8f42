package prompt

import (
	"strings"
	"testing"
)

// TestJudgeIncludesSections verifies the judge prompt carries every section in order.
func TestJudgeIncludesSections(t *testing.T) {
	out := Judge("Kapan UKRI berdiri?", "1950", "Tahun 1950")
	markers := []string{"Balas HANYA JSON.", "PERTANYAAN:\nKapan UKRI berdiri?", "JAWABAN_ACUAN:\n1950", "JAWABAN_KANDIDAT:\nTahun 1950"}
	last := -1
	for _, marker := range markers {
		idx := strings.Index(out, marker)
		if idx <= last {
			t.Fatalf("expected %q after offset %d in prompt:\n%s", marker, last, out)
		}
		last = idx
	}
}

// TestRAGJoinsSnippets verifies snippets are joined and empty context is substituted.
func TestRAGJoinsSnippets(t *testing.T) {
	out := RAG("Siapa rektor?", []string{"satu", "dua"})
	if !strings.Contains(out, "Konteks:\nsatu\n\ndua\n\nPertanyaan:\nSiapa rektor?") {
		t.Fatalf("unexpected rag prompt:\n%s", out)
	}
	empty := RAG("Siapa rektor?", nil)
	if !strings.Contains(empty, NoContext) {
		t.Fatalf("expected no-context marker, got:\n%s", empty)
	}
}

// TestOGOmitsContext verifies the baseline prompt has no context section.
func TestOGOmitsContext(t *testing.T) {
	out := OG("Siapa rektor?")
	if strings.Contains(out, "Konteks:") || !strings.HasPrefix(out, persona) {
		t.Fatalf("unexpected og prompt:\n%s", out)
	}
}

// TestJudgeLayout verifies the exact section layout after the instructions.
func TestJudgeLayout(t *testing.T) {
	got := strings.TrimPrefix(Judge("q", "g", "a"), judgeInstructions)
	if want := "\nPERTANYAAN:\nq\n\nJAWABAN_ACUAN:\ng\n\nJAWABAN_KANDIDAT:\na\n"; got != want {
		t.Fatalf("unexpected layout %q", got)
	}
}
