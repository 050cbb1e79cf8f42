package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// TestPrompterLineSkipsBlankLines verifies blank answers re-prompt.
func TestPrompterLineSkipsBlankLines(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("\n  \nApa itu UKRI?"), &out)
	got, err := p.Line("Pertanyaan")
	if err != nil {
		t.Fatalf("line: %v", err)
	}
	if got != "Apa itu UKRI?" {
		t.Fatalf("unexpected answer %q", got)
	}
	if n := strings.Count(out.String(), "Pertanyaan: "); n != 3 {
		t.Fatalf("expected 3 prompts, got %d", n)
	}
}

// TestPrompterLineEOF verifies exhausted input is reported.
func TestPrompterLineEOF(t *testing.T) {
	p := newPrompter(strings.NewReader("\n"), &bytes.Buffer{})
	if _, err := p.Line("Pertanyaan"); !errors.Is(err, errNoInput) {
		t.Fatalf("expected errNoInput, got %v", err)
	}
}

// TestPrompterConfirm verifies yes/no parsing in both languages.
func TestPrompterConfirm(t *testing.T) {
	cases := []struct {
		input      string
		defaultYes bool
		want       bool
	}{
		{input: "y\n", want: true},
		{input: "ya\n", want: true},
		{input: "Tidak\n", defaultYes: true, want: false},
		{input: "\n", defaultYes: true, want: true},
		{input: "", defaultYes: false, want: false},
		{input: "mungkin\nno\n", defaultYes: true, want: false},
	}
	for _, tc := range cases {
		var out bytes.Buffer
		got, err := newPrompter(strings.NewReader(tc.input), &out).Confirm("Lanjut?", tc.defaultYes)
		if err != nil {
			t.Fatalf("confirm %q: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("confirm %q: expected %v, got %v", tc.input, tc.want, got)
		}
	}
}
