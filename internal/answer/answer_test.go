package answer

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type recordingGenerator struct {
	reply  string
	err    error
	prompt string
}

func (g *recordingGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.reply, g.err
}

type staticRetriever struct {
	snippets []string
	err      error
	topK     int
}

func (r *staticRetriever) Retrieve(_ context.Context, _ string, topK int) ([]string, error) {
	r.topK = topK
	return r.snippets, r.err
}

// TestRAGAnswerUsesContext verifies retrieved snippets reach the prompt and topK is forwarded.
func TestRAGAnswerUsesContext(t *testing.T) {
	gen := &recordingGenerator{reply: " UKRI berdiri 1950 "}
	ret := &staticRetriever{snippets: []string{"UKRI didirikan 1950"}}
	p := &RAG{Generator: gen, Retriever: ret, TopK: 5}
	got, err := p.Answer(context.Background(), "Kapan UKRI berdiri?")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if got != "UKRI berdiri 1950" || ret.topK != 5 {
		t.Fatalf("unexpected answer %q topK %d", got, ret.topK)
	}
	if !strings.Contains(gen.prompt, "UKRI didirikan 1950") {
		t.Fatalf("expected snippet in prompt:\n%s", gen.prompt)
	}
}

// TestRAGAnswerPropagatesRetrievalError verifies retrieval failures surface to the caller.
func TestRAGAnswerPropagatesRetrievalError(t *testing.T) {
	boom := errors.New("qdrant down")
	p := &RAG{Generator: &recordingGenerator{}, Retriever: &staticRetriever{err: boom}, TopK: 5}
	if _, err := p.Answer(context.Background(), "q"); !errors.Is(err, boom) {
		t.Fatalf("expected retrieval error, got %v", err)
	}
}

// TestOGAnswerEmptyReply verifies blank generations are replaced by the placeholder.
func TestOGAnswerEmptyReply(t *testing.T) {
	p := &OG{Generator: &recordingGenerator{reply: "   "}}
	got, err := p.Answer(context.Background(), "q")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if got != NoReply {
		t.Fatalf("expected placeholder, got %q", got)
	}
}
