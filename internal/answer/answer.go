// Package answer produces the two candidate answers compared in a run.
package answer

import (
	"context"
	"fmt"
	"strings"

	"github.com/chainguard-dev/clog"

	"ragjudge/internal/prompt"
)

// NoReply stands in for an empty generation result.
const NoReply = "(Tidak ada teks balasan.)"

// Provider answers a question.
type Provider interface {
	Answer(ctx context.Context, question string) (string, error)
}

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Retriever returns snippets relevant to a query.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]string, error)
}

// RAG answers with retrieved context prepended to the prompt.
type RAG struct {
	Generator Generator
	Retriever Retriever
	TopK      int
}

// Answer retrieves context, then generates.
func (p *RAG) Answer(ctx context.Context, question string) (string, error) {
	snippets, err := p.Retriever.Retrieve(ctx, question, p.TopK)
	if err != nil {
		return "", fmt.Errorf("retrieve context: %w", err)
	}
	clog.FromContext(ctx).Debugf("retrieved %d snippets", len(snippets))
	return generate(ctx, p.Generator, prompt.RAG(question, snippets))
}

// OG answers from the model alone.
type OG struct {
	Generator Generator
}

// Answer generates without retrieval.
func (p *OG) Answer(ctx context.Context, question string) (string, error) {
	return generate(ctx, p.Generator, prompt.OG(question))
}

func generate(ctx context.Context, gen Generator, text string) (string, error) {
	out, err := gen.Generate(ctx, text)
	if err != nil {
		return "", err
	}
	if out = strings.TrimSpace(out); out == "" {
		return NoReply, nil
	}
	return out, nil
}
