package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"ragjudge/internal/answer"
	"ragjudge/internal/config"
	"ragjudge/internal/judge"
	"ragjudge/internal/llm"
	"ragjudge/internal/ratelimit"
	"ragjudge/internal/retrieval"
	"ragjudge/internal/spec"
)

// providerSet bundles the hosted collaborators of batch and ask.
type providerSet struct {
	RAG   answer.Provider
	OG    answer.Provider
	Judge judge.Generator
	Close func()
}

// Test seams for hosted services, environment and time.
var (
	buildProviders                     = defaultProviders
	lookupEnv      envconfig.Lookuper
	sleepFn        ratelimit.SleepFunc = ratelimit.Sleep
	nowFn                              = time.Now
)

// defaultProviders wires the configured generator, the Gemini embedder and Qdrant.
func defaultProviders(ctx context.Context, cfg spec.Config, secrets config.Secrets, topK int) (providerSet, error) {
	gen, err := llm.NewGenerator(ctx, cfg.Generation, secrets, nil)
	if err != nil {
		return providerSet{}, fmt.Errorf("create generator: %w", err)
	}
	embedder, err := llm.NewGeminiEmbedder(ctx, secrets.GoogleAPIKey, cfg.Retrieval.EmbeddingModel, nil)
	if err != nil {
		return providerSet{}, fmt.Errorf("create embedder: %w", err)
	}
	endpoint, err := secrets.Qdrant()
	if err != nil {
		return providerSet{}, err
	}
	client, err := retrieval.Connect(endpoint)
	if err != nil {
		return providerSet{}, err
	}
	retriever := retrieval.NewQdrantRetriever(client, embedder, secrets.Collection(cfg.Retrieval.Collection))
	return providerSet{
		RAG:   &answer.RAG{Generator: gen, Retriever: retriever, TopK: topK},
		OG:    &answer.OG{Generator: gen},
		Judge: gen,
		Close: func() { _ = client.Close() },
	}, nil
}

// newJudge builds the judge from config, sharing the command's sleep seam.
func newJudge(gen judge.Generator, cfg spec.JudgeConfig) *judge.Judge {
	return judge.New(gen, judge.Options{
		Attempts:           cfg.Attempts,
		BaseBackoff:        time.Duration(cfg.BaseBackoffMs) * time.Millisecond,
		CorrectThreshold:   cfg.CorrectThreshold,
		UncertainThreshold: cfg.UncertainThreshold,
		Sleep:              sleepFn,
	})
}
