// Package llm adapts hosted generation and embedding services to small interfaces.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"ragjudge/internal/config"
	"ragjudge/internal/spec"
)

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Embedder turns text into a dense vector.
type Embedder interface {
	Embed(ctx context.Context, text string, task TaskType) ([]float32, error)
}

// TaskType tells the embedding model how the vector will be used.
type TaskType string

const (
	TaskRetrievalQuery    TaskType = "RETRIEVAL_QUERY"
	TaskRetrievalDocument TaskType = "RETRIEVAL_DOCUMENT"
)

// HTTPDoer abstracts HTTP clients used by providers.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewGenerator builds the configured generation provider.
func NewGenerator(ctx context.Context, cfg spec.GenerationConfig, secrets config.Secrets, client *http.Client) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "gemini":
		return NewGemini(ctx, GeminiOptions{
			APIKey:      secrets.GoogleAPIKey,
			Model:       cfg.Model,
			Temperature: float32(cfg.Temperature),
			HTTPClient:  client,
		})
	case "openai":
		baseURL := cfg.BaseURL
		if strings.TrimSpace(baseURL) == "" {
			baseURL = secrets.OpenAIBaseURL
		}
		var doer HTTPDoer
		if client != nil {
			doer = client
		}
		return NewOpenAI(OpenAIOptions{
			APIKey:      secrets.OpenAIAPIKey,
			BaseURL:     baseURL,
			Model:       cfg.Model,
			Temperature: float32(cfg.Temperature),
			Client:      doer,
		})
	default:
		return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
	}
}
