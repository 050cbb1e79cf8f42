package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

type geminiModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// GeminiOptions configures the Gemini client.
type GeminiOptions struct {
	APIKey         string
	Model          string
	EmbeddingModel string
	Temperature    float32
	HTTPClient     *http.Client
}

// Gemini serves both generation and embeddings through the Gemini API.
type Gemini struct {
	models         geminiModels
	model          string
	embeddingModel string
	temperature    float32
}

// NewGemini constructs a Gemini client with explicit settings.
func NewGemini(ctx context.Context, opts GeminiOptions) (*Gemini, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return newGemini(client.Models, opts), nil
}

func newGemini(models geminiModels, opts GeminiOptions) *Gemini {
	return &Gemini{
		models:         models,
		model:          opts.Model,
		embeddingModel: opts.EmbeddingModel,
		temperature:    opts.Temperature,
	}
}

// Generate returns the trimmed text of the first candidate.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(g.model) == "" {
		return "", fmt.Errorf("model is required")
	}
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

// Embed returns the embedding vector for text.
func (g *Gemini) Embed(ctx context.Context, text string, task TaskType) ([]float32, error) {
	if strings.TrimSpace(g.embeddingModel) == "" {
		return nil, fmt.Errorf("embedding model is required")
	}
	resp, err := g.models.EmbedContent(ctx, g.embeddingModel, genai.Text(text), &genai.EmbedContentConfig{
		TaskType: string(task),
	})
	if err != nil {
		return nil, fmt.Errorf("gemini embed: %w", err)
	}
	if len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil || len(resp.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("gemini embed: empty embedding")
	}
	return resp.Embeddings[0].Values, nil
}

// NewGeminiEmbedder constructs a Gemini client used only for embeddings.
func NewGeminiEmbedder(ctx context.Context, apiKey, model string, client *http.Client) (*Gemini, error) {
	return NewGemini(ctx, GeminiOptions{APIKey: apiKey, EmbeddingModel: model, HTTPClient: client})
}
