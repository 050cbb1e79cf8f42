//go:build cucumber

package cucumber

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"ragjudge/internal/answer"
	"ragjudge/internal/cli"
	"ragjudge/internal/config"
	"ragjudge/internal/judge"
	"ragjudge/internal/llm"
	"ragjudge/internal/question"
	"ragjudge/internal/runner"
	"ragjudge/internal/spec"
)

const ragReply = "Menurut konteks, jawabannya sesuai dokumen UKRI."

// iRunCommand executes a CLI command for the scenario.
func (s *featureState) iRunCommand(command string) error {
	args := strings.Fields(command)
	if len(args) == 0 {
		return fmt.Errorf("command is empty")
	}
	if args[0] == "ragjudge" {
		args = args[1:]
	}
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = cli.Run(args, &s.stdout, &s.stderr)
	return nil
}

// anOpenAICompatibleEndpoint starts a chat completions server that answers RAG
// prompts from context, OG prompts without it, and judges RAG answers correct.
func (s *featureState) anOpenAICompatibleEndpoint() error {
	s.endpoint = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Messages) == 0 {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		prompt := req.Messages[0].Content
		var reply string
		switch {
		case strings.Contains(prompt, "JAWABAN_KANDIDAT"):
			if strings.Contains(prompt, ragReply) {
				reply = `{"verdict": "BENAR", "score": 0.92, "reason": "sesuai konteks"}`
			} else {
				reply = `{"verdict": "SALAH", "score": 0.1, "reason": "tidak sesuai"}`
			}
		case strings.Contains(prompt, "Konteks:"):
			reply = ragReply
		default:
			for q := range s.failOG {
				if strings.Contains(prompt, q) {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte(`{"error": {"message": "upstream overloaded", "type": "server_error"}}`))
					return
				}
			}
			reply = "Saya tidak yakin."
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 0,
			"model":   "gpt-4.1-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": reply},
				"finish_reason": "stop",
			}},
		})
	}))
	return nil
}

func (s *featureState) theOGCallFailsFor(q string) error {
	s.failOG[q] = true
	return nil
}

func (s *featureState) theseQuestions(table *godog.Table) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		if len(row.Cells) < 2 {
			return fmt.Errorf("row %d needs a question and a gold answer", i)
		}
		s.cases = append(s.cases, question.TestCase{
			Question: strings.TrimSpace(row.Cells[0].Value),
			Gold:     strings.TrimSpace(row.Cells[1].Value),
		})
	}
	return nil
}

// staticRetriever returns the same snippet for every query.
type staticRetriever struct{}

func (staticRetriever) Retrieve(context.Context, string, int) ([]string, error) {
	return []string{"Universitas Kebangsaan Republik Indonesia berlokasi di Bandung."}, nil
}

// iRunTheBatch drives a batch through the OpenAI-compatible generator.
func (s *featureState) iRunTheBatch(batchSize, cooldown int) error {
	if s.endpoint == nil {
		return fmt.Errorf("model endpoint is not running")
	}
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return err
	}
	ctx := context.Background()
	gen, err := llm.NewGenerator(ctx, spec.GenerationConfig{
		Provider: "openai",
		Model:    cfg.Generation.Model,
		BaseURL:  s.endpoint.URL + "/v1",
	}, config.Secrets{OpenAIAPIKey: "test-key"}, s.endpoint.Client())
	if err != nil {
		return err
	}
	summary, err := runner.RunBatch(ctx, s.cases, runner.Params{
		OutputDir:       cfg.Output.Dir,
		TopK:            cfg.Retrieval.TopK,
		Threshold:       cfg.Batch.Threshold,
		BatchSize:       batchSize,
		CooldownSeconds: cooldown,
	}, runner.Dependencies{
		RAG:   &answer.RAG{Generator: gen, Retriever: staticRetriever{}, TopK: cfg.Retrieval.TopK},
		OG:    &answer.OG{Generator: gen},
		Judge: judge.New(gen, judge.Options{
			Attempts:           cfg.Judge.Attempts,
			CorrectThreshold:   cfg.Judge.CorrectThreshold,
			UncertainThreshold: cfg.Judge.UncertainThreshold,
			Sleep:              func(context.Context, time.Duration) error { return nil },
		}),
		Sleep: func(context.Context, time.Duration) error {
			s.sleeps++
			return nil
		},
	})
	if err != nil {
		return err
	}
	s.summary = summary
	return nil
}
