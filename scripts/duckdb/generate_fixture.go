package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"ragjudge/internal/duckdb"
	"ragjudge/internal/judge"
	"ragjudge/internal/results"
)

// fixtureConfig defines the JSON config for generating a DuckDB fixture.
type fixtureConfig struct {
	Name        string  `json:"name"`
	Runs        int     `json:"runs"`
	Questions   int     `json:"questions"`
	RAGAccuracy float64 `json:"rag_accuracy"`
	OGAccuracy  float64 `json:"og_accuracy"`
	Seed        int64   `json:"seed"`
}

func main() {
	configPath := flag.String("config", "", "path to fixture config JSON")
	outPath := flag.String("out", "", "output duckdb file path")
	flag.Parse()
	if *configPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: generate_fixture --config <path> --out <duckdb file>")
		os.Exit(2)
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir output dir: %v\n", err)
		os.Exit(1)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := generateFixture(ctx, *outPath, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "generate fixture: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (fixtureConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fixtureConfig{}, err
	}
	var cfg fixtureConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fixtureConfig{}, err
	}
	if cfg.Runs < 1 || cfg.Questions < 1 {
		return fixtureConfig{}, fmt.Errorf("runs and questions must be >= 1")
	}
	return cfg, nil
}

// generateFixture ingests cfg.Runs synthetic result tables over a shared question set.
func generateFixture(ctx context.Context, path string, cfg fixtureConfig) error {
	db, err := duckdb.Open(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()

	rng := rand.New(rand.NewSource(cfg.Seed))
	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	for run := 0; run < cfg.Runs; run++ {
		table := results.Table{
			Name:   fmt.Sprintf("%s_batch_%d.csv", cfg.Name, run+1),
			Schema: results.Schema{HasGold: true, HasAnswers: true, HasScores: true, HasVerdicts: true, HasReasons: true},
		}
		for q := 0; q < cfg.Questions; q++ {
			text := fmt.Sprintf("Pertanyaan fixture %d tentang %s?", q+1, cfg.Name)
			table.Records = append(table.Records, results.Record{
				Question: text,
				Gold:     fmt.Sprintf("Jawaban acuan %d", q+1),
				RAG:      results.NewSide("jawaban rag", verdict(rng, cfg.RAGAccuracy), 0.7),
				OG:       results.NewSide("jawaban og", verdict(rng, cfg.OGAccuracy), 0.7),
			})
		}
		res, err := duckdb.IngestTable(ctx, db, table, "", start.Add(time.Duration(run)*time.Hour))
		if err != nil {
			return err
		}
		fmt.Printf("%s: run %s (%d records)\n", res.Name, res.RunID, res.Records)
	}
	return nil
}

// verdict draws a judged outcome that is correct with probability p.
func verdict(rng *rand.Rand, p float64) judge.Verdict {
	if rng.Float64() < p {
		return judge.Verdict{Label: judge.Correct, Score: 0.8 + rng.Float64()*0.2, Reason: "fixture", Source: judge.SourceLLM}
	}
	return judge.Verdict{Label: judge.Incorrect, Score: rng.Float64() * 0.5, Reason: "fixture", Source: judge.SourceLLM}
}
