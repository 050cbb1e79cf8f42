package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sethvargo/go-envconfig"

	"ragjudge/internal/spec"
)

// TestDefaultKeepsThresholdsSeparate verifies the judge and correctness thresholds are independent.
func TestDefaultKeepsThresholdsSeparate(t *testing.T) {
	cfg := Default()
	if cfg.Judge.CorrectThreshold != 0.8 || cfg.Judge.UncertainThreshold != 0.6 {
		t.Fatalf("unexpected judge thresholds: %+v", cfg.Judge)
	}
	if cfg.Batch.Threshold != 0.7 {
		t.Fatalf("expected batch threshold 0.7, got %v", cfg.Batch.Threshold)
	}
	if CooldownSeconds(cfg) != 70 || cfg.Batch.BatchSize != 5 || cfg.Retrieval.TopK != 5 {
		t.Fatalf("unexpected batch defaults: %+v", cfg.Batch)
	}
	if err := Validate(&cfg); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

// TestScaffoldRoundTripsToDefault verifies the scaffolded file loads to the built-in defaults.
func TestScaffoldRoundTripsToDefault(t *testing.T) {
	path := ConfigPath(t.TempDir())
	if err := Scaffold(path); err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), loaded); diff != "" {
		t.Fatalf("scaffold differs from defaults (-want +got):\n%s", diff)
	}
	if err := Scaffold(path); err == nil {
		t.Fatalf("expected scaffold to refuse overwrite")
	}
}

// TestNormalizeKeepsExplicitZeroCooldown verifies cooldown 0 survives normalization.
func TestNormalizeKeepsExplicitZeroCooldown(t *testing.T) {
	zero := 0
	cfg := spec.Config{Version: 1, Batch: spec.BatchConfig{CooldownSeconds: &zero}}
	Normalize(&cfg)
	if CooldownSeconds(cfg) != 0 {
		t.Fatalf("expected explicit zero cooldown, got %d", CooldownSeconds(cfg))
	}
}

// TestValidateReportsFieldIssues verifies validation aggregates field issues.
func TestValidateReportsFieldIssues(t *testing.T) {
	cfg := Default()
	cfg.Judge.UncertainThreshold = 0.9
	cfg.Batch.BatchSize = -1
	cfg.Generation.Provider = "mystery"
	cfg.Analysis.Categories = append(cfg.Analysis.Categories, spec.CategoryRule{Name: "Sejarah", Keywords: []string{"x"}})

	err := Validate(&cfg)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	fields := map[string]bool{}
	for _, issue := range validationErr.Issues {
		fields[issue.Field] = true
	}
	for _, field := range []string{"judge.uncertain_threshold", "batch.batch_size", "generation.provider", "analysis.categories.name"} {
		if !fields[field] {
			t.Fatalf("expected issue for %s, got %v", field, validationErr.Issues)
		}
	}
}

// TestFindConfigPathWalksUp verifies config discovery from nested directories.
func TestFindConfigPathWalksUp(t *testing.T) {
	root := t.TempDir()
	path := ConfigPath(root)
	if err := Scaffold(path); err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	found, err := FindConfigPath(nested)
	if err != nil {
		t.Fatalf("find config: %v", err)
	}
	if found != path {
		t.Fatalf("expected %s, got %s", path, found)
	}
	if ProjectRootFromConfigPath(found) != root {
		t.Fatalf("unexpected project root %s", ProjectRootFromConfigPath(found))
	}
}

// TestFindConfigPathMissing verifies a missing config reports ErrConfigNotFound.
func TestFindConfigPathMissing(t *testing.T) {
	_, err := FindConfigPath(t.TempDir())
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
}

// TestLoadSecretsFromLookuper verifies environment secrets and Qdrant URL parsing.
func TestLoadSecretsFromLookuper(t *testing.T) {
	secrets, err := LoadSecrets(context.Background(), envconfig.MapLookuper(map[string]string{
		"GOOGLE_API_KEY":    "g-key",
		"QDRANT_URL":        "https://cluster.example.io:6333",
		"QDRANT_API_KEY":    "q-key",
		"QDRANT_COLLECTION": "kampus",
	}))
	if err != nil {
		t.Fatalf("load secrets: %v", err)
	}
	if secrets.GoogleAPIKey != "g-key" {
		t.Fatalf("unexpected google key %q", secrets.GoogleAPIKey)
	}
	endpoint, err := secrets.Qdrant()
	if err != nil {
		t.Fatalf("qdrant endpoint: %v", err)
	}
	want := QdrantEndpoint{Host: "cluster.example.io", Port: 6334, APIKey: "q-key", UseTLS: true}
	if diff := cmp.Diff(want, endpoint); diff != "" {
		t.Fatalf("endpoint mismatch (-want +got):\n%s", diff)
	}
	if got := secrets.Collection("nara_documents"); got != "kampus" {
		t.Fatalf("expected env collection override, got %q", got)
	}
}

// TestLoadSecretsDefaults verifies default Qdrant host and port.
func TestLoadSecretsDefaults(t *testing.T) {
	secrets, err := LoadSecrets(context.Background(), envconfig.MapLookuper(nil))
	if err != nil {
		t.Fatalf("load secrets: %v", err)
	}
	endpoint, err := secrets.Qdrant()
	if err != nil {
		t.Fatalf("qdrant endpoint: %v", err)
	}
	if endpoint.Host != "localhost" || endpoint.Port != 6334 || endpoint.UseTLS {
		t.Fatalf("unexpected default endpoint %+v", endpoint)
	}
	if !strings.EqualFold(secrets.Collection("nara_documents"), "nara_documents") {
		t.Fatalf("expected configured collection")
	}
}
