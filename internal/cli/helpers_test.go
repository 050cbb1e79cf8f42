package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"

	"ragjudge/internal/config"
	"ragjudge/internal/judge"
	"ragjudge/internal/results"
	"ragjudge/internal/spec"
	"ragjudge/internal/testutil"
	"ragjudge/internal/vcs"
)

// fakeProvider answers from a function.
type fakeProvider func(question string) (string, error)

func (f fakeProvider) Answer(_ context.Context, question string) (string, error) {
	return f(question)
}

// fakeJudge marks answers containing "rag-answer" as correct.
type fakeJudge struct{}

func (fakeJudge) Generate(_ context.Context, prompt string) (string, error) {
	if strings.Contains(prompt, "rag-answer") {
		return `{"verdict": "BENAR", "score": 0.9, "reason": "sesuai"}`, nil
	}
	return `{"verdict": "SALAH", "score": 0.1, "reason": "tidak sesuai"}`, nil
}

// stubCollaborators replaces every hosted seam and returns the fake clock.
func stubCollaborators(t *testing.T, og fakeProvider) *testutil.FakeClock {
	t.Helper()
	clock := testutil.NewFakeClock(time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC))

	origProviders, origEnv, origSleep, origNow, origDocs := buildProviders, lookupEnv, sleepFn, nowFn, describeDocuments
	buildProviders = func(context.Context, spec.Config, config.Secrets, int) (providerSet, error) {
		return providerSet{
			RAG:   fakeProvider(func(q string) (string, error) { return "rag-answer untuk " + q, nil }),
			OG:    og,
			Judge: fakeJudge{},
		}, nil
	}
	lookupEnv = envconfig.MapLookuper(map[string]string{})
	sleepFn = clock.Sleep
	nowFn = clock.Now
	describeDocuments = func(context.Context, string) (vcs.Snapshot, error) {
		return vcs.Snapshot{}, errors.New("not a git repository")
	}
	t.Cleanup(func() {
		buildProviders, lookupEnv, sleepFn, nowFn, describeDocuments = origProviders, origEnv, origSleep, origNow, origDocs
	})
	return clock
}

// writeFile writes body to dir/name and returns the path.
func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// writeResults writes a result file where RAG is correct on every question and
// OG only on the questions listed in ogCorrect.
func writeResults(t *testing.T, dir, name string, questions []string, ogCorrect map[int]bool) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create dir: %v", err)
	}
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	defer file.Close()
	writer, err := results.NewWriter(file)
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	correct := judge.Verdict{Label: judge.Correct, Score: 0.9, Reason: "sesuai"}
	wrong := judge.Verdict{Label: judge.Incorrect, Score: 0.2, Reason: "tidak sesuai"}
	for i, q := range questions {
		og := wrong
		if ogCorrect[i] {
			og = correct
		}
		rec := results.Record{
			Question: q,
			Gold:     "jawaban " + q,
			RAG:      results.NewSide("rag "+q, correct, 0.7),
			OG:       results.NewSide("og "+q, og, 0.7),
		}
		if err := writer.Write(rec); err != nil {
			t.Fatalf("write record: %v", err)
		}
	}
	return path
}
