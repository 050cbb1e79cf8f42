package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sethvargo/go-envconfig"

	"ragjudge/internal/config"
	"ragjudge/internal/retrieval"
	"ragjudge/internal/spec"
)

type fakeIndexer struct {
	pattern string
	paths   []string
	err     error
}

func (f *fakeIndexer) IndexGlob(_ context.Context, pattern string) (retrieval.IndexSummary, error) {
	f.pattern = pattern
	return retrieval.IndexSummary{Files: 2, Chunks: 7, CreatedCollection: true}, f.err
}

func (f *fakeIndexer) IndexFiles(_ context.Context, paths []string) (retrieval.IndexSummary, error) {
	f.paths = paths
	return retrieval.IndexSummary{Files: len(paths), Chunks: 3}, f.err
}

func stubIndexer(t *testing.T, fake *fakeIndexer) {
	t.Helper()
	origIndexer, origEnv := buildIndexer, lookupEnv
	buildIndexer = func(context.Context, spec.Config, config.Secrets) (documentIndexer, func(), error) {
		return fake, nil, nil
	}
	lookupEnv = envconfig.MapLookuper(map[string]string{"QDRANT_COLLECTION": "ukri"})
	t.Cleanup(func() { buildIndexer, lookupEnv = origIndexer, origEnv })
}

// TestIndexCommandUsesGlob verifies the flag overrides the configured documents glob.
func TestIndexCommandUsesGlob(t *testing.T) {
	fake := &fakeIndexer{}
	stubIndexer(t, fake)
	specPath := writeSpec(t, "version: 1\n")

	var stdout, stderr bytes.Buffer
	code := Run([]string{"index", "--spec", specPath, "--glob", "kb/**/*.md"}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("expected exit ok, got %d: %s", code, stderr.String())
	}
	if fake.pattern != "kb/**/*.md" {
		t.Fatalf("unexpected pattern %q", fake.pattern)
	}
	if !strings.Contains(stdout.String(), "Created collection ukri") || !strings.Contains(stdout.String(), "Indexed 7 chunks from 2 files") {
		t.Fatalf("unexpected stdout: %q", stdout.String())
	}
}

// TestIndexCommandExplicitFiles verifies positional files bypass the glob.
func TestIndexCommandExplicitFiles(t *testing.T) {
	fake := &fakeIndexer{}
	stubIndexer(t, fake)
	specPath := writeSpec(t, "version: 1\n")

	var stdout, stderr bytes.Buffer
	code := Run([]string{"index", "--spec", specPath, "data/profil.md", "data/sejarah.md"}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("expected exit ok, got %d: %s", code, stderr.String())
	}
	if diff := cmp.Diff([]string{"data/profil.md", "data/sejarah.md"}, fake.paths); diff != "" {
		t.Fatalf("unexpected paths (-want +got):\n%s", diff)
	}
	if fake.pattern != "" {
		t.Fatalf("expected glob unused, got %q", fake.pattern)
	}
}

// TestIndexCommandFailure verifies indexing errors exit non-zero.
func TestIndexCommandFailure(t *testing.T) {
	stubIndexer(t, &fakeIndexer{err: errors.New("qdrant down")})
	specPath := writeSpec(t, "version: 1\n")

	var stdout, stderr bytes.Buffer
	if code := Run([]string{"index", "--spec", specPath}, &stdout, &stderr); code != ExitError {
		t.Fatalf("expected error exit, got %d", code)
	}
	if !strings.Contains(stderr.String(), "qdrant down") {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}
}
