package vcs

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"ragjudge/internal/testutil"
)

// TestDescribeReportsCommitAndDirtyState verifies snapshots of a documents directory.
func TestDescribeReportsCommitAndDirtyState(t *testing.T) {
	ctx := testutil.Context(t, 0)
	root := filepath.Join(t.TempDir(), "repo")
	docs := filepath.Join(root, "data")

	fake := &fakeGitRunner{responses: map[string]string{
		"rev-parse --show-toplevel":   root,
		"rev-parse HEAD":              "commit-3",
		"rev-parse --abbrev-ref HEAD": "main",
	}}
	fake.responses["status --porcelain -- "+docs] = ""
	client := NewClient(fake)

	actualRoot, err := client.DiscoverRepoRoot(ctx, docs)
	if err != nil {
		t.Fatalf("discover repo root: %v", err)
	}
	if actualRoot != root {
		t.Fatalf("expected root %q, got %q", root, actualRoot)
	}

	snap, err := client.Describe(ctx, docs)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	want := Snapshot{Root: root, Commit: "commit-3", Branch: "main"}
	if snap != want {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	fake.responses["status --porcelain -- "+docs] = " M data/profil.md"
	snap, err = client.Describe(ctx, docs)
	if err != nil {
		t.Fatalf("describe dirty: %v", err)
	}
	if !snap.Dirty {
		t.Fatalf("expected dirty snapshot")
	}
}

// TestDescribeOutsideRepo verifies git failures surface as errors.
func TestDescribeOutsideRepo(t *testing.T) {
	ctx := testutil.Context(t, 0)
	client := NewClient(&fakeGitRunner{responses: map[string]string{}})
	if _, err := client.Describe(ctx, t.TempDir()); err == nil {
		t.Fatalf("expected error outside a repository")
	}
}

// fakeGitRunner returns canned outputs for git commands in tests.
type fakeGitRunner struct {
	responses map[string]string
}

// Run satisfies gitRunner for test doubles.
func (f *fakeGitRunner) Run(_ context.Context, _ string, args ...string) (string, error) {
	key := strings.Join(args, " ")
	if value, ok := f.responses[key]; ok {
		return value, nil
	}
	return "", fmt.Errorf("unexpected git args: %s", key)
}
