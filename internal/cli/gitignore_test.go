package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestAddGitignoreEntriesAppendsMissing verifies only new entries are appended.
func TestAddGitignoreEntriesAppendsMissing(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ".gitignore")
	if err := os.WriteFile(path, []byte("/test/\nnode_modules"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	added, err := addGitignoreEntries(root, "test", filepath.Join(root, "output"), "output")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if diff := cmp.Diff([]string{"output"}, added); diff != "" {
		t.Fatalf("added mismatch (-want +got):\n%s", diff)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := string(data); got != "/test/\nnode_modules\noutput\n" {
		t.Fatalf("unexpected .gitignore: %q", got)
	}

	added, err = addGitignoreEntries(root, "output")
	if err != nil || len(added) != 0 {
		t.Fatalf("expected no-op, got %v %v", added, err)
	}
}

// TestAddGitignoreEntriesRejectsOutsideRoot verifies paths escaping the repo fail.
func TestAddGitignoreEntriesRejectsOutsideRoot(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"../elsewhere", ".", ""} {
		if _, err := addGitignoreEntries(root, dir); err == nil {
			t.Fatalf("expected error for %q", dir)
		}
	}
	if _, err := os.Stat(filepath.Join(root, ".gitignore")); !os.IsNotExist(err) {
		t.Fatalf("expected no .gitignore, got %v", err)
	}
}
