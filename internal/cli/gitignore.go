package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// addGitignoreEntries appends the given directories, relative to repoRoot, to
// the repository .gitignore. Entries already listed (with or without a
// leading or trailing slash) are skipped. It returns the entries written.
func addGitignoreEntries(repoRoot string, dirs ...string) ([]string, error) {
	path := filepath.Join(repoRoot, ".gitignore")
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read .gitignore: %w", err)
	}

	present := map[string]bool{}
	for _, line := range strings.Split(string(data), "\n") {
		present[strings.Trim(strings.TrimSpace(line), "/")] = true
	}

	var added []string
	for _, dir := range dirs {
		entry, err := gitignoreEntry(repoRoot, dir)
		if err != nil {
			return nil, err
		}
		if present[entry] {
			continue
		}
		present[entry] = true
		added = append(added, entry)
	}
	if len(added) == 0 {
		return nil, nil
	}

	var b strings.Builder
	b.Write(data)
	if len(data) > 0 && data[len(data)-1] != '\n' {
		b.WriteByte('\n')
	}
	for _, entry := range added {
		b.WriteString(entry)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return nil, fmt.Errorf("write .gitignore: %w", err)
	}
	return added, nil
}

// gitignoreEntry converts dir into a slash-separated path inside repoRoot.
func gitignoreEntry(repoRoot, dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", fmt.Errorf("gitignore entry is empty")
	}
	rel := filepath.Clean(dir)
	if filepath.IsAbs(rel) {
		var err error
		if rel, err = filepath.Rel(repoRoot, rel); err != nil {
			return "", fmt.Errorf("resolve %q: %w", dir, err)
		}
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%q is outside the repo root", dir)
	}
	return filepath.ToSlash(rel), nil
}
