package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ragjudge/internal/reportserver"
)

// TestServeCommandRequiresDBPath verifies serve fails when no DB argument is provided.
func TestServeCommandRequiresDBPath(t *testing.T) {
	var stdout, stderr bytes.Buffer
	exitCode := Run([]string{"serve"}, &stdout, &stderr)
	if exitCode != ExitUsage {
		t.Fatalf("expected usage exit, got %d", exitCode)
	}
	if !strings.Contains(stderr.String(), "Missing <db.duckdb>") {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}
}

// TestServeCommandMissingDatabase verifies a nonexistent store is an error, not a usage problem.
func TestServeCommandMissingDatabase(t *testing.T) {
	var stdout, stderr bytes.Buffer
	exitCode := Run([]string{"serve", filepath.Join(t.TempDir(), "missing.duckdb")}, &stdout, &stderr)
	if exitCode != ExitError {
		t.Fatalf("expected error exit, got %d", exitCode)
	}
}

// TestServeCommandPassesConfig ensures serve forwards parsed config to the server layer.
func TestServeCommandPassesConfig(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "report.duckdb")
	if err := os.WriteFile(dbPath, []byte("duckdb"), 0o644); err != nil {
		t.Fatalf("write temp db: %v", err)
	}

	var gotConfig reportserver.Config
	var gotCtx context.Context
	origServe := serveReport
	serveReport = func(ctx context.Context, cfg reportserver.Config) error {
		gotCtx = ctx
		gotConfig = cfg
		return nil
	}
	t.Cleanup(func() { serveReport = origServe })

	var stdout, stderr bytes.Buffer
	exitCode := Run([]string{"serve", "--addr", "127.0.0.1:5050", dbPath}, &stdout, &stderr)
	if exitCode != ExitOK {
		t.Fatalf("expected exit ok, got %d: %s", exitCode, stderr.String())
	}
	if gotConfig.Addr != "127.0.0.1:5050" || gotConfig.DBPath != dbPath {
		t.Fatalf("unexpected config: %+v", gotConfig)
	}
	if gotCtx == nil {
		t.Fatalf("expected a context to be passed")
	}
	if !strings.Contains(stdout.String(), "http://127.0.0.1:5050") {
		t.Fatalf("unexpected stdout: %q", stdout.String())
	}
}
