package runner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const maxNameAttempts = 1000

// OutputFileName returns the result file name for a run started at t.
func OutputFileName(t time.Time) string {
	return "test-" + t.Format("20060102-150405") + ".csv"
}

// SummaryPath returns the JSON sidecar path for a result file.
func SummaryPath(outputPath string) string {
	return strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".summary.json"
}

// MetricsPath returns the Prometheus textfile path for a result file.
func MetricsPath(outputPath string) string {
	return strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".prom"
}

// createOutputFile creates a fresh result file, adding a -N suffix when the name is taken.
func createOutputFile(dir string, startedAt time.Time) (*os.File, string, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, "", fmt.Errorf("output directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", fmt.Errorf("create output dir: %w", err)
	}
	base := strings.TrimSuffix(OutputFileName(startedAt), ".csv")
	for n := 0; n < maxNameAttempts; n++ {
		name := base + ".csv"
		if n > 0 {
			name = fmt.Sprintf("%s-%d.csv", base, n)
		}
		path := filepath.Join(dir, name)
		file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			return file, path, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", fmt.Errorf("create output file: %w", err)
		}
	}
	return nil, "", fmt.Errorf("create output file: no free name for %s in %s", base, dir)
}
