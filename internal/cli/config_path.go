package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"ragjudge/internal/config"
	"ragjudge/internal/spec"
)

// resolveSpecPath normalizes a config path or finds it from CWD.
func resolveSpecPath(specPath string) (string, error) {
	if strings.TrimSpace(specPath) == "" {
		return config.FindConfigPath("")
	}
	abs, err := filepath.Abs(specPath)
	if err != nil {
		return "", fmt.Errorf("resolve spec path: %w", err)
	}
	return abs, nil
}

// loadConfig loads the config file, falling back to built-in defaults when
// no --spec was given and none is found upward from the working directory.
func loadConfig(specPath string) (spec.Config, string, error) {
	resolved, err := resolveSpecPath(specPath)
	if err != nil {
		if strings.TrimSpace(specPath) == "" && errors.Is(err, config.ErrConfigNotFound) {
			return config.Default(), "", nil
		}
		return spec.Config{}, "", err
	}
	cfg, err := config.Load(resolved)
	if err != nil {
		return spec.Config{}, "", err
	}
	return cfg, resolved, nil
}
