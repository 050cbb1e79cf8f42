//go:build cucumber

package cucumber

import (
	"fmt"
	"os"
	"path/filepath"

	"ragjudge/internal/config"
)

// aProjectWithValidConfig creates a temp project with a config and enters it.
func (s *featureState) aProjectWithValidConfig() error {
	if s.projectDir != "" {
		return nil
	}
	dir, err := os.MkdirTemp("", "ragjudge-feature-*")
	if err != nil {
		return fmt.Errorf("create temp project: %w", err)
	}
	s.projectDir = dir
	s.configPath = config.ConfigPath(dir)
	if err := os.MkdirAll(filepath.Dir(s.configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := s.writeConfig(validConfigYAML); err != nil {
		return err
	}
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working dir: %w", err)
	}
	s.previousWD = wd
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("chdir: %w", err)
	}
	return nil
}

// theConfigIsInvalid overwrites the config with out-of-range values.
func (s *featureState) theConfigIsInvalid() error {
	if err := s.aProjectWithValidConfig(); err != nil {
		return err
	}
	return s.writeConfig(invalidConfigYAML)
}

// writeConfig writes the scenario config file.
func (s *featureState) writeConfig(contents string) error {
	if s.configPath == "" {
		return fmt.Errorf("config path is not set")
	}
	if err := os.WriteFile(s.configPath, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

const validConfigYAML = `version: 1
output:
  dir: "test"
  timezone: "Asia/Jakarta"
generation:
  provider: openai
  model: "gpt-4.1-mini"
batch:
  threshold: 0.7
  batch_size: 5
  cooldown_seconds: 0
analysis:
  input_glob: "eval/*.csv"
  output_dir: "output"
  categories:
    - name: pimpinan
      keywords: [rektor, dekan]
    - name: sejarah
      keywords: [kapan, didirikan]
`

const invalidConfigYAML = `version: 1
generation:
  provider: openai
  model: "gpt-4.1-mini"
batch:
  threshold: 1.5
`
