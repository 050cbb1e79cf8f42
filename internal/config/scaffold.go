package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfig = `version: 1
output:
  dir: "test"
  timezone: "Asia/Jakarta"

generation:
  provider: "gemini"
  model: "gemini-2.0-flash"
  temperature: 0.0

retrieval:
  top_k: 5
  collection: "nara_documents"
  embedding_model: "embedding-001"
  vector_size: 768
  chunk_words: 300
  documents_glob: "data/*.md"

judge:
  attempts: 3
  base_backoff_ms: 1000
  correct_threshold: 0.8
  uncertain_threshold: 0.6

batch:
  threshold: 0.7
  batch_size: 5
  cooldown_seconds: 70

analysis:
  input_glob: "eval/*.csv"
  output_dir: "output"
  problematic_score_diff: 0.3
  fallback_category: "Lainnya"
  categories:
    - name: Identitas_UKRI
      keywords: ["ukri", "universitas kebangsaan", "singkatan", "alamat"]
    - name: Sejarah
      keywords: ["kapan", "tahun", "didirikan", "berdiri", "berubah"]
    - name: Struktur_Organisasi
      keywords: ["rektor", "dekan", "ketua", "wakil"]
    - name: Fakultas_Program
      keywords: ["fakultas", "program studi", "fiksi", "fti", "ftsp"]
    - name: Akreditasi
      keywords: ["akreditasi", "status", "lembaga"]
`

// Scaffold writes the default config file, refusing to overwrite an existing one.
func Scaffold(specPath string) error {
	if specPath == "" {
		return fmt.Errorf("spec path is required")
	}
	if info, err := os.Stat(specPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("spec path %q is a directory", specPath)
		}
		return fmt.Errorf("spec file already exists at %q", specPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat spec file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(specPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(specPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("write spec file: %w", err)
	}
	return nil
}
