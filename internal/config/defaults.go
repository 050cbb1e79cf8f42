package config

import "ragjudge/internal/spec"

// Defaults applied by Normalize when a field is left unset.
const (
	DefaultOutputDir          = "test"
	DefaultTimezone           = "Asia/Jakarta"
	DefaultProvider           = "gemini"
	DefaultModel              = "gemini-2.0-flash"
	DefaultEmbeddingModel     = "embedding-001"
	DefaultCollection         = "nara_documents"
	DefaultVectorSize         = 768
	DefaultChunkWords         = 300
	DefaultDocumentsGlob      = "data/*.md"
	DefaultTopK               = 5
	DefaultJudgeAttempts      = 3
	DefaultBaseBackoffMs      = 1000
	DefaultCorrectThreshold   = 0.8
	DefaultUncertainThreshold = 0.6
	DefaultThreshold          = 0.7
	DefaultBatchSize          = 5
	DefaultCooldownSeconds    = 70
	DefaultAnalysisGlob       = "eval/*.csv"
	DefaultAnalysisOutputDir  = "output"
	DefaultProblematicDiff    = 0.3
	DefaultFallbackCategory   = "Lainnya"
)

// DefaultCategories returns the keyword rules used to bucket questions.
func DefaultCategories() []spec.CategoryRule {
	return []spec.CategoryRule{
		{Name: "Identitas_UKRI", Keywords: []string{"ukri", "universitas kebangsaan", "singkatan", "alamat"}},
		{Name: "Sejarah", Keywords: []string{"kapan", "tahun", "didirikan", "berdiri", "berubah"}},
		{Name: "Struktur_Organisasi", Keywords: []string{"rektor", "dekan", "ketua", "wakil"}},
		{Name: "Fakultas_Program", Keywords: []string{"fakultas", "program studi", "fiksi", "fti", "ftsp"}},
		{Name: "Akreditasi", Keywords: []string{"akreditasi", "status", "lembaga"}},
	}
}
