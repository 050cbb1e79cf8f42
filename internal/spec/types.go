package spec

type Config struct {
	Version    int              `yaml:"version"`
	Output     OutputConfig     `yaml:"output"`
	Generation GenerationConfig `yaml:"generation"`
	Retrieval  RetrievalConfig  `yaml:"retrieval"`
	Judge      JudgeConfig      `yaml:"judge"`
	Batch      BatchConfig      `yaml:"batch"`
	Analysis   AnalysisConfig   `yaml:"analysis"`
}

type OutputConfig struct {
	Dir      string `yaml:"dir"`
	Timezone string `yaml:"timezone"`
}

type GenerationConfig struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url"`
	Temperature float64 `yaml:"temperature"`
}

type RetrievalConfig struct {
	TopK           int    `yaml:"top_k"`
	Collection     string `yaml:"collection"`
	EmbeddingModel string `yaml:"embedding_model"`
	VectorSize     int    `yaml:"vector_size"`
	ChunkWords     int    `yaml:"chunk_words"`
	DocumentsGlob  string `yaml:"documents_glob"`
}

// JudgeConfig holds the judge retry policy and heuristic verdict thresholds.
type JudgeConfig struct {
	Attempts           int     `yaml:"attempts"`
	BaseBackoffMs      int     `yaml:"base_backoff_ms"`
	CorrectThreshold   float64 `yaml:"correct_threshold"`
	UncertainThreshold float64 `yaml:"uncertain_threshold"`
}

// BatchConfig holds the correctness threshold and cooldown cadence for batch runs.
type BatchConfig struct {
	Threshold       float64 `yaml:"threshold"`
	BatchSize       int     `yaml:"batch_size"`
	CooldownSeconds *int    `yaml:"cooldown_seconds"`
}

type AnalysisConfig struct {
	InputGlob            string         `yaml:"input_glob"`
	OutputDir            string         `yaml:"output_dir"`
	ProblematicScoreDiff float64        `yaml:"problematic_score_diff"`
	FallbackCategory     string         `yaml:"fallback_category"`
	Categories           []CategoryRule `yaml:"categories"`
}

// CategoryRule maps a question category to the keywords that select it.
type CategoryRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}
