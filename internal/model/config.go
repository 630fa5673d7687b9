package model

import "time"

// Config holds the complete attest configuration
type Config struct {
	Annotator   AnnotatorConfig   `yaml:"annotator" json:"annotator"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Modality    ModalityConfig    `yaml:"modality" json:"modality"`
	Output      OutputConfig      `yaml:"output" json:"output"`
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
}

// AnnotatorConfig configures the linguistic annotator backend
type AnnotatorConfig struct {
	Backend           string        `yaml:"backend" json:"backend"`   // "rules" or "remote"
	BaseURL           string        `yaml:"base_url" json:"base_url"` // remote annotator endpoint
	Timeout           time.Duration `yaml:"timeout" json:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second" json:"requests_per_second"`
	BurstSize         int           `yaml:"burst_size" json:"burst_size"`
}

// ConcurrencyConfig configures worker counts
type ConcurrencyConfig struct {
	ExtractWorkers int `yaml:"extract_workers" json:"extract_workers"` // per-line extraction
	BatchWorkers   int `yaml:"batch_workers" json:"batch_workers"`     // parallel input files
}

// CacheConfig configures annotation caching
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir" json:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// ModalityConfig configures the modality classifier
type ModalityConfig struct {
	// ConfidenceThreshold is the minimum classification confidence below
	// which a line is flagged as low-confidence in the report manifest.
	ConfidenceThreshold float64 `yaml:"confidence_threshold" json:"confidence_threshold"`
}

// OutputConfig configures rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeMatrix bool `yaml:"include_matrix" json:"include_matrix"` // traceability matrix in markdown
}

// LLMConfig configures the optional plan reviewer
type LLMConfig struct {
	Provider  string `yaml:"provider" json:"provider"` // "", "openai", "anthropic", "ollama"
	Model     string `yaml:"model" json:"model"`
	APIKey    string `yaml:"-" json:"-"` // environment only, never persisted
	BaseURL   string `yaml:"base_url" json:"base_url"`
	Timeout   int    `yaml:"timeout" json:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" json:"max_tokens"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Annotator: AnnotatorConfig{
			Backend:           "rules",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 10,
			BurstSize:         5,
		},
		Concurrency: ConcurrencyConfig{
			ExtractWorkers: 4,
			BatchWorkers:   4,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Modality: ModalityConfig{
			ConfidenceThreshold: 0.75,
		},
		Output: OutputConfig{
			IncludeMatrix: true,
		},
	}
}
