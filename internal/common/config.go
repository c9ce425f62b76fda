package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	LLM   LLMConfig
	Paths PathsConfig
	Batch BatchConfig
}

// LLMConfig holds LLM-related configuration
type LLMConfig struct {
	Model   string
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// PathsConfig holds the default directories the pipeline reads and writes.
type PathsConfig struct {
	MetadataDir string // tabular metadata feed (CSV/XLSX) directory
	PDFDir      string // downloaded source PDFs
	ResultsDir  string // per-case JSON records + batch summary
}

// BatchConfig holds batch-run behavior.
type BatchConfig struct {
	DeletePDFs bool // remove source PDFs after their record is persisted
	Limit      int  // cap on cases per run, 0 = unlimited
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			BaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Timeout: getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
		},
		Paths: PathsConfig{
			MetadataDir: getEnv("FDA_OUTPUT_DIR", "./fda_outputs"),
			PDFDir:      getEnv("DOWNLOADED_PDFS_DIR", "./downloaded_pdfs"),
			ResultsDir:  getEnv("RESULTS_DIR", "results"),
		},
		Batch: BatchConfig{
			DeletePDFs: getEnvAsBool("DELETE_PDFS", true),
			Limit:      getEnvAsInt("BATCH_LIMIT", 0),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required", ErrConfiguration)
	}
	if c.LLM.Model == "" {
		return NewAppError("CONFIG_ERROR", "OPENAI_MODEL is required", ErrConfiguration)
	}
	return nil
}
