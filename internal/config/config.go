// ABOUTME: Centralized configuration for the cocktail RAG server
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the cocktail RAG system
type Config struct {
	// Dataset settings
	DataPath string

	// Charm settings (vector index backend)
	CharmHost string
	IndexName string
	AutoSync  bool

	// Index backend: "charm" or "memory"
	IndexBackend string

	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Retrieval settings
	EmbeddingDimension  int
	TopK                int
	SimilarityThreshold float64
	EmbedBatchSize      int
	UpsertBatchSize     int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		DataPath:            getEnv("COCKTAIL_DATA_PATH", "data/cocktails.json"),
		CharmHost:           getEnv("CHARM_HOST", "cloud.charm.sh"),
		IndexName:           getEnv("COCKTAIL_INDEX_NAME", "cocktails"),
		AutoSync:            getEnvBool("CHARM_AUTO_SYNC", true),
		IndexBackend:        getEnv("COCKTAIL_INDEX_BACKEND", "charm"),
		OpenAIKey:           os.Getenv("OPENAI_API_KEY"),
		ChatModel:           getEnv("COCKTAIL_OPENAI_MODEL", "gpt-4o-mini"),
		EmbeddingModel:      getEnv("COCKTAIL_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:             getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:          getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:          getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		EmbeddingDimension:  getEnvInt("EMBEDDING_DIMENSION", 1536),
		TopK:                getEnvInt("COCKTAIL_TOP_K", 5),
		SimilarityThreshold: getEnvFloat("SIMILARITY_THRESHOLD", 0.32),
		EmbedBatchSize:      getEnvInt("EMBED_BATCH_SIZE", 32),
		UpsertBatchSize:     getEnvInt("UPSERT_BATCH_SIZE", 100),
	}

	return cfg, cfg.Validate()
}

// MaxTopK caps query fan-out regardless of configuration.
const MaxTopK = 1000

func (c *Config) Validate() error {
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("SIMILARITY_THRESHOLD must be 0-1, got %f", c.SimilarityThreshold)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.EmbeddingDimension <= 0 {
		return fmt.Errorf("EMBEDDING_DIMENSION must be positive, got %d", c.EmbeddingDimension)
	}
	if c.TopK <= 0 || c.TopK > MaxTopK {
		return fmt.Errorf("COCKTAIL_TOP_K must be 1-%d, got %d", MaxTopK, c.TopK)
	}
	if c.IndexBackend != "charm" && c.IndexBackend != "memory" {
		return fmt.Errorf("COCKTAIL_INDEX_BACKEND must be charm or memory, got %q", c.IndexBackend)
	}
	if c.EmbedBatchSize <= 0 {
		return fmt.Errorf("EMBED_BATCH_SIZE must be positive, got %d", c.EmbedBatchSize)
	}
	if c.UpsertBatchSize <= 0 {
		return fmt.Errorf("UPSERT_BATCH_SIZE must be positive, got %d", c.UpsertBatchSize)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
