// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/aristath/productpulse/internal/utils"
	"github.com/joho/godotenv"
)

// Default seller allow-lists
const (
	DefaultTrustedSellers = "amazon,walmart,bestbuy,flipkart"
	DefaultRefurbSellers  = "reebelo,cashify,backmarket"
)

// Config holds application configuration
type Config struct {
	DataDir   string // Directory holding client_data.db (always absolute)
	Port      int
	LogLevel  string
	DevMode   bool
	ModelPath string // Classifier artifact; empty uses the embedded default

	Narrative NarrativeConfig

	SerpAPIKey     string
	TrustedSellers []string
	RefurbSellers  []string

	CacheCleanupSchedule string
}

// NarrativeConfig holds narrator settings
type NarrativeConfig struct {
	Enabled     bool
	OllamaURL   string
	OllamaModel string
	Timeout     time.Duration
	CacheTTL    time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	absDataDir, err := filepath.Abs(getEnv("PULSE_DATA_DIR", "./data"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:   absDataDir,
		Port:      getEnvAsInt("GO_PORT", 8080),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		DevMode:   getEnvAsBool("DEV_MODE", false),
		ModelPath: getEnv("MODEL_PATH", ""),
		Narrative: NarrativeConfig{
			Enabled:     getEnvAsBool("NARRATIVE_ENABLED", true),
			OllamaURL:   getEnv("OLLAMA_URL", "http://localhost:11434"),
			OllamaModel: getEnv("OLLAMA_MODEL", "llama3.1:8b"),
			Timeout:     time.Duration(getEnvAsInt("NARRATIVE_TIMEOUT_SECONDS", 20)) * time.Second,
			CacheTTL:    time.Duration(getEnvAsInt("NARRATIVE_CACHE_TTL_HOURS", 24)) * time.Hour,
		},
		SerpAPIKey:           getEnv("SERPAPI_KEY", ""),
		TrustedSellers:       utils.ParseCSVLower(getEnv("TRUSTED_SELLERS", DefaultTrustedSellers)),
		RefurbSellers:        utils.ParseCSVLower(getEnv("REFURB_SELLERS", DefaultRefurbSellers)),
		CacheCleanupSchedule: getEnv("CACHE_CLEANUP_SCHEDULE", "0 0 3 * * *"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DatabasePath returns the location of client_data.db
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "client_data.db")
}

// FetcherEnabled reports whether live listing search is configured
func (c *Config) FetcherEnabled() bool {
	return c.SerpAPIKey != ""
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Port <= 0 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Narrative.Timeout <= 0 {
		return fmt.Errorf("narrative timeout must be positive, got %s", c.Narrative.Timeout)
	}
	if c.Narrative.Enabled && c.Narrative.OllamaModel == "" {
		return fmt.Errorf("OLLAMA_MODEL is required when narrative generation is enabled")
	}
	return nil
}

// Helper functions
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
