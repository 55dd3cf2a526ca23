package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// HTTP server settings
	APIAddr string
	APIKey  string
	DevMode bool

	// Redis settings (optional; empty disables the shared cache)
	RedisAddr string

	// Generative model settings
	GeminiAPIKey string
	GeminiModel  string
	LLMBaseURL   string

	// Price provider settings
	PriceBaseURL   string
	PriceBackupURL string
	PriceInterval  time.Duration

	// Analysis cache
	AnalysisTTL time.Duration

	// Simulation settings
	ApproveDelay time.Duration
	SwapDelay    time.Duration
}

func Load() *Config {
	return &Config{
		// HTTP
		APIAddr: getEnv("API_ADDR", ":8080"),
		APIKey:  getEnv("API_KEY", ""),
		DevMode: getBoolEnv("DEV_MODE", false),

		// Redis
		RedisAddr: getEnv("REDIS_ADDR", ""),

		// Model
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "google/gemini-2.0-flash-001"),
		LLMBaseURL:   getEnv("LLM_BASE_URL", ""),

		// Prices
		PriceBaseURL:   getEnv("PRICE_BASE_URL", ""),
		PriceBackupURL: getEnv("PRICE_BACKUP_URL", ""),
		PriceInterval:  getDurationEnv("PRICE_POLL_INTERVAL", 30*time.Second),

		// Cache
		AnalysisTTL: getDurationEnv("ANALYSIS_CACHE_TTL", time.Minute),

		// Simulation
		ApproveDelay: getDurationEnv("APPROVE_DELAY", 2*time.Second),
		SwapDelay:    getDurationEnv("SWAP_DELAY", 3*time.Second),
	}
}

// Validate checks the loaded configuration. A missing GEMINI_API_KEY is
// allowed; the analysis flow then always serves the local mock.
func (c *Config) Validate() error {
	if c.APIAddr == "" {
		return fmt.Errorf("API_ADDR must not be empty")
	}
	if c.AnalysisTTL <= 0 {
		return fmt.Errorf("ANALYSIS_CACHE_TTL must be positive")
	}
	if c.PriceInterval <= 0 {
		return fmt.Errorf("PRICE_POLL_INTERVAL must be positive")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getBoolEnv(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
