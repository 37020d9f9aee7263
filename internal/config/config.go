package config

import (
	"fmt"
	"os"
)

// Config holds all configuration for the application
type Config struct {
	TelegramToken string
	DatabaseURL   string
	GeminiAPIKey  string
	GeminiModel   string
	LogLevel      string
	Port          string
}

// Load loads configuration from environment variables. GEMINI_API_KEY is
// optional: without it the AI and OCR collaborators are disabled and the
// handlers serve fallback replies.
func Load() (*Config, error) {
	cfg := &Config{
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
		Port:         getEnvOrDefault("PORT", "8080"),
	}

	// Required environment variables
	if cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN"); cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN environment variable is required")
	}

	if cfg.DatabaseURL = os.Getenv("DATABASE_URL"); cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	return cfg, nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
