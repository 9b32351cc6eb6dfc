package config

import (
	"fmt"
	"os"
)

type Config struct {
	DatabasePath  string
	SessionSecret string
	BaseURL       string
	LogLevel      string
	Port          string
}

func Load() (Config, error) {
	config := Config{
		DatabasePath:  envOrDefault("DATABASE_PATH", "./data/habit-tracker.db"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		BaseURL:       envOrDefault("BASE_URL", "http://localhost:8080"),
		LogLevel:      envOrDefault("LOG_LEVEL", "info"),
		Port:          envOrDefault("PORT", "8080"),
	}

	if config.SessionSecret == "" {
		return Config{}, fmt.Errorf("SESSION_SECRET is required")
	}

	return config, nil
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
