// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DefaultModel is the Imagen model invoked for every generation call.
	DefaultModel = "imagen-4.0-generate-001"

	defaultLogLevel = "info"
)

// Config represents process configuration loaded once at startup. It is
// immutable after Load and passed explicitly into constructors.
type Config struct {
	APIKey    string
	Model     string
	OutputDir string
	LogLevel  string
}

// Load reads configuration from an optional .env file and the environment.
// A missing GEMINI_API_KEY is a startup error; the transport must not open
// without a credential to forward.
func Load() (*Config, error) {
	// Best effort; absence of the file is not an error.
	_ = godotenv.Load(".env")

	cfg := &Config{
		APIKey:    strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		Model:     getEnv("IMAGEN_MODEL", DefaultModel),
		OutputDir: getEnv("IMAGEN_OUTPUT_DIR", os.TempDir()),
		LogLevel:  getEnv("LOG_LEVEL", defaultLogLevel),
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
