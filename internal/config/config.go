package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultOutputDir  = "output"
	defaultMaxWorkers = 4
	defaultLogLevel   = "info"
)

// Config holds the process-wide settings read from the environment.
type Config struct {
	OutputDir  string
	MaxWorkers int
	LogLevel   string
}

// Load reads configuration from the environment, consulting a .env file
// when one is present.
func Load() (*Config, error) {
	// Missing .env is fine, environment variables still apply.
	_ = godotenv.Load()

	cfg := &Config{
		OutputDir:  defaultOutputDir,
		MaxWorkers: defaultMaxWorkers,
		LogLevel:   defaultLogLevel,
	}

	if dir := os.Getenv("FLEXIBLUR_OUTPUT_DIR"); dir != "" {
		cfg.OutputDir = dir
	}

	if raw := os.Getenv("FLEXIBLUR_MAX_WORKERS"); raw != "" {
		workers, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid FLEXIBLUR_MAX_WORKERS %q: %w", raw, err)
		}
		if workers < 1 {
			return nil, fmt.Errorf("FLEXIBLUR_MAX_WORKERS must be positive, got %d", workers)
		}
		cfg.MaxWorkers = workers
	}

	if level := os.Getenv("FLEXIBLUR_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	return cfg, nil
}
