package main

import (
	"os"

	"github.com/labops/labctl/service/statefile"
)

// Config holds environment-based configuration for the lab status server
type Config struct {
	// Path of the file labctl writes the project ID to
	StateFile string

	// Prefix of generated lab project IDs
	ProjectPrefix string
}

// LoadConfig reads configuration from environment variables
func LoadConfig() *Config {
	stateFile := os.Getenv("LAB_PROJECT_FILE")
	if stateFile == "" {
		if path, err := statefile.DefaultPath(); err == nil {
			stateFile = path
		}
	}

	return &Config{
		StateFile:     stateFile,
		ProjectPrefix: getEnvOrDefault("LAB_PROJECT_PREFIX", "gcp-lab"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
