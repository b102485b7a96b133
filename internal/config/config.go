// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tailscale/hujson"
)

// Storage backends.
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

// Config represents the configuration that can be loaded from a JSON file.
// Comments and trailing commas are allowed. All fields are optional; missing
// values use defaults or must be provided via CLI flags.
type Config struct {
	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Persistence
	Storage     string `json:"storage,omitempty"`      // memory, file or postgres
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	DocumentDir string `json:"document_dir,omitempty"` // Directory of JSON documents for file storage

	// Behavior
	LogMode      string `json:"log_mode,omitempty"`      // dev or prod
	HistoryLimit int    `json:"history_limit,omitempty"` // Undo steps kept per resume
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Port:         8080,
		Storage:      StorageFile,
		DocumentDir:  "resumes",
		LogMode:      "dev",
		HistoryLimit: 100,
	}
}

// LoadConfig loads configuration from a JSON (or JSONC) file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from environment variables. getenv is usually
// os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
		if c.Storage == "" {
			c.Storage = StoragePostgres
		}
	}
	if v := getenv("RESUME_DOCUMENT_DIR"); v != "" {
		c.DocumentDir = v
	}
	if v := getenv("LOG_MODE"); v != "" {
		c.LogMode = v
	}
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: PORT must be a number: %q", v)
		}
		c.Port = port
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("config error: 'history_limit' must be non-negative")
	}

	switch c.Storage {
	case "", StorageMemory, StorageFile:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for postgres storage")
		}
	default:
		return fmt.Errorf("config error: unknown storage %q", c.Storage)
	}

	switch c.LogMode {
	case "", "dev", "development", "prod", "production":
	default:
		return fmt.Errorf("config error: unknown log_mode %q", c.LogMode)
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Storage == "" {
		result.Storage = defaults.Storage
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.DocumentDir == "" {
		result.DocumentDir = defaults.DocumentDir
	}
	if result.LogMode == "" {
		result.LogMode = defaults.LogMode
	}

	// A zero history limit cannot be told apart from unset, so it always
	// takes the default. Disabling undo is not configurable.
	if result.HistoryLimit == 0 {
		result.HistoryLimit = defaults.HistoryLimit
	}

	return result
}
