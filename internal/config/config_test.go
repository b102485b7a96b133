package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		// local development
		"port": 9090,
		"storage": "postgres",
		"database_url": "postgres://localhost/resumes",
		"history_limit": 20,
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, "postgres://localhost/resumes", cfg.DatabaseURL)
	assert.Equal(t, 20, cfg.HistoryLimit)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_WrongType(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{"port": "eighty"}`), 0644))

	_, err := LoadConfig(tmpFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"DATABASE_URL":        "postgres://db/resumes",
		"RESUME_DOCUMENT_DIR": "/var/lib/resumes",
		"LOG_MODE":            "prod",
		"PORT":                "3000",
	}
	cfg := &Config{}
	require.NoError(t, cfg.ApplyEnv(func(k string) string { return env[k] }))

	assert.Equal(t, "postgres://db/resumes", cfg.DatabaseURL)
	assert.Equal(t, StoragePostgres, cfg.Storage, "a database url selects postgres storage")
	assert.Equal(t, "/var/lib/resumes", cfg.DocumentDir)
	assert.Equal(t, "prod", cfg.LogMode)
	assert.Equal(t, 3000, cfg.Port)

	cfg = &Config{Storage: StorageFile}
	require.NoError(t, cfg.ApplyEnv(func(k string) string { return env[k] }))
	assert.Equal(t, StorageFile, cfg.Storage, "explicit storage wins")

	err := (&Config{}).ApplyEnv(func(k string) string {
		if k == "PORT" {
			return "http"
		}
		return ""
	})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "defaults", cfg: Defaults()},
		{name: "empty", cfg: Config{}},
		{name: "negative port", cfg: Config{Port: -1}, wantErr: "port"},
		{name: "negative history", cfg: Config{HistoryLimit: -1}, wantErr: "history_limit"},
		{name: "postgres without url", cfg: Config{Storage: StoragePostgres}, wantErr: "database_url"},
		{name: "postgres", cfg: Config{Storage: StoragePostgres, DatabaseURL: "postgres://x"}},
		{name: "unknown storage", cfg: Config{Storage: "s3"}, wantErr: "unknown storage"},
		{name: "unknown log mode", cfg: Config{LogMode: "verbose"}, wantErr: "log_mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{
		Port:    9000,
		LogMode: "prod",
	}

	result := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, 9000, result.Port)
	assert.Equal(t, "prod", result.LogMode)
	assert.Equal(t, StorageFile, result.Storage)
	assert.Equal(t, "resumes", result.DocumentDir)
	assert.Equal(t, 100, result.HistoryLimit)
	assert.Equal(t, 0, cfg.HistoryLimit, "receiver is not modified")
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := &Config{Port: 1, DocumentDir: "docs"}

	result := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, 1, result.Port)
	assert.Equal(t, "docs", result.DocumentDir)
	assert.Empty(t, result.Storage)
}
