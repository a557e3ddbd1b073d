package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func clearEnv(t *testing.T) {
	for _, k := range []string{EnvDB, EnvCatalog, EnvLogLevel, EnvLogFormat, EnvKeepRevisions, EnvTZ} {
		unsetEnv(t, k)
	}
}

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_DATA_HOME", "/data")

	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/data", "practice", "progress.db"), cfg.DBPath)
	assert.Equal(t, "", cfg.CatalogPath)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 10, cfg.KeepRevisions)
	assert.Equal(t, time.Local, cfg.Location)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDB, "/tmp/p.db")
	t.Setenv(EnvCatalog, "problems.yaml")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvKeepRevisions, "3")
	t.Setenv(EnvTZ, "UTC")

	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/p.db", cfg.DBPath)
	assert.Equal(t, "problems.yaml", cfg.CatalogPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 3, cfg.KeepRevisions)
	assert.Equal(t, "UTC", cfg.Location.String())
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvLogLevel, "error")

	path := filepath.Join(t.TempDir(), ".env")
	content := "PRACTICE_CATALOG=from-file.yaml\nPRACTICE_LOG_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file.yaml", cfg.CatalogPath)
	assert.Equal(t, "error", cfg.LogLevel, "environment wins over .env")
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"keep not a number", EnvKeepRevisions, "lots"},
		{"keep zero", EnvKeepRevisions, "0"},
		{"unknown zone", EnvTZ, "Mars/Olympus_Mons"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(EnvDB, "/tmp/p.db")
			t.Setenv(tt.key, tt.value)

			_, err := Load(noEnvFile(t))
			assert.ErrorContains(t, err, tt.key)
		})
	}
}
