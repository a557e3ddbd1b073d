// Package config resolves runtime settings from an optional .env file and
// the process environment. Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/algoviz/practice/internal/store"
)

// Environment variable names.
const (
	EnvDB            = "PRACTICE_DB"
	EnvCatalog       = "PRACTICE_CATALOG"
	EnvLogLevel      = "PRACTICE_LOG_LEVEL"
	EnvLogFormat     = "PRACTICE_LOG_FORMAT"
	EnvKeepRevisions = "PRACTICE_KEEP_REVISIONS"
	EnvTZ            = "PRACTICE_TZ"
)

// Config holds the resolved runtime settings.
type Config struct {
	DBPath        string
	CatalogPath   string
	LogLevel      string
	LogFormat     string
	KeepRevisions int
	Location      *time.Location
}

// Load reads the given .env files (".env" when none are named) and then the
// environment. Missing .env files are not an error; variables already set in
// the environment win over file values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{
		DBPath:      getEnv(EnvDB, ""),
		CatalogPath: getEnv(EnvCatalog, ""),
		LogLevel:    getEnv(EnvLogLevel, "warn"),
		LogFormat:   getEnv(EnvLogFormat, "text"),
	}

	if cfg.DBPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = p
	}

	keep := getEnv(EnvKeepRevisions, strconv.Itoa(store.DefaultKeepRevisions))
	n, err := strconv.Atoi(keep)
	if err != nil || n < 1 {
		return nil, fmt.Errorf("%s: want a positive integer, got %q", EnvKeepRevisions, keep)
	}
	cfg.KeepRevisions = n

	loc, err := LoadLocation(getEnv(EnvTZ, ""))
	if err != nil {
		return nil, err
	}
	cfg.Location = loc

	return cfg, nil
}

// LoadLocation resolves an IANA zone name. Empty means the system zone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvTZ, err)
	}
	return loc, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
