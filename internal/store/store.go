// Package store provides durable persistence for the practice progress state.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/algoviz/practice/internal/model"
)

// StorageKey is the well-known key the progress blob is stored under.
const StorageKey = "algo-practice-progress"

// ErrCorrupt marks stored data that could not be decoded or validated.
var ErrCorrupt = errors.New("corrupt progress data")

// Store defines the durable state surface used by the scheduler.
type Store interface {
	// Load returns the last saved state, or nil when nothing was saved yet.
	Load(ctx context.Context) (*model.ProgressState, error)

	// Save replaces the stored state with s.
	Save(ctx context.Context, s *model.ProgressState) error

	// Close releases the store.
	Close() error
}

// DefaultDBPath resolves the database file path:
// 1. $XDG_DATA_HOME/practice/progress.db
// 2. ~/.local/share/practice/progress.db
func DefaultDBPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "practice", "progress.db"), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
