// Package cli implements the practice CLI commands.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/algoviz/practice/internal/catalog"
	"github.com/algoviz/practice/internal/config"
	"github.com/algoviz/practice/internal/logging"
	"github.com/algoviz/practice/internal/notify"
	"github.com/algoviz/practice/internal/progress"
	"github.com/algoviz/practice/internal/store"
)

var (
	dbPath      string
	catalogPath string
	formatFlag  string
	logLevel    string
	tzFlag      string

	cfg    *config.Config
	logger *slog.Logger
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "practice",
	Short: "Spaced-repetition tracker for algorithm practice",
	Long: "Track solved algorithm problems, schedule reviews from your confidence and keep a daily streak. " +
		"SQLite-backed, single binary.",
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization
	// cycle (RootCmd -> setup -> exitErr -> RootCmd).
	RootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) { setup() }
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (default: $PRACTICE_DB or $XDG_DATA_HOME/practice/progress.db)")
	RootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Problem catalog YAML (default: $PRACTICE_CATALOG)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: $PRACTICE_LOG_LEVEL or warn)")
	RootCmd.PersistentFlags().StringVar(&tzFlag, "tz", "", "Time zone for streak days (default: $PRACTICE_TZ or local)")
}

// setup resolves configuration and the logger. Flags override the environment.
func setup() {
	c, err := config.Load()
	if err != nil {
		exitErr("load config", err)
	}
	if dbPath != "" {
		c.DBPath = dbPath
	}
	if catalogPath != "" {
		c.CatalogPath = catalogPath
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if tzFlag != "" {
		loc, err := config.LoadLocation(tzFlag)
		if err != nil {
			exitErr("tz", err)
		}
		c.Location = loc
	}
	if formatFlag != "json" && formatFlag != "text" {
		exitErr("format", fmt.Errorf("want json or text, got %q", formatFlag))
	}

	l, err := logging.New(logging.Config{Format: c.LogFormat, Level: c.LogLevel})
	if err != nil {
		exitErr("logger", err)
	}
	cfg, logger = c, l
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(cfg.DBPath, store.WithKeepRevisions(cfg.KeepRevisions))
}

// openScheduler opens the store and loads the scheduler state. The returned
// func closes the store.
func openScheduler(cmd *cobra.Command) (*progress.Scheduler, func()) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	sched := progress.New(cmd.Context(), s,
		progress.WithLogger(logger),
		progress.WithLocation(cfg.Location),
	)
	sched.Subscribe(func(e notify.Event) {
		logger.Debug("progress changed", "kind", e.Kind, "item", e.ItemID, "at", e.At)
	})
	return sched, func() { s.Close() }
}

// loadCatalog returns the configured catalog, or nil when none is set.
func loadCatalog() *catalog.Catalog {
	if cfg.CatalogPath == "" {
		return nil
	}
	c, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		exitErr("load catalog", err)
	}
	logger.Debug("catalog loaded", "path", cfg.CatalogPath, "items", c.Len())
	return c
}

// osExit is replaced in tests.
var osExit = os.Exit

func exitErr(msg string, err error) {
	fmt.Fprintf(RootCmd.ErrOrStderr(), "error: %s: %v\n", msg, err)
	osExit(1)
}
