package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/algoviz/practice/internal/model"
)

const snapshotsTable = "snapshots"

// DefaultKeepRevisions is how many saved versions are retained per key.
const DefaultKeepRevisions = 10

// SQLiteStore implements Store using SQLite. Every Save appends a new
// version of the blob; older versions are pruned past the retention limit.
type SQLiteStore struct {
	db      *sql.DB
	path    string
	key     string
	keep    int
	mu      sync.Mutex
	entropy *rand.Rand
}

// SQLiteOption configures a SQLiteStore.
type SQLiteOption func(*SQLiteStore)

// WithKey stores the blob under key instead of StorageKey.
func WithKey(key string) SQLiteOption {
	return func(s *SQLiteStore) { s.key = key }
}

// WithKeepRevisions sets how many versions are retained (minimum 1).
func WithKeepRevisions(n int) SQLiteOption {
	return func(s *SQLiteStore) {
		if n < 1 {
			n = 1
		}
		s.keep = n
	}
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string, opts ...SQLiteOption) (*SQLiteStore, error) {
	if err := EnsureDir(dbPath); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		path:    dbPath,
		key:     StorageKey,
		keep:    DefaultKeepRevisions,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id          TEXT PRIMARY KEY,
		key         TEXT NOT NULL,
		version     INTEGER NOT NULL,
		supersedes  TEXT,
		data        TEXT NOT NULL,
		created_at  TEXT NOT NULL
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_snapshots_key_version ON snapshots(key, version);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load returns the newest saved state, or nil if nothing was saved under the key.
func (s *SQLiteStore) Load(ctx context.Context) (*model.ProgressState, error) {
	query, args := s.builder().
		Select("data").
		From(entsql.Table(snapshotsTable)).
		Where(entsql.EQ("key", s.key)).
		OrderBy(entsql.Desc("version")).
		Limit(1).
		Query()

	var data string
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	return Decode([]byte(data))
}

// Save appends st as a new version and prunes old versions in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, st *model.ProgressState) error {
	data, err := Encode(st)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Check for existing latest version
	latestQ, latestArgs := s.builder().
		Select("id", "version").
		From(entsql.Table(snapshotsTable)).
		Where(entsql.EQ("key", s.key)).
		OrderBy(entsql.Desc("version")).
		Limit(1).
		Query()

	var prevID string
	var prevVersion int
	err = tx.QueryRowContext(ctx, latestQ, latestArgs...).Scan(&prevID, &prevVersion)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("query latest version: %w", err)
	}

	version := 1
	var supersedes any
	if err == nil {
		version = prevVersion + 1
		supersedes = prevID
	}

	insertQ, insertArgs := s.builder().
		Insert(snapshotsTable).
		Columns("id", "key", "version", "supersedes", "data", "created_at").
		Values(s.newID(), s.key, version, supersedes, string(data), time.Now().UTC().Format(time.RFC3339Nano)).
		Query()
	if _, err := tx.ExecContext(ctx, insertQ, insertArgs...); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	if cutoff := version - s.keep; cutoff > 0 {
		pruneQ, pruneArgs := s.builder().
			Delete(snapshotsTable).
			Where(entsql.And(
				entsql.EQ("key", s.key),
				entsql.LTE("version", cutoff),
			)).
			Query()
		if _, err := tx.ExecContext(ctx, pruneQ, pruneArgs...); err != nil {
			return fmt.Errorf("prune snapshots: %w", err)
		}
	}

	return tx.Commit()
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
