package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// Stats holds database statistics.
type Stats struct {
	DBPath        string    `json:"db_path"`
	DBSizeBytes   int64     `json:"db_size_bytes"`
	Key           string    `json:"key"`
	Revisions     int       `json:"revisions"`
	LatestVersion int       `json:"latest_version"`
	LatestSavedAt time.Time `json:"latest_saved_at,omitempty"`
}

// Revision describes one saved version of the blob.
type Revision struct {
	ID         string    `json:"id"`
	Version    int       `json:"version"`
	Supersedes string    `json:"supersedes,omitempty"`
	SizeBytes  int       `json:"size_bytes"`
	CreatedAt  time.Time `json:"created_at"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{DBPath: s.path, Key: s.key}

	// DB file size
	if info, err := os.Stat(s.path); err == nil {
		st.DBSizeBytes = info.Size()
	}

	countQ, countArgs := s.builder().
		Select(entsql.Count("*")).
		From(entsql.Table(snapshotsTable)).
		Where(entsql.EQ("key", s.key)).
		Query()
	if err := s.db.QueryRowContext(ctx, countQ, countArgs...).Scan(&st.Revisions); err != nil {
		return st, err
	}

	revs, err := s.Revisions(ctx, 1)
	if err != nil {
		return st, err
	}
	if len(revs) > 0 {
		st.LatestVersion = revs[0].Version
		st.LatestSavedAt = revs[0].CreatedAt
	}
	return st, nil
}

// Revisions lists saved versions newest first. limit <= 0 means all.
func (s *SQLiteStore) Revisions(ctx context.Context, limit int) ([]Revision, error) {
	sel := s.builder().
		Select("id", "version", "supersedes", "LENGTH(data)", "created_at").
		From(entsql.Table(snapshotsTable)).
		Where(entsql.EQ("key", s.key)).
		OrderBy(entsql.Desc("version"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var revs []Revision
	for rows.Next() {
		var r Revision
		var supersedes sql.NullString
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Version, &supersedes, &r.SizeBytes, &createdAt); err != nil {
			return nil, err
		}
		r.Supersedes = supersedes.String
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		revs = append(revs, r)
	}
	return revs, rows.Err()
}

// ErrRevisionNotFound is returned when a version is not retained.
var ErrRevisionNotFound = errors.New("revision not found")

// RevisionData returns the stored blob of one version.
func (s *SQLiteStore) RevisionData(ctx context.Context, version int) ([]byte, error) {
	query, args := s.builder().
		Select("data").
		From(entsql.Table(snapshotsTable)).
		Where(entsql.And(entsql.EQ("key", s.key), entsql.EQ("version", version))).
		Query()

	var data string
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("version %d: %w", version, ErrRevisionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query revision: %w", err)
	}
	return []byte(data), nil
}
