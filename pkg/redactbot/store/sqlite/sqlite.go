package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/redactbot/pkg/redactbot/internalerr"
	"github.com/cognicore/redactbot/pkg/redactbot/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled and creates the
// schema if needed. Use ":memory:" for a throwaway database.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// An in-memory database exists per connection.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	status_id INTEGER NOT NULL,
	query TEXT NOT NULL DEFAULT '',
	original TEXT NOT NULL,
	redacted TEXT NOT NULL,
	jiggled TEXT NOT NULL,
	posted_id INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS runs_status_id ON runs(status_id);
CREATE INDEX IF NOT EXISTS runs_created_at ON runs(created_at);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// RecordRun inserts a run; the ID must be new.
func (s *sqliteStore) RecordRun(ctx context.Context, r store.Run) error {
	const stmt = `
INSERT INTO runs (id, status_id, query, original, redacted, jiggled, posted_id, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO NOTHING;
`
	res, err := s.db.ExecContext(ctx, stmt,
		r.ID,
		r.StatusID,
		r.Query,
		r.Original,
		r.Redacted,
		r.Jiggled,
		r.PostedID,
		r.CreatedAt.UnixNano(),
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return internalerr.ErrDuplicate
	}
	return nil
}

// GetRun retrieves a run by ID
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, status_id, query, original, redacted, jiggled, posted_id, created_at
FROM runs WHERE id = ?`, id)

	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Run{}, internalerr.ErrNotFound
	}
	return r, err
}

// HasStatus reports whether a run already used the status
func (s *sqliteStore) HasStatus(ctx context.Context, statusID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM runs WHERE status_id = ?)`, statusID).Scan(&exists)
	return exists, err
}

// RecentRuns returns the newest runs first
func (s *sqliteStore) RecentRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = -1 // no limit
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, status_id, query, original, redacted, jiggled, posted_id, created_at
FROM runs
ORDER BY created_at DESC, id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []store.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (store.Run, error) {
	var (
		r       store.Run
		created int64
	)
	err := sc.Scan(&r.ID, &r.StatusID, &r.Query, &r.Original, &r.Redacted, &r.Jiggled, &r.PostedID, &created)
	if err != nil {
		return store.Run{}, err
	}
	r.CreatedAt = time.Unix(0, created).UTC()
	return r, nil
}
