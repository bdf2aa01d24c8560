package store

import (
	"context"
	"time"
)

// Store persists the history of bot runs. It is also how the bot avoids
// posting the same status twice.
type Store interface {
	Close() error

	// RecordRun saves a run. A second run with the same ID fails with
	// internalerr.ErrDuplicate.
	RecordRun(ctx context.Context, r Run) error

	// GetRun returns the run with the given ID, or internalerr.ErrNotFound.
	GetRun(ctx context.Context, id string) (Run, error)

	// HasStatus reports whether any recorded run used the status.
	HasStatus(ctx context.Context, statusID int64) (bool, error)

	// RecentRuns returns up to limit runs, newest first. A limit of zero or
	// less returns every run.
	RecentRuns(ctx context.Context, limit int) ([]Run, error)
}

// Run is one pass of the bot: a status picked by a search query, its
// redacted and jiggled forms and, unless it was a dry run, the ID of the
// posted status.
type Run struct {
	ID        string // ULID
	StatusID  int64
	Query     string
	Original  string
	Redacted  string
	Jiggled   string
	PostedID  int64 // 0 for dry runs
	CreatedAt time.Time
}

// DryRun reports whether nothing was posted.
func (r Run) DryRun() bool { return r.PostedID == 0 }
