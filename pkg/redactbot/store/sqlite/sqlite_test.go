package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/cognicore/redactbot/pkg/redactbot/store"
	"github.com/cognicore/redactbot/pkg/redactbot/store/storetest"
)

func TestSQLiteStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		st, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "runs.db"))
		if err != nil {
			t.Fatalf("OpenSQLite: %v", err)
		}
		return st
	})
}

func TestSQLiteInMemory(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		st, err := OpenSQLite(context.Background(), ":memory:")
		if err != nil {
			t.Fatalf("OpenSQLite: %v", err)
		}
		return st
	})
}

// TestSchemaCreationIdempotent tests that running initSchema multiple times is safe
func TestSchemaCreationIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open database: %v", err)
	}
	defer db.Close()

	for i := 0; i < 3; i++ {
		if err := initSchema(ctx, db); err != nil {
			t.Fatalf("initSchema iteration %d: %v", i, err)
		}
	}

	var count int
	err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'").Scan(&count)
	if err != nil {
		t.Fatalf("Count tables: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 table, got %d", count)
	}
}

func TestReopenPreservesRuns(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	st, err := OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	run := store.Run{
		ID:        "01HQ0000000000000000000009",
		StatusID:  42,
		Original:  "odd",
		Redacted:  "███",
		Jiggled:   "███",
		PostedID:  4242,
		CreatedAt: time.Date(2024, 5, 6, 7, 8, 9, 123456789, time.UTC),
	}
	if err := st.RecordRun(ctx, run); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	st, err = OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st.Close()

	got, err := st.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if !got.CreatedAt.Equal(run.CreatedAt) || got.Jiggled != run.Jiggled || got.PostedID != run.PostedID {
		t.Errorf("GetRun = %+v, want %+v", got, run)
	}
	if used, err := st.HasStatus(ctx, 42); err != nil || !used {
		t.Errorf("HasStatus = %v, %v", used, err)
	}
}
