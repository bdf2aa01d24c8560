// Package storetest checks that a store.Store implementation behaves like
// the others.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/cognicore/redactbot/pkg/redactbot/internalerr"
	"github.com/cognicore/redactbot/pkg/redactbot/store"
)

// Run exercises a fresh store returned by open. The store is closed at the
// end of each subtest.
func Run(t *testing.T, open func(t *testing.T) store.Store) {
	t.Helper()

	t.Run("RecordAndGet", func(t *testing.T) {
		st := open(t)
		defer st.Close()
		testRecordAndGet(t, st)
	})
	t.Run("Duplicate", func(t *testing.T) {
		st := open(t)
		defer st.Close()
		testDuplicate(t, st)
	})
	t.Run("HasStatus", func(t *testing.T) {
		st := open(t)
		defer st.Close()
		testHasStatus(t, st)
	})
	t.Run("RecentRuns", func(t *testing.T) {
		st := open(t)
		defer st.Close()
		testRecentRuns(t, st)
	})
}

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func sampleRun(id string, statusID int64, offset time.Duration) store.Run {
	return store.Run{
		ID:        id,
		StatusID:  statusID,
		Query:     "weird",
		Original:  "This is a weird cat video",
		Redacted:  "This is a █████ cat video",
		Jiggled:   "This is a █████ cat clip",
		PostedID:  statusID * 10,
		CreatedAt: base.Add(offset),
	}
}

func testRecordAndGet(t *testing.T, st store.Store) {
	ctx := context.Background()
	want := sampleRun("01HQ0000000000000000000001", 1001, 0)
	want.PostedID = 0

	if err := st.RecordRun(ctx, want); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	got, err := st.GetRun(ctx, want.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetRun mismatch (-want +got):\n%s", diff)
	}
	if !got.DryRun() {
		t.Error("run without posted ID should be a dry run")
	}

	if _, err := st.GetRun(ctx, "missing"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("GetRun(missing) = %v, want ErrNotFound", err)
	}
}

func testDuplicate(t *testing.T, st store.Store) {
	ctx := context.Background()
	r := sampleRun("01HQ0000000000000000000002", 1002, 0)

	if err := st.RecordRun(ctx, r); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	r.Jiggled = "changed"
	if err := st.RecordRun(ctx, r); !errors.Is(err, internalerr.ErrDuplicate) {
		t.Fatalf("second RecordRun = %v, want ErrDuplicate", err)
	}

	got, err := st.GetRun(ctx, r.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Jiggled == "changed" {
		t.Error("duplicate insert overwrote the first run")
	}
}

func testHasStatus(t *testing.T, st store.Store) {
	ctx := context.Background()

	if used, err := st.HasStatus(ctx, 1003); err != nil || used {
		t.Fatalf("HasStatus before insert = %v, %v", used, err)
	}
	if err := st.RecordRun(ctx, sampleRun("01HQ0000000000000000000003", 1003, 0)); err != nil {
		t.Fatal(err)
	}
	if used, err := st.HasStatus(ctx, 1003); err != nil || !used {
		t.Errorf("HasStatus after insert = %v, %v", used, err)
	}
	if used, _ := st.HasStatus(ctx, 9999); used {
		t.Error("unrelated status reported as used")
	}
}

func testRecentRuns(t *testing.T, st store.Store) {
	ctx := context.Background()

	if runs, err := st.RecentRuns(ctx, 10); err != nil || len(runs) != 0 {
		t.Fatalf("RecentRuns on empty store = %v, %v", runs, err)
	}

	inserts := []store.Run{
		sampleRun("01HQ000000000000000000000A", 1, 1*time.Minute),
		sampleRun("01HQ000000000000000000000C", 3, 3*time.Minute),
		sampleRun("01HQ000000000000000000000B", 2, 2*time.Minute),
		// Same time as C; the larger ID sorts first.
		sampleRun("01HQ000000000000000000000D", 4, 3*time.Minute),
	}
	for _, r := range inserts {
		if err := st.RecordRun(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	ids := func(runs []store.Run) []string {
		out := make([]string, len(runs))
		for i, r := range runs {
			out[i] = r.ID
		}
		return out
	}

	runs, err := st.RecentRuns(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"01HQ000000000000000000000D", "01HQ000000000000000000000C"}
	if diff := cmp.Diff(want, ids(runs)); diff != "" {
		t.Errorf("RecentRuns(2) mismatch (-want +got):\n%s", diff)
	}

	runs, err = st.RecentRuns(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	want = []string{
		"01HQ000000000000000000000D",
		"01HQ000000000000000000000C",
		"01HQ000000000000000000000B",
		"01HQ000000000000000000000A",
	}
	if diff := cmp.Diff(want, ids(runs)); diff != "" {
		t.Errorf("RecentRuns(0) mismatch (-want +got):\n%s", diff)
	}
}
