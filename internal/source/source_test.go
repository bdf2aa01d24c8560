package source

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cognicore/redactbot/internal/twitter"
)

func ids(statuses []twitter.Status) []int64 {
	out := make([]int64, len(statuses))
	for i, s := range statuses {
		out[i] = s.ID
	}
	return out
}

func TestLoadFromJSONLFixture(t *testing.T) {
	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, nil))

	src, err := LoadFromJSONL("../../testdata/statuses.jsonl", log)
	if err != nil {
		t.Fatalf("LoadFromJSONL: %v", err)
	}
	if src.Len() != 4 {
		t.Errorf("Len = %d, want 4", src.Len())
	}
	if !strings.Contains(logs.String(), "skipping malformed line") || !strings.Contains(logs.String(), "line=4") {
		t.Errorf("expected a warning for line 4, got %q", logs.String())
	}

	got, err := src.Search(context.Background(), "ODD")
	if err != nil {
		t.Fatal(err)
	}
	want := []twitter.Status{{ID: 1003, Text: "Something odd & creepy happened at the party tonight"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Search mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchFallsBackToEverything(t *testing.T) {
	src := New([]twitter.Status{
		{ID: 1, Text: "weird cat"},
		{ID: 2, Text: "Weird dog"},
		{ID: 3, Text: "plain"},
	})

	got, _ := src.Search(context.Background(), "weird")
	if diff := cmp.Diff([]int64{1, 2}, ids(got)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	got, _ = src.Search(context.Background(), "spooky")
	if diff := cmp.Diff([]int64{1, 2, 3}, ids(got)); diff != "" {
		t.Errorf("fallback mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New(nil).Search(ctx, "odd"); err == nil {
		t.Fatal("expected context error")
	}
}

func TestLoadFromJSONLErrors(t *testing.T) {
	if _, err := LoadFromJSONL("/nonexistent/statuses.jsonl", nil); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.jsonl")
	if err := os.WriteFile(path, []byte("nope\n{broken\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromJSONL(path, nil); err == nil {
		t.Error("expected error when no line parses")
	}
}

func TestLoadFromJSONLShortText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.jsonl")
	if err := os.WriteFile(path, []byte(`{"id": 9, "text": "only text"}`+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	src, err := LoadFromJSONL(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	got, _ := src.Search(context.Background(), "only")
	if len(got) != 1 || got[0].Text != "only text" {
		t.Errorf("Search = %+v", got)
	}
}
