package main

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cognicore/redactbot/pkg/redactbot"
	"github.com/cognicore/redactbot/pkg/redactbot/stoplist"
	"github.com/cognicore/redactbot/pkg/redactbot/store"
	"github.com/cognicore/redactbot/pkg/redactbot/store/sqlite"
)

// TestBuildEngine tests that buildEngine loads the fixtures
func TestBuildEngine(t *testing.T) {
	engine, components, err := buildEngine(
		"../../testdata/stoplist.yaml",
		"../../testdata/phrases.dict",
		"../../testdata/thesaurus.yaml",
		42,
	)
	if err != nil {
		t.Fatalf("buildEngine failed: %v", err)
	}
	if engine == nil {
		t.Fatal("Expected non-nil engine")
	}
	if components.Phrases.Len() == 0 || components.Thesaurus.Stats().Synsets == 0 {
		t.Errorf("fixtures not loaded: %d phrases, %+v", components.Phrases.Len(), components.Thesaurus.Stats())
	}
}

func TestDescribeResources(t *testing.T) {
	_, components, err := buildEngine("", "", "", 1)
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	describeResources(&out, components)
	want := fmt.Sprintf("  %d stopwords, 0 phrases, 0 synsets (0 words)\n", stoplist.Default().Len())
	if out.String() != want {
		t.Errorf("describeResources = %q, want %q", out.String(), want)
	}
}

func TestBuildEngineMissingFiles(t *testing.T) {
	tmpDir := t.TempDir()
	for _, paths := range [][3]string{
		{filepath.Join(tmpDir, "nonexistent.yaml"), "", ""},
		{"", filepath.Join(tmpDir, "nonexistent.dict"), ""},
		{"", "", filepath.Join(tmpDir, "nonexistent.yaml")},
	} {
		if _, _, err := buildEngine(paths[0], paths[1], paths[2], 1); err == nil {
			t.Errorf("buildEngine(%v) should fail", paths)
		}
	}
}

func TestTransformOutput(t *testing.T) {
	engine, _, err := buildEngine("", "", "", 7)
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := transform(&out, engine, "@alice This is a weird cat video", redactbot.Ratios{Word: 1, Noun: 1}); err != nil {
		t.Fatalf("transform: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "masked:   @█████ This is a weird cat video") {
		t.Errorf("unexpected masked line:\n%s", got)
	}
	if !strings.Contains(got, "redacted: @█████") || !strings.Contains(got, "jiggled:") {
		t.Errorf("unexpected output:\n%s", got)
	}
}

func TestTransformRejectsBadRatios(t *testing.T) {
	engine, _, err := buildEngine("", "", "", 7)
	if err != nil {
		t.Fatal(err)
	}
	if err := transform(&bytes.Buffer{}, engine, "odd", redactbot.Ratios{Word: 2}); err == nil {
		t.Fatal("expected error for ratio above one")
	}
}

func TestPrintHistory(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	var out bytes.Buffer
	if err := printHistory(ctx, &out, dbPath, 5); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No runs recorded.") {
		t.Errorf("unexpected output for empty history: %q", out.String())
	}

	st, err := sqlite.OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatal(err)
	}
	runs := []store.Run{
		{ID: "01HQ00000000000000000000A1", StatusID: 1001, Query: "weird", Original: "old", Redacted: "███", Jiggled: "███",
			CreatedAt: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)},
		{ID: "01HQ00000000000000000000A2", StatusID: 1003, Query: "odd", Original: "new", Redacted: "new", Jiggled: "fresh",
			PostedID: 555, CreatedAt: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)},
	}
	for _, r := range runs {
		if err := st.RecordRun(ctx, r); err != nil {
			t.Fatal(err)
		}
	}
	st.Close()

	out.Reset()
	if err := printHistory(ctx, &out, dbPath, 1); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "status 1003") || !strings.Contains(got, "posted 555") || !strings.Contains(got, "jiggled:  fresh") {
		t.Errorf("unexpected history:\n%s", got)
	}
	if strings.Contains(got, "status 1001") {
		t.Errorf("limit ignored:\n%s", got)
	}
}
