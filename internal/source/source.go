// Package source serves statuses from a local JSONL file, standing in for
// the search API on dry runs.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/cognicore/redactbot/internal/twitter"
)

// Source holds statuses loaded from disk.
type Source struct {
	statuses []twitter.Status
}

type line struct {
	ID       int64  `json:"id"`
	FullText string `json:"full_text"`
	Text     string `json:"text"`
}

// LoadFromJSONL loads statuses from a JSONL file, one
// {"id": ..., "full_text": ...} object per line. Malformed lines are
// skipped with a warning on log, which may be nil. Text is cleaned like
// API results.
func LoadFromJSONL(path string, log *slog.Logger) (*Source, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var statuses []twitter.Status
	for i, raw := range strings.Split(string(data), "\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		var l line
		if err := json.Unmarshal([]byte(raw), &l); err != nil {
			log.Warn("skipping malformed line", "path", path, "line", i+1, "err", err)
			continue
		}
		text := l.FullText
		if text == "" {
			text = l.Text
		}
		statuses = append(statuses, twitter.Status{ID: l.ID, Text: twitter.CleanText(text)})
	}

	if len(statuses) == 0 {
		return nil, fmt.Errorf("no valid statuses found in %s", path)
	}

	return New(statuses), nil
}

// New creates a Source over the given statuses.
func New(statuses []twitter.Status) *Source {
	return &Source{statuses: statuses}
}

// Len returns the number of statuses.
func (s *Source) Len() int { return len(s.statuses) }

// Search returns the statuses containing query, ignoring case. When none
// do, every status is returned so that a dry run always has material.
func (s *Source) Search(ctx context.Context, query string) ([]twitter.Status, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var matches []twitter.Status
	for _, st := range s.statuses {
		if strings.Contains(strings.ToLower(st.Text), q) {
			matches = append(matches, st)
		}
	}
	if len(matches) == 0 {
		return append([]twitter.Status(nil), s.statuses...), nil
	}
	return matches, nil
}
