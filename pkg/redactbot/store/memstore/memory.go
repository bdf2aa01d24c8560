package memstore

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/cognicore/redactbot/pkg/redactbot/internalerr"
	"github.com/cognicore/redactbot/pkg/redactbot/store"
)

// Store is an in-memory implementation of store.Store for tests and dry runs.
type Store struct {
	mu       sync.RWMutex
	runs     map[string]store.Run
	statuses map[int64]int
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		runs:     make(map[string]store.Run),
		statuses: make(map[int64]int),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// RecordRun implements store.Store.
func (s *Store) RecordRun(ctx context.Context, r store.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[r.ID]; ok {
		return internalerr.ErrDuplicate
	}
	s.runs[r.ID] = r
	s.statuses[r.StatusID]++
	return nil
}

// GetRun implements store.Store.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.runs[id]
	if !ok {
		return store.Run{}, internalerr.ErrNotFound
	}
	return r, nil
}

// HasStatus implements store.Store.
func (s *Store) HasStatus(ctx context.Context, statusID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.statuses[statusID] > 0, nil
}

// RecentRuns implements store.Store.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]store.Run, 0, len(s.runs))
	for _, r := range s.runs {
		runs = append(runs, r)
	}
	slices.SortFunc(runs, func(a, b store.Run) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}
