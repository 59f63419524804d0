// Package memstore provides an in-memory implementation of
// history.Store. Suitable for dev/testing and for deployments without a
// database.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/tkhongsap/commodity-currency-research/internal/history"
)

const maxRuns = 1000

// Store holds run summaries in memory, bounded to the most recent
// maxRuns entries.
type Store struct {
	mu    sync.RWMutex
	runs  map[string]*history.Run
	order []string // insertion order, oldest first
}

// New initializes a new in-memory Store.
func New() *Store {
	return &Store{
		runs: make(map[string]*history.Run),
	}
}

// Put stores a copy of the run, evicting the oldest entry when full.
func (s *Store) Put(_ context.Context, run *history.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[run.ID]; !exists {
		s.order = append(s.order, run.ID)
	}
	cp := *run
	s.runs[run.ID] = &cp

	for len(s.order) > maxRuns {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.runs, oldest)
	}
	return nil
}

// Get retrieves a run by its ID. Returns a copy.
func (s *Store) Get(_ context.Context, id string) (*history.Run, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[id]
	if !ok {
		return nil, false, nil
	}
	cp := *r
	return &cp, true, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(_ context.Context, limit int) ([]*history.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*history.Run, 0, len(s.runs))
	for _, r := range s.runs {
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
