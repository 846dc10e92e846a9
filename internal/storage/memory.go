// Package storage holds finished analyses in memory for the lifetime of the
// process. There is no persistence; a restart clears all results.
package storage

import (
	"errors"
	"sync"

	"github.com/tumorx-ai/tumorx/internal/analysis"
)

// ErrNotFound is returned when no analysis exists for the requested ID.
var ErrNotFound = errors.New("analysis not found")

// MemoryAnalysisStore is an in-memory analysis store keyed by analysis ID.
type MemoryAnalysisStore struct {
	mu       sync.RWMutex
	analyses map[string]*analysis.Analysis
}

func NewMemoryAnalysisStore() *MemoryAnalysisStore {
	return &MemoryAnalysisStore{
		analyses: make(map[string]*analysis.Analysis),
	}
}

// Save stores the analysis under its ID, replacing any previous entry.
func (s *MemoryAnalysisStore) Save(a *analysis.Analysis) error {
	s.mu.Lock()
	s.analyses[a.ID] = a
	s.mu.Unlock()
	return nil
}

// Get returns the analysis for the ID or ErrNotFound.
func (s *MemoryAnalysisStore) Get(id string) (*analysis.Analysis, error) {
	s.mu.RLock()
	a, ok := s.analyses[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	return a, nil
}
