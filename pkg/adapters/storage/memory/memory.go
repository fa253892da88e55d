package memory

import (
	"context"
	"sync"

	"github.com/voyago/voyago/internal/domain"
	"github.com/voyago/voyago/internal/ports"
)

// ResultStore implements ports.ResultStore using an in-memory map.
type ResultStore struct {
	mu      sync.RWMutex
	results map[string]*domain.PlanResult
}

// NewResultStore creates an empty in-memory result store.
func NewResultStore() *ResultStore {
	return &ResultStore{
		results: make(map[string]*domain.PlanResult),
	}
}

// Save stores a copy of the result.
func (s *ResultStore) Save(ctx context.Context, result *domain.PlanResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Copy to keep later caller mutations out of the store.
	resultCopy := *result
	s.results[result.PlanID] = &resultCopy
	return nil
}

// Get returns the result for a plan ID.
func (s *ResultStore) Get(ctx context.Context, planID string) (*domain.PlanResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.results[planID]
	if !ok {
		return nil, ports.ErrResultNotFound
	}
	resultCopy := *result
	return &resultCopy, nil
}

// Delete removes the result for a plan ID.
func (s *ResultStore) Delete(ctx context.Context, planID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.results, planID)
	return nil
}

// List returns all stored plan IDs.
func (s *ResultStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	planIDs := make([]string, 0, len(s.results))
	for id := range s.results {
		planIDs = append(planIDs, id)
	}
	return planIDs, nil
}

var _ ports.ResultStore = (*ResultStore)(nil)
