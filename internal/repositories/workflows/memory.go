package workflows

import (
	"context"
	"sync"

	"github.com/estate-chain/marketplace-router/internal/resources/estate"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// MemoryStore keeps workflows for the lifetime of the process
type MemoryStore struct {
	mu        sync.RWMutex
	workflows map[uuid.UUID]*estate.ListingWorkflow
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		workflows: make(map[uuid.UUID]*estate.ListingWorkflow),
	}
}

func (s *MemoryStore) Save(ctx context.Context, wf *estate.ListingWorkflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workflows[wf.ID] = wf.Copy()
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*estate.ListingWorkflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wf, ok := s.workflows[id]
	if !ok {
		return nil, estate.ErrWorkflowNotFound
	}
	return wf.Copy(), nil
}

// List returns workflows newest first
func (s *MemoryStore) List(ctx context.Context) ([]*estate.ListingWorkflow, error) {
	s.mu.RLock()
	res := make([]*estate.ListingWorkflow, 0, len(s.workflows))
	for _, wf := range s.workflows {
		res = append(res, wf.Copy())
	}
	s.mu.RUnlock()

	slices.SortStableFunc(res, func(a, b *estate.ListingWorkflow) bool {
		return a.CreatedAt.After(b.CreatedAt)
	})
	return res, nil
}
