package store

import (
	"bytes"
	"context"
	"slices"
	"sync"

	"github.com/planwright/planwright/pkg/plan"
)

// MemoryStore keeps plans in memory. Plans are stored serialized so
// every Get hands out an independent copy.
type MemoryStore struct {
	mu    sync.RWMutex
	plans map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{plans: make(map[string][]byte)}
}

// Get returns a detached copy of the stored plan.
func (s *MemoryStore) Get(ctx context.Context, id string) (*plan.Plan, error) {
	s.mu.RLock()
	data, ok := s.plans[id]
	s.mu.RUnlock()
	if !ok {
		return nil, notFound(id)
	}
	return plan.Decode(bytes.NewReader(data))
}

// Put inserts or replaces a plan.
func (s *MemoryStore) Put(ctx context.Context, p *plan.Plan) error {
	if err := checkPlan(p); err != nil {
		return err
	}
	data, err := plan.Marshal(p)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.plans[p.ID] = data
	s.mu.Unlock()
	return nil
}

// Delete removes a plan.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plans[id]; !ok {
		return notFound(id)
	}
	delete(s.plans, id)
	return nil
}

// List returns all plans ordered by ID.
func (s *MemoryStore) List(ctx context.Context) ([]*plan.Plan, error) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.plans))
	for id := range s.plans {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	slices.Sort(ids)

	out := make([]*plan.Plan, 0, len(ids))
	for _, id := range ids {
		p, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
