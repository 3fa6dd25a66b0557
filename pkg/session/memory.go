package session

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"
)

// MemoryStore keeps sessions in memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	byPlan   map[string]map[string]bool // planID -> session IDs
}

// NewMemoryStore creates an empty in-memory presence store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		byPlan:   make(map[string]map[string]bool),
	}
}

// Get retrieves a session by ID.
func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if s.IsExpired() {
		return nil, ErrExpired
	}
	dup := *s
	return &dup, nil
}

// Set stores a session and indexes it under its plan.
func (m *MemoryStore) Set(ctx context.Context, s *Session) error {
	dup := *s
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = &dup
	if m.byPlan[s.PlanID] == nil {
		m.byPlan[s.PlanID] = make(map[string]bool)
	}
	m.byPlan[s.PlanID][s.ID] = true
	return nil
}

// Touch extends a live session's expiration.
func (m *MemoryStore) Touch(ctx context.Context, id string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	if s.IsExpired() {
		return ErrExpired
	}
	s.ExpiresAt = time.Now().Add(ttl)
	return nil
}

// Delete removes a session.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		delete(m.byPlan[s.PlanID], id)
		delete(m.sessions, id)
	}
	return nil
}

// ByPlan lists the live sessions on a plan, ordered by editor name.
func (m *MemoryStore) ByPlan(ctx context.Context, planID string) ([]*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Session
	for id := range m.byPlan[planID] {
		if s, ok := m.sessions[id]; ok && !s.IsExpired() {
			dup := *s
			out = append(out, &dup)
		}
	}
	slices.SortFunc(out, func(a, b *Session) int { return strings.Compare(a.Editor, b.Editor) })
	return out, nil
}

// Cleanup removes expired sessions.
func (m *MemoryStore) Cleanup(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if s.IsExpired() {
			delete(m.byPlan[s.PlanID], id)
			delete(m.sessions, id)
		}
	}
	return nil
}

var _ Store = (*MemoryStore)(nil)
