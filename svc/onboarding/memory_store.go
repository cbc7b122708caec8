package onboarding

import (
	"context"
	"maps"
	"sync"
	"time"
)

// MemoryStore keeps progress in process memory. Records are copied on the way
// in and out.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]*Progress
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]*Progress)}
}

func (s *MemoryStore) Load(_ context.Context, userID string) (*Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.data[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

func (s *MemoryStore) Merge(_ context.Context, userID string, fields map[string]any, at time.Time) (*Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.upsert(userID)
	maps.Copy(p.Fields, fields)
	p.LastUpdated = at
	return p.Clone(), nil
}

func (s *MemoryStore) SetCurrentStep(_ context.Context, userID string, step Step, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.upsert(userID)
	p.CurrentStep = string(step)
	p.LastUpdated = at
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, userID)
	return nil
}

func (s *MemoryStore) upsert(userID string) *Progress {
	p, ok := s.data[userID]
	if !ok {
		p = &Progress{UserID: userID, Fields: map[string]any{}}
		s.data[userID] = p
	}
	return p
}
