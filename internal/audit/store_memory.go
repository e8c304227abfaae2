package audit

import (
	"context"
	"sync"
)

// InMemoryStore keeps the trail in process memory. Default when no database
// is configured; also the store handler tests run against.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *InMemoryStore) ListByResource(_ context.Context, resourceID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if e.ResourceID == resourceID {
			out = append(out, e)
		}
	}
	return out, nil
}
