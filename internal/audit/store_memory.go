package audit

import (
	"context"
	"sync"
)

// InMemoryStore keeps decision events in memory so tests can swap sinks
// easily.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []DecisionEvent
}

// NewInMemoryStore creates an empty store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event DecisionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *InMemoryStore) ListByMerchant(_ context.Context, merchantID string) ([]DecisionEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []DecisionEvent
	for _, e := range s.events {
		if e.MerchantID == merchantID {
			out = append(out, e)
		}
	}
	return out, nil
}

// All returns every recorded event in append order. Test helper.
func (s *InMemoryStore) All() []DecisionEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]DecisionEvent, len(s.events))
	copy(out, s.events)
	return out
}
