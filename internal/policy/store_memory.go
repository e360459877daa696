package policy

import (
	"context"
	"fmt"
	"sync"

	"lendgate/pkg/platform/sentinel"
)

// InMemoryStore keeps merchant policies in a map. Used in development and
// tests; production reads from Postgres behind the Redis cache.
type InMemoryStore struct {
	mu       sync.RWMutex
	policies map[string]MerchantPolicy
}

// NewInMemoryStore creates an empty policy store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{policies: make(map[string]MerchantPolicy)}
}

// Put registers or replaces a merchant's policy.
func (s *InMemoryStore) Put(pol MerchantPolicy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policies[pol.MerchantID] = pol
}

func (s *InMemoryStore) Get(_ context.Context, merchantID string) (*MerchantPolicy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pol, ok := s.policies[merchantID]
	if !ok {
		return nil, fmt.Errorf("policy for merchant %s: %w", merchantID, sentinel.ErrNotFound)
	}
	return &pol, nil
}
