package merchant

import (
	"context"
	"fmt"
	"sync"

	"lendgate/pkg/platform/sentinel"
)

// InMemoryDirectory keeps merchants and agents in maps for development and
// tests.
type InMemoryDirectory struct {
	mu        sync.RWMutex
	merchants map[string]Merchant
	agents    map[string]Agent
}

// NewInMemoryDirectory creates an empty directory.
func NewInMemoryDirectory() *InMemoryDirectory {
	return &InMemoryDirectory{
		merchants: make(map[string]Merchant),
		agents:    make(map[string]Agent),
	}
}

// PutMerchant registers or replaces a merchant.
func (d *InMemoryDirectory) PutMerchant(m Merchant) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.merchants[m.ID] = m
}

// PutAgent registers or replaces an agent.
func (d *InMemoryDirectory) PutAgent(a Agent) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.agents[a.ID] = a
}

func (d *InMemoryDirectory) GetMerchant(_ context.Context, merchantID string) (*Merchant, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	m, ok := d.merchants[merchantID]
	if !ok {
		return nil, fmt.Errorf("merchant %s: %w", merchantID, sentinel.ErrNotFound)
	}
	return &m, nil
}

func (d *InMemoryDirectory) GetAgent(_ context.Context, agentID string) (*Agent, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	a, ok := d.agents[agentID]
	if !ok {
		return nil, fmt.Errorf("agent %s: %w", agentID, sentinel.ErrNotFound)
	}
	return &a, nil
}
