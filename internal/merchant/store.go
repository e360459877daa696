package merchant

import "context"

// Directory is the port for merchant and agent lookups during validation.
type Directory interface {
	// GetMerchant returns a merchant or sentinel.ErrNotFound (wrapped).
	GetMerchant(ctx context.Context, merchantID string) (*Merchant, error)

	// GetAgent returns an agent or sentinel.ErrNotFound (wrapped).
	GetAgent(ctx context.Context, agentID string) (*Agent, error)
}
