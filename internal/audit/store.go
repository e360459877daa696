package audit

import "context"

// Store persists decision events. Append-only; there is no update or
// delete surface.
type Store interface {
	Append(ctx context.Context, event DecisionEvent) error
	ListByMerchant(ctx context.Context, merchantID string) ([]DecisionEvent, error)
}
