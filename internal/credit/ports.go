package credit

import (
	"context"

	"lendgate/internal/audit"
)

// LoanHistory summarizes a customer's prior BNPL behavior.
type LoanHistory struct {
	PriorLoans     int
	Defaults       int
	OnTimePayments int
}

// MerchantStats summarizes a merchant's lending portfolio.
type MerchantStats struct {
	DefaultRate float64
	Volume      int
}

// HistoryStore is the port for the behavioral data behind the credit
// factors. Lookups that fail are hard failures: the factors must not be
// silently computed from missing data.
type HistoryStore interface {
	// PhoneAgeMonths returns how long the phone number has been observed,
	// in months. Unknown numbers return 0.
	PhoneAgeMonths(ctx context.Context, phone string) (int, error)

	// LoanHistory returns the customer's repayment record. Unknown
	// customers return the zero value.
	LoanHistory(ctx context.Context, nin string) (LoanHistory, error)

	// EstimatedIncome returns the customer's estimated monthly income.
	// Unknown customers return 0.
	EstimatedIncome(ctx context.Context, nin string) (float64, error)

	// MerchantStats returns the merchant's portfolio summary. Unknown
	// merchants return the zero value.
	MerchantStats(ctx context.Context, merchantID string) (MerchantStats, error)

	// RecordCheck appends the phone number to the velocity window. The
	// write feeds the fraud velocity check on subsequent requests.
	RecordCheck(ctx context.Context, phone string) error
}

// AuditSink records decision events. Recording is best-effort from the
// pipeline's point of view; implementations own durability.
type AuditSink interface {
	Record(ctx context.Context, event audit.DecisionEvent) error
}
