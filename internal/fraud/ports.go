package fraud

import (
	"context"
	"time"
)

// LoanStatus filters loan history lookups.
type LoanStatus string

const (
	LoanStatusActive    LoanStatus = "ACTIVE"
	LoanStatusDefaulted LoanStatus = "DEFAULTED"
)

// ReferenceStore is the port for the historical data the fraud checks read.
// Implementations live in internal/reference; the detector never knows
// whether the data comes from Postgres, Redis, or memory.
type ReferenceStore interface {
	// InBlacklist reports whether any of the identifiers is blacklisted.
	InBlacklist(ctx context.Context, nin, bvn, phone string) (bool, error)

	// ProfileCountByPhone counts distinct customer profiles recorded
	// against a phone number.
	ProfileCountByPhone(ctx context.Context, phone string) (int, error)

	// ChecksInWindow counts eligibility checks for a phone number within
	// the trailing window.
	ChecksInWindow(ctx context.Context, phone string, window time.Duration) (int, error)

	// LoanCountByStatus counts loans for a NIN filtered by status.
	LoanCountByStatus(ctx context.Context, nin string, status LoanStatus) (int, error)
}
