// Package fraud accumulates a bounded risk score for one request from five
// independent checks against historical reference data. The checks share no
// state, so they run concurrently; their combination is a commutative sum
// and execution order never changes the verdict.
package fraud

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// velocityWindow is the trailing window for the velocity check.
const velocityWindow = 15 * time.Minute

// check is one risk signal. Trigger conditions and weights are fixed
// reference values, not configuration.
type check struct {
	name   string
	weight int
	reason string
	run    func(ctx context.Context, store ReferenceStore, subject Subject) (bool, error)
}

// checks is the definition-ordered table of risk signals. Reasons are
// reported in this order regardless of which goroutine finishes first.
var checks = []check{
	{
		name:   "blacklist",
		weight: 100,
		reason: "customer identifier found in blacklist",
		run: func(ctx context.Context, store ReferenceStore, s Subject) (bool, error) {
			return store.InBlacklist(ctx, s.NIN, s.BVN, s.Phone)
		},
	},
	{
		name:   "multi_bvn",
		weight: 50,
		reason: "multiple customer profiles registered against phone number",
		run: func(ctx context.Context, store ReferenceStore, s Subject) (bool, error) {
			count, err := store.ProfileCountByPhone(ctx, s.Phone)
			return count > 1, err
		},
	},
	{
		name:   "velocity",
		weight: 30,
		reason: "too many eligibility checks for phone number in the last 15 minutes",
		run: func(ctx context.Context, store ReferenceStore, s Subject) (bool, error) {
			count, err := store.ChecksInWindow(ctx, s.Phone, velocityWindow)
			return count > 3, err
		},
	},
	{
		name:   "default_history",
		weight: 40,
		reason: "prior loan in DEFAULTED status",
		run: func(ctx context.Context, store ReferenceStore, s Subject) (bool, error) {
			count, err := store.LoanCountByStatus(ctx, s.NIN, LoanStatusDefaulted)
			return count >= 1, err
		},
	},
	{
		name:   "cross_merchant_exposure",
		weight: 60,
		reason: "more than two simultaneously active loans",
		run: func(ctx context.Context, store ReferenceStore, s Subject) (bool, error) {
			count, err := store.LoanCountByStatus(ctx, s.NIN, LoanStatusActive)
			return count > 2, err
		},
	},
}

// Detector runs the risk checks for one request.
type Detector struct {
	store  ReferenceStore
	logger *slog.Logger
}

// NewDetector constructs a Detector.
func NewDetector(store ReferenceStore, logger *slog.Logger) (*Detector, error) {
	if store == nil {
		return nil, fmt.Errorf("reference store is required")
	}
	return &Detector{store: store, logger: logger}, nil
}

// Detect runs all checks concurrently and accumulates the verdict.
//
// A check whose data lookup fails is treated as not triggered (fail open)
// and never aborts the detection; the failure is logged for operators.
func (d *Detector) Detect(ctx context.Context, subject Subject) (*CheckResult, error) {
	triggered := make([]bool, len(checks))

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range checks {
		i, c := i, c
		g.Go(func() error {
			hit, err := c.run(gctx, d.store, subject)
			if err != nil {
				d.logger.WarnContext(gctx, "fraud check lookup failed, failing open",
					"check", c.name,
					"error", err,
				)
				return nil
			}
			triggered[i] = hit
			return nil
		})
	}
	// Goroutines only ever return nil; Wait is for completion, not errors.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &CheckResult{}
	sum := 0
	for i, c := range checks {
		if !triggered[i] {
			continue
		}
		sum += c.weight
		result.Reasons = append(result.Reasons, c.reason)
	}

	result.IsFraud = sum >= maxRiskScore
	result.RiskScore = min(sum, maxRiskScore)

	return result, nil
}
