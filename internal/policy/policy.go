// Package policy applies per-merchant lending limits on top of the generic
// scoring result. Policies are external reference data, read-only to the
// decision pipeline.
package policy

import (
	"context"

	"lendgate/internal/scoring"
)

// RiskTolerance labels how aggressive a merchant's lending posture is. It
// is carried for reporting; it does not change the clamping arithmetic.
type RiskTolerance string

const (
	RiskToleranceConservative RiskTolerance = "conservative"
	RiskToleranceModerate     RiskTolerance = "moderate"
	RiskToleranceAggressive   RiskTolerance = "aggressive"
)

// MerchantPolicy holds the per-merchant override limits.
type MerchantPolicy struct {
	MerchantID            string
	MaxDeviceValue        float64
	AllowedTenures        []int
	MinDownPaymentPercent float64 // fraction of price, e.g. 0.25
	RiskTolerance         RiskTolerance
}

// Store is the port for merchant policy lookups.
type Store interface {
	// Get returns the policy for a merchant, or sentinel.ErrNotFound
	// (wrapped) when the merchant has no policy configured.
	Get(ctx context.Context, merchantID string) (*MerchantPolicy, error)
}

// Clamp intersects the scoring result with the merchant policy. Clamping
// can only tighten the base terms, never loosen them:
//
//   - max device value: min of the two
//   - allowed tenure: set intersection, order preserved from scoring
//   - min down payment: max of the scoring figure and the policy percent
//     applied to it
//
// A zero MaxDeviceValue or empty AllowedTenures means the field is not
// configured and leaves the base terms untouched; merchants barred from
// originating are expressed through status and approval flags, not zero
// limits.
func Clamp(result scoring.Result, pol MerchantPolicy, requestedPrice float64) scoring.Result {
	clamped := result

	if pol.MaxDeviceValue > 0 && pol.MaxDeviceValue < clamped.MaxDeviceValue {
		clamped.MaxDeviceValue = pol.MaxDeviceValue
	}

	if len(pol.AllowedTenures) > 0 {
		allowed := make(map[int]bool, len(pol.AllowedTenures))
		for _, t := range pol.AllowedTenures {
			allowed[t] = true
		}
		intersection := make([]int, 0, len(clamped.AllowedTenure))
		for _, t := range clamped.AllowedTenure {
			if allowed[t] {
				intersection = append(intersection, t)
			}
		}
		clamped.AllowedTenure = intersection
	}

	if policyDown := pol.MinDownPaymentPercent * requestedPrice; policyDown > clamped.MinDownPayment {
		clamped.MinDownPayment = policyDown
	}

	return clamped
}
