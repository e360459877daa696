// Package scoring combines five weighted credit factors into a single score
// on [0,1000] and maps the score to a decision tier with base loan terms.
// Everything here is pure domain logic: no I/O, no side effects.
package scoring

import "math"

// Decision enumerates the tier outcomes.
type Decision string

const (
	DecisionApproved           Decision = "APPROVED"
	DecisionApprovedWithLimits Decision = "APPROVED_WITH_LIMITS"
	DecisionRejected           Decision = "REJECTED"
)

// Rating is the coarse credit band derived from the numeric score.
type Rating string

const (
	RatingExcellent Rating = "EXCELLENT"
	RatingGood      Rating = "GOOD"
	RatingFair      Rating = "FAIR"
	RatingPoor      Rating = "POOR"
)

// Factor weights. They sum to 1.0 so the weighted factor average stays on
// [0,100] before the x10 scale-up.
const (
	weightIdentityConfidence  = 0.30
	weightPhoneStability      = 0.15
	weightBNPLHistory         = 0.25
	weightDevicePriceRatio    = 0.15
	weightMerchantRiskProfile = 0.15
)

// Result carries the score, tier decision, and base loan terms before
// merchant-policy clamping.
type Result struct {
	Score          int
	Decision       Decision
	MaxDeviceValue float64
	MinDownPayment float64
	AllowedTenure  []int
	InterestRate   float64 // monthly fraction
	CreditRating   Rating
}

// CalculateScore combines the factors as a weighted sum, rounds to the
// nearest integer, and scales x10 onto [0,1000].
func CalculateScore(f Factors) int {
	weighted := f.IdentityConfidence*weightIdentityConfidence +
		f.PhoneStability*weightPhoneStability +
		f.BNPLHistory*weightBNPLHistory +
		f.DevicePriceRatio*weightDevicePriceRatio +
		f.MerchantRiskProfile*weightMerchantRiskProfile
	return int(math.Round(weighted)) * 10
}

// MakeDecision maps a score and requested price onto a tier. The four bands
// partition [0,1000]; boundaries are inclusive on the lower bound. The
// requested price only influences the down-payment figure.
func MakeDecision(score int, requestedPrice float64) Result {
	switch {
	case score >= 750:
		return Result{
			Score:          score,
			Decision:       DecisionApproved,
			MaxDeviceValue: 1_000_000,
			MinDownPayment: 0.20 * requestedPrice,
			AllowedTenure:  []int{3, 6, 9, 12},
			InterestRate:   0.025,
			CreditRating:   RatingExcellent,
		}
	case score >= 650:
		return Result{
			Score:          score,
			Decision:       DecisionApproved,
			MaxDeviceValue: 500_000,
			MinDownPayment: 0.25 * requestedPrice,
			AllowedTenure:  []int{3, 6, 9},
			InterestRate:   0.030,
			CreditRating:   RatingGood,
		}
	case score >= 500:
		return Result{
			Score:          score,
			Decision:       DecisionApprovedWithLimits,
			MaxDeviceValue: 250_000,
			MinDownPayment: 0.35 * requestedPrice,
			AllowedTenure:  []int{3, 6},
			InterestRate:   0.035,
			CreditRating:   RatingFair,
		}
	default:
		return Result{
			Score:         score,
			Decision:      DecisionRejected,
			AllowedTenure: []int{},
			CreditRating:  RatingPoor,
		}
	}
}
