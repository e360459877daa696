package scoring

// Factors are the five weighted credit inputs, each in [0,100].
type Factors struct {
	IdentityConfidence  float64
	PhoneStability      float64
	BNPLHistory         float64
	DevicePriceRatio    float64
	MerchantRiskProfile float64
}

// IdentityConfidence scores the identity verification signal. Each verified
// attribute contributes its fixed weight; the sum is capped at 100.
func IdentityConfidence(ninVerified, bvnVerified, nameMatch, phoneMatch bool) float64 {
	score := 0.0
	if ninVerified {
		score += 40
	}
	if bvnVerified {
		score += 30
	}
	if nameMatch {
		score += 20
	}
	if phoneMatch {
		score += 10
	}
	return min(score, 100)
}

// PhoneStability scores how long the customer has held their phone number.
func PhoneStability(ageMonths int) float64 {
	switch {
	case ageMonths >= 12:
		return 100
	case ageMonths >= 6:
		return 75
	case ageMonths >= 3:
		return 50
	default:
		return 25
	}
}

// BNPLHistory scores prior repayment behavior. A customer with no history
// scores a neutral 50; defaults dominate on-time performance.
func BNPLHistory(priorLoans, defaults, onTimePayments int) float64 {
	if priorLoans == 0 {
		return 50
	}

	defaultRate := float64(defaults) / float64(priorLoans)
	if defaultRate > 0.2 {
		return 0
	}
	if defaultRate > 0.1 {
		return 30
	}

	onTimeRate := float64(onTimePayments) / float64(priorLoans)
	if onTimeRate > 0.9 {
		return 100
	}
	if onTimeRate > 0.7 {
		return 75
	}
	return 50
}

// DevicePriceRatio scores how large the requested device price is relative
// to the customer's estimated monthly income. A non-positive income scores
// zero, the same as an unaffordable device.
func DevicePriceRatio(price, estimatedIncome float64) float64 {
	if estimatedIncome <= 0 {
		return 0
	}
	ratio := price / estimatedIncome
	switch {
	case ratio < 0.3:
		return 100
	case ratio < 0.5:
		return 75
	case ratio < 0.7:
		return 50
	case ratio < 1.0:
		return 25
	default:
		return 0
	}
}

// MerchantRiskProfile scores the merchant's portfolio quality from its
// historical default rate and sales volume, clamped to [0,100].
func MerchantRiskProfile(defaultRate float64, volume int) float64 {
	score := 50.0

	switch {
	case defaultRate < 0.05:
		score += 30
	case defaultRate < 0.10:
		score += 15
	case defaultRate > 0.20:
		score -= 30
	}

	switch {
	case volume > 1000:
		score += 20
	case volume > 500:
		score += 10
	case volume < 50:
		score -= 10
	}

	return min(max(score, 0), 100)
}
