package handler

import (
	"lendgate/internal/credit"
)

// DecisionResponse is the HTTP response for POST /credit/eligibility-check.
type DecisionResponse struct {
	CheckID    string         `json:"check_id"`
	Status     string         `json:"status"`
	Approved   bool           `json:"approved"`
	Terms      *TermsResponse `json:"terms,omitempty"`
	ReasonCode string         `json:"reason_code,omitempty"`
	Message    string         `json:"message,omitempty"`
	Score      *int           `json:"score,omitempty"`
}

// TermsResponse is the loan terms portion of an approval.
type TermsResponse struct {
	MaxDeviceValue float64 `json:"max_device_value"`
	AllowedTenure  []int   `json:"allowed_tenure_months"`
	MinDownPayment float64 `json:"min_down_payment"`
	InterestRate   float64 `json:"monthly_interest_rate"`
	CreditRating   string  `json:"credit_rating"`
}

// FromDecision converts a domain Decision to an HTTP response.
func FromDecision(decision *credit.Decision) *DecisionResponse {
	resp := &DecisionResponse{
		CheckID:    decision.CheckID.String(),
		Status:     string(decision.Status),
		Approved:   decision.Approved,
		ReasonCode: string(decision.ReasonCode),
		Message:    decision.Message,
		Score:      decision.Score,
	}
	if decision.Terms != nil {
		resp.Terms = &TermsResponse{
			MaxDeviceValue: decision.Terms.MaxDeviceValue,
			AllowedTenure:  decision.Terms.AllowedTenure,
			MinDownPayment: decision.Terms.MinDownPayment,
			InterestRate:   decision.Terms.InterestRate,
			CreditRating:   string(decision.Terms.CreditRating),
		}
	}
	return resp
}
