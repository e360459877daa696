// Package credit orchestrates one eligibility evaluation end to end:
// validation, identity verification, fraud detection, scoring, policy
// clamping, and decision assembly.
package credit

import (
	"lendgate/internal/scoring"
	"lendgate/pkg/domain"
)

// Customer holds the identity claims submitted with a request.
type Customer struct {
	FullName    string
	PhoneNumber domain.PhoneNumber
	NIN         domain.NIN
	BVN         domain.BVN // optional
	DateOfBirth string     // YYYY-MM-DD
}

// Product describes the device being financed.
type Product struct {
	ID       string
	Category string
	Price    float64
}

// EligibilityRequest is the validated, immutable input to one evaluation.
type EligibilityRequest struct {
	MerchantID string
	AgentID    string
	Customer   Customer
	Product    Product
}

// Status is the terminal outcome of an evaluation.
type Status string

const (
	StatusApproved           Status = "APPROVED"
	StatusApprovedWithLimits Status = "APPROVED_WITH_LIMITS"
	StatusRejected           Status = "REJECTED"
)

// ReasonCode identifies why a request was rejected.
type ReasonCode string

const (
	ReasonIdentityVerificationFailed ReasonCode = "IDENTITY_VERIFICATION_FAILED"
	ReasonFraudDetected              ReasonCode = "FRAUD_DETECTED"
	ReasonPriceExceedsLimit          ReasonCode = "PRICE_EXCEEDS_LIMIT"
	ReasonInsufficientCreditProfile  ReasonCode = "INSUFFICIENT_CREDIT_PROFILE"
)

// Terms are the loan terms offered with an approval.
type Terms struct {
	MaxDeviceValue float64
	AllowedTenure  []int
	MinDownPayment float64
	InterestRate   float64 // monthly fraction
	CreditRating   scoring.Rating
}

// Decision is the final, auditable outcome of one evaluation. Soft
// rejections are values of this type, never errors.
type Decision struct {
	CheckID  domain.CheckID
	Status   Status
	Approved bool

	// Terms is set only on approvals.
	Terms *Terms

	// ReasonCode and Message are set only on rejections. Message is safe
	// for end users; it never carries internal error text.
	ReasonCode ReasonCode
	Message    string

	// Score is the computed credit score when scoring was reached,
	// carried for auditing. Nil when the pipeline short-circuited first.
	Score *int
}
