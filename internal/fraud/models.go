package fraud

// maxRiskScore caps the reported risk score. The fraud verdict is taken on
// the unclamped sum so a single maximum-weight signal is always sufficient.
const maxRiskScore = 100

// CheckResult is the accumulated fraud verdict for one request.
type CheckResult struct {
	IsFraud bool
	// Reasons holds one human-readable string per triggered check, in
	// check-definition order, for the audit trail.
	Reasons   []string
	RiskScore int // clamped to [0,100]
}

// Subject identifies the customer being screened.
type Subject struct {
	NIN   string
	BVN   string // optional; empty when not provided
	Phone string
}
