// Package audit captures the append-only record of credit decisions. Events
// are transport-agnostic so stores and sinks can fan out.
package audit

import "time"

// DecisionEvent is emitted once per completed evaluation.
//
// SubjectIDHash is a SHA-256 hash of the customer's NIN; raw identity
// numbers never enter the audit trail.
type DecisionEvent struct {
	CheckID       string    `json:"check_id"`
	Timestamp     time.Time `json:"timestamp"`
	RequestID     string    `json:"request_id,omitempty"`
	MerchantID    string    `json:"merchant_id"`
	AgentID       string    `json:"agent_id"`
	SubjectIDHash string    `json:"subject_id_hash"`
	ProductID     string    `json:"product_id"`
	Price         float64   `json:"price"`
	Status        string    `json:"status"`
	ReasonCode    string    `json:"reason_code,omitempty"`
	Score         *int      `json:"score,omitempty"`
	RiskScore     int       `json:"risk_score"`
	RiskReasons   []string  `json:"risk_reasons,omitempty"`
}
