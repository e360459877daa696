// Package merchant holds the merchant and agent reference data consulted
// during request validation. The pipeline only reads; onboarding and
// approval flows live in a separate service.
package merchant

// Status is the lifecycle state of a merchant account.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusClosed    Status = "closed"
)

// Merchant is a device seller enrolled on the platform.
type Merchant struct {
	ID             string
	Name           string
	Status         Status
	PolicyApproved bool
}

// Active reports whether the merchant may originate eligibility checks.
func (m Merchant) Active() bool {
	return m.Status == StatusActive
}

// Role is an agent's assigned role.
type Role string

const (
	RoleAgent   Role = "agent"
	RoleManager Role = "manager"
)

// Agent is a person at a merchant location who submits checks on behalf of
// customers.
type Agent struct {
	ID         string
	MerchantID string
	FullName   string
	Role       Role
}
