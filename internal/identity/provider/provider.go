// Package provider defines the identity provider port and its
// implementations. The live client talks to an external NIN/BVN lookup API;
// the mock serves deterministic records for development and tests. Which one
// runs is decided once, at startup, by configuration.
package provider

import (
	"context"
	"errors"
	"fmt"

	"lendgate/pkg/domain"
)

// Record is the identity payload returned by a provider lookup.
type Record struct {
	FirstName   string
	LastName    string
	MiddleName  string
	Gender      string
	DateOfBirth string // YYYY-MM-DD
	PhoneNumber string
}

// FullName joins the record's name parts in claim order.
func (r Record) FullName() string {
	if r.MiddleName != "" {
		return r.FirstName + " " + r.MiddleName + " " + r.LastName
	}
	return r.FirstName + " " + r.LastName
}

// Provider is the port for external identity lookups. Both lookups honor
// context cancellation; implementations must bound each call with a timeout.
type Provider interface {
	// VerifyNIN looks up a National Identity Number.
	// Returns ErrRecordNotFound (wrapped) when the NIN does not exist.
	VerifyNIN(ctx context.Context, nin domain.NIN) (*Record, error)

	// VerifyBVN looks up a Bank Verification Number.
	// Returns ErrRecordNotFound (wrapped) when the BVN does not exist.
	VerifyBVN(ctx context.Context, bvn domain.BVN) (*Record, error)
}

// ErrRecordNotFound indicates the identity reference does not exist at the
// provider. This is evidence (a failed verification), not an outage.
var ErrRecordNotFound = errors.New("identity record not found")

// Category classifies provider failures.
type Category string

const (
	CategoryTimeout  Category = "timeout"
	CategoryOutage   Category = "provider_outage"
	CategoryBadData  Category = "bad_data"
	CategoryInternal Category = "internal"
)

// Error wraps provider failures with a normalized category so callers can
// distinguish outages from bad payloads without string matching.
type Error struct {
	Category   Category
	Message    string
	Underlying error
}

func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("identity provider [%s]: %s: %v", e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("identity provider [%s]: %s", e.Category, e.Message)
}

func (e *Error) Unwrap() error { return e.Underlying }

// NewError creates a categorized provider error.
func NewError(category Category, message string, underlying error) *Error {
	return &Error{Category: category, Message: message, Underlying: underlying}
}

// IsNotFound reports whether err means the record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound)
}
