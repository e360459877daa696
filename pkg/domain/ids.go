// Package domain holds the shared value types used across the gateway.
//
// Identity references (NIN, BVN) and phone numbers are parsed once at the
// edge and passed around as typed values so services never re-validate
// raw strings.
package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/google/uuid"

	dErrors "lendgate/pkg/domain-errors"
)

var (
	ninPattern = regexp.MustCompile(`^\d{11}$`)
	bvnPattern = regexp.MustCompile(`^\d{11}$`)
	// Nigerian mobile numbers in national format: leading zero plus ten digits.
	phonePattern = regexp.MustCompile(`^0[789][01]\d{8}$`)
)

// NIN is a validated 11-digit National Identity Number.
type NIN string

// ParseNIN validates and returns a NIN.
func ParseNIN(raw string) (NIN, error) {
	raw = strings.TrimSpace(raw)
	if !ninPattern.MatchString(raw) {
		return "", dErrors.New(dErrors.CodeValidation, "nin must be exactly 11 digits")
	}
	return NIN(raw), nil
}

func (n NIN) String() string { return string(n) }

// Hash returns a SHA-256 hex digest of the NIN for audit trails, so raw
// identity numbers never land in logs or audit storage.
func (n NIN) Hash() string {
	sum := sha256.Sum256([]byte(n))
	return hex.EncodeToString(sum[:])
}

// BVN is a validated 11-digit Bank Verification Number. It is optional on
// eligibility requests; the zero value means "not provided".
type BVN string

// ParseBVN validates and returns a BVN.
func ParseBVN(raw string) (BVN, error) {
	raw = strings.TrimSpace(raw)
	if !bvnPattern.MatchString(raw) {
		return "", dErrors.New(dErrors.CodeValidation, "bvn must be exactly 11 digits")
	}
	return BVN(raw), nil
}

func (b BVN) String() string { return string(b) }

// IsZero reports whether the BVN was provided.
func (b BVN) IsZero() bool { return b == "" }

// PhoneNumber is a phone number in the national mobile format.
type PhoneNumber string

// ParsePhoneNumber validates and returns a PhoneNumber. International
// prefixes are normalized to national format before matching.
func ParsePhoneNumber(raw string) (PhoneNumber, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.ReplaceAll(raw, " ", "")
	if rest, ok := strings.CutPrefix(raw, "+234"); ok {
		raw = "0" + rest
	}
	if !phonePattern.MatchString(raw) {
		return "", dErrors.New(dErrors.CodeValidation, "phone number must be a valid national mobile number")
	}
	return PhoneNumber(raw), nil
}

func (p PhoneNumber) String() string { return string(p) }

// CheckID identifies one eligibility evaluation. It is generated fresh per
// evaluation and used for traceability only, never for deduplication.
type CheckID string

// NewCheckID returns a new unique CheckID.
func NewCheckID() CheckID {
	return CheckID(uuid.NewString())
}

func (c CheckID) String() string { return string(c) }

// IsZero reports whether the CheckID is unset.
func (c CheckID) IsZero() bool { return c == "" }
