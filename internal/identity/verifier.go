// Package identity produces the verification confidence signal for one
// eligibility request: provider-backed NIN/BVN checks plus fuzzy matching of
// the claimed name and phone against the provider record.
package identity

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"lendgate/internal/identity/provider"
	"lendgate/pkg/domain"
)

// Result is the verification outcome for one request.
type Result struct {
	Valid       bool
	NINVerified bool
	BVNVerified bool
	NameMatch   bool
	PhoneMatch  bool
	// VerifiedData is the provider NIN payload, kept for audit assembly.
	// Nil when the NIN could not be verified.
	VerifiedData *provider.Record
}

// Claims are the customer-supplied identity attributes to verify.
type Claims struct {
	NIN      domain.NIN
	BVN      domain.BVN // optional; zero value skips the BVN lookup
	FullName string
	Phone    domain.PhoneNumber
}

// Verifier wraps the identity provider and derives the confidence signal.
type Verifier struct {
	provider provider.Provider
	logger   *slog.Logger
	timeout  time.Duration
}

// NewVerifier constructs a Verifier. The timeout bounds the combined
// provider round trips for one request.
func NewVerifier(p provider.Provider, logger *slog.Logger, timeout time.Duration) *Verifier {
	return &Verifier{provider: p, logger: logger, timeout: timeout}
}

// Verify runs the NIN lookup (mandatory) and BVN lookup (when provided)
// concurrently, then derives the match booleans.
//
// Provider outages and timeouts surface as errors so the caller can
// propagate them on the hard-failure channel; they are never converted into
// a failed verification. A NIN that simply does not exist is evidence, not
// an error. A failed BVN lookup only costs the bvn_verified signal.
func (v *Verifier) Verify(ctx context.Context, claims Claims) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	var ninRecord *provider.Record
	var bvnRecord *provider.Record

	g.Go(func() error {
		record, err := v.provider.VerifyNIN(gctx, claims.NIN)
		if err != nil {
			if provider.IsNotFound(err) {
				return nil
			}
			return err
		}
		ninRecord = record
		return nil
	})

	if !claims.BVN.IsZero() {
		g.Go(func() error {
			record, err := v.provider.VerifyBVN(gctx, claims.BVN)
			if err != nil {
				// BVN is optional evidence; losing it is not fatal.
				v.logger.WarnContext(gctx, "bvn lookup failed",
					"error", err,
				)
				return nil
			}
			bvnRecord = record
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{
		NINVerified:  ninRecord != nil,
		BVNVerified:  bvnRecord != nil,
		VerifiedData: ninRecord,
	}

	if ninRecord != nil {
		result.NameMatch = MatchNames(claims.FullName, ninRecord.FullName())
		result.PhoneMatch = phonesEqual(claims.Phone, ninRecord.PhoneNumber)
	}
	result.Valid = result.NINVerified && result.NameMatch

	return result, nil
}

// phonesEqual compares the claimed phone with the provider's, normalizing
// the provider value into national format first. An unparseable provider
// phone counts as no match.
func phonesEqual(claimed domain.PhoneNumber, recorded string) bool {
	normalized, err := domain.ParsePhoneNumber(recorded)
	if err != nil {
		return false
	}
	return claimed == normalized
}
