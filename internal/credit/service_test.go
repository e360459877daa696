package credit_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"lendgate/internal/audit"
	"lendgate/internal/credit"
	"lendgate/internal/fraud"
	"lendgate/internal/identity"
	"lendgate/internal/identity/provider"
	"lendgate/internal/merchant"
	"lendgate/internal/policy"
	"lendgate/internal/reference"
	"lendgate/pkg/domain"
	dErrors "lendgate/pkg/domain-errors"
	"lendgate/pkg/requestcontext"
)

const (
	testNIN   = "12345678901"
	testBVN   = "22222222222"
	testPhone = "08031234567"
)

type fakeProvider struct {
	ninRecords map[domain.NIN]provider.Record
	bvnRecords map[domain.BVN]provider.Record
	down       bool
}

func (f *fakeProvider) VerifyNIN(_ context.Context, nin domain.NIN) (*provider.Record, error) {
	if f.down {
		return nil, &provider.Error{Category: provider.CategoryOutage, Message: "provider unavailable"}
	}
	if record, ok := f.ninRecords[nin]; ok {
		return &record, nil
	}
	return nil, &provider.Error{
		Category:   provider.CategoryBadData,
		Message:    "record not found",
		Underlying: provider.ErrRecordNotFound,
	}
}

func (f *fakeProvider) VerifyBVN(_ context.Context, bvn domain.BVN) (*provider.Record, error) {
	if f.down {
		return nil, &provider.Error{Category: provider.CategoryOutage, Message: "provider unavailable"}
	}
	if record, ok := f.bvnRecords[bvn]; ok {
		return &record, nil
	}
	return nil, &provider.Error{
		Category:   provider.CategoryBadData,
		Message:    "record not found",
		Underlying: provider.ErrRecordNotFound,
	}
}

type failingSink struct{}

func (failingSink) Record(context.Context, audit.DecisionEvent) error {
	return errors.New("audit store down")
}

type ServiceSuite struct {
	suite.Suite

	provider   *fakeProvider
	merchants  *merchant.InMemoryDirectory
	reference  *reference.InMemoryStore
	policies   *policy.InMemoryStore
	auditStore *audit.InMemoryStore
	service    *credit.Service
	ctx        context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.provider = &fakeProvider{
		ninRecords: map[domain.NIN]provider.Record{
			testNIN: {FirstName: "John", LastName: "Doe", PhoneNumber: testPhone},
		},
		bvnRecords: map[domain.BVN]provider.Record{
			testBVN: {FirstName: "John", LastName: "Doe", PhoneNumber: testPhone},
		},
	}

	s.merchants = merchant.NewInMemoryDirectory()
	s.merchants.PutMerchant(merchant.Merchant{
		ID: "m-1", Name: "Gadget Hub", Status: merchant.StatusActive, PolicyApproved: true,
	})
	s.merchants.PutAgent(merchant.Agent{
		ID: "a-1", MerchantID: "m-1", FullName: "Ada Obi", Role: merchant.RoleAgent,
	})

	s.reference = reference.NewInMemoryStore()
	s.policies = policy.NewInMemoryStore()
	s.auditStore = audit.NewInMemoryStore()

	detector, err := fraud.NewDetector(s.reference, logger)
	s.Require().NoError(err)

	s.service, err = credit.NewService(
		s.merchants,
		identity.NewVerifier(s.provider, logger, time.Second),
		detector,
		s.policies,
		s.reference,
		audit.NewPublisher(s.auditStore, logger),
		logger,
		nil,
	)
	s.Require().NoError(err)

	s.ctx = requestcontext.WithRequestID(context.Background(), "req-1")
}

func (s *ServiceSuite) request() credit.EligibilityRequest {
	return credit.EligibilityRequest{
		MerchantID: "m-1",
		AgentID:    "a-1",
		Customer: credit.Customer{
			FullName:    "John Doe",
			PhoneNumber: domain.PhoneNumber(testPhone),
			NIN:         domain.NIN(testNIN),
			BVN:         domain.BVN(testBVN),
			DateOfBirth: "1995-06-15",
		},
		Product: credit.Product{ID: "p-1", Category: "smartphone", Price: 300_000},
	}
}

// seedStrongProfile makes every factor max out: all identity attributes
// verified, long phone history, clean repayments, low price-to-income
// ratio, healthy merchant book.
func (s *ServiceSuite) seedStrongProfile() {
	s.reference.SeedPhoneAge(testPhone, 14)
	s.reference.SeedHistory(testNIN, credit.LoanHistory{PriorLoans: 4, Defaults: 0, OnTimePayments: 4})
	s.reference.SeedIncome(testNIN, 1_500_000)
	s.reference.SeedMerchantStats("m-1", credit.MerchantStats{DefaultRate: 0.03, Volume: 1200})
}

func (s *ServiceSuite) TestStrongProfileApprovedWithExcellentTerms() {
	s.seedStrongProfile()

	decision, err := s.service.Evaluate(s.ctx, s.request())
	s.Require().NoError(err)

	s.True(decision.Approved)
	s.Equal(credit.StatusApproved, decision.Status)
	s.False(decision.CheckID.IsZero())
	s.Require().NotNil(decision.Score)
	s.GreaterOrEqual(*decision.Score, 750)

	s.Require().NotNil(decision.Terms)
	s.InDelta(1_000_000, decision.Terms.MaxDeviceValue, 0.001)
	s.InDelta(60_000, decision.Terms.MinDownPayment, 0.001)
	s.Equal([]int{3, 6, 9, 12}, decision.Terms.AllowedTenure)
	s.InDelta(0.025, decision.Terms.InterestRate, 0.0001)
	s.Equal("EXCELLENT", string(decision.Terms.CreditRating))

	events := s.auditStore.All()
	s.Require().Len(events, 1)
	s.Equal("APPROVED", events[0].Status)
	s.Equal("req-1", events[0].RequestID)
	s.Equal(domain.NIN(testNIN).Hash(), events[0].SubjectIDHash)
}

func (s *ServiceSuite) TestBlacklistRejectsRegardlessOfScore() {
	s.seedStrongProfile()
	s.reference.Blacklist(testNIN)

	decision, err := s.service.Evaluate(s.ctx, s.request())
	s.Require().NoError(err)

	s.False(decision.Approved)
	s.Equal(credit.StatusRejected, decision.Status)
	s.Equal(credit.ReasonFraudDetected, decision.ReasonCode)
	s.Nil(decision.Terms)

	events := s.auditStore.All()
	s.Require().Len(events, 1)
	s.Equal(100, events[0].RiskScore)
	s.NotEmpty(events[0].RiskReasons)
}

func (s *ServiceSuite) TestPriceExceedsClampedPolicyLimit() {
	// A mid-range profile lands in the third band: base max 250,000. The
	// merchant policy tightens the ceiling to 200,000.
	s.provider.ninRecords[testNIN] = provider.Record{
		FirstName: "John", LastName: "Doe", PhoneNumber: "08099999999",
	}
	s.reference.SeedPhoneAge(testPhone, 4)
	s.reference.SeedIncome(testNIN, 400_000)
	s.reference.SeedMerchantStats("m-1", credit.MerchantStats{DefaultRate: 0.15, Volume: 100})
	s.policies.Put(policy.MerchantPolicy{MerchantID: "m-1", MaxDeviceValue: 200_000})

	req := s.request()
	req.Customer.BVN = ""
	req.Product.Price = 220_000

	decision, err := s.service.Evaluate(s.ctx, req)
	s.Require().NoError(err)

	s.Equal(credit.StatusRejected, decision.Status)
	s.Equal(credit.ReasonPriceExceedsLimit, decision.ReasonCode)
	s.Contains(decision.Message, "200000.00")
	s.Require().NotNil(decision.Score)
	s.Equal(530, *decision.Score)
}

func (s *ServiceSuite) TestNameMismatchRejectsAsVerificationFailure() {
	s.seedStrongProfile()

	req := s.request()
	req.Customer.FullName = "Jane Smith"

	decision, err := s.service.Evaluate(s.ctx, req)
	s.Require().NoError(err)

	s.Equal(credit.StatusRejected, decision.Status)
	s.Equal(credit.ReasonIdentityVerificationFailed, decision.ReasonCode)
	s.Nil(decision.Score)
	s.NotEmpty(decision.Message)
}

func (s *ServiceSuite) TestUnknownNINRejectsAsVerificationFailure() {
	s.seedStrongProfile()

	req := s.request()
	req.Customer.NIN = "98765432109"

	decision, err := s.service.Evaluate(s.ctx, req)
	s.Require().NoError(err)

	s.Equal(credit.StatusRejected, decision.Status)
	s.Equal(credit.ReasonIdentityVerificationFailed, decision.ReasonCode)
}

func (s *ServiceSuite) TestThinProfileRejectsAsInsufficientCredit() {
	s.provider.ninRecords[testNIN] = provider.Record{
		FirstName: "John", LastName: "Doe", PhoneNumber: "08099999999",
	}
	s.reference.SeedPhoneAge(testPhone, 1)
	s.reference.SeedHistory(testNIN, credit.LoanHistory{PriorLoans: 5, Defaults: 2, OnTimePayments: 1})
	s.reference.SeedMerchantStats("m-1", credit.MerchantStats{DefaultRate: 0.25, Volume: 10})

	req := s.request()
	req.Customer.BVN = ""

	decision, err := s.service.Evaluate(s.ctx, req)
	s.Require().NoError(err)

	s.Equal(credit.StatusRejected, decision.Status)
	s.Equal(credit.ReasonInsufficientCreditProfile, decision.ReasonCode)
	s.Require().NotNil(decision.Score)
	s.Less(*decision.Score, 500)
}

func (s *ServiceSuite) TestAbsentPolicyKeepsBaseTerms() {
	s.seedStrongProfile()

	decision, err := s.service.Evaluate(s.ctx, s.request())
	s.Require().NoError(err)

	s.True(decision.Approved)
	s.InDelta(1_000_000, decision.Terms.MaxDeviceValue, 0.001)
}

func (s *ServiceSuite) TestUnknownMerchantIsHardError() {
	req := s.request()
	req.MerchantID = "m-missing"

	decision, err := s.service.Evaluate(s.ctx, req)
	s.Require().Error(err)
	s.Nil(decision)
	s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))
	s.Empty(s.auditStore.All())
}

func (s *ServiceSuite) TestSuspendedMerchantIsHardError() {
	s.merchants.PutMerchant(merchant.Merchant{
		ID: "m-1", Status: merchant.StatusSuspended, PolicyApproved: true,
	})

	_, err := s.service.Evaluate(s.ctx, s.request())
	s.Require().Error(err)
	s.Equal(dErrors.CodeForbidden, dErrors.CodeOf(err))
}

func (s *ServiceSuite) TestUnapprovedPolicyIsHardError() {
	s.merchants.PutMerchant(merchant.Merchant{
		ID: "m-1", Status: merchant.StatusActive, PolicyApproved: false,
	})

	_, err := s.service.Evaluate(s.ctx, s.request())
	s.Require().Error(err)
	s.Equal(dErrors.CodeForbidden, dErrors.CodeOf(err))
}

func (s *ServiceSuite) TestForeignAgentIsHardError() {
	s.merchants.PutAgent(merchant.Agent{
		ID: "a-1", MerchantID: "m-other", Role: merchant.RoleAgent,
	})

	_, err := s.service.Evaluate(s.ctx, s.request())
	s.Require().Error(err)
	s.Equal(dErrors.CodeForbidden, dErrors.CodeOf(err))
}

func (s *ServiceSuite) TestManagerRoleCannotSubmitChecks() {
	s.merchants.PutAgent(merchant.Agent{
		ID: "a-1", MerchantID: "m-1", Role: merchant.RoleManager,
	})

	_, err := s.service.Evaluate(s.ctx, s.request())
	s.Require().Error(err)
	s.Equal(dErrors.CodeForbidden, dErrors.CodeOf(err))
}

func (s *ServiceSuite) TestProviderOutageIsHardError() {
	s.seedStrongProfile()
	s.provider.down = true

	decision, err := s.service.Evaluate(s.ctx, s.request())
	s.Require().Error(err)
	s.Nil(decision)

	var perr *provider.Error
	s.ErrorAs(err, &perr)
	s.Empty(s.auditStore.All())
}

func (s *ServiceSuite) TestAuditFailureDoesNotChangeOutcome() {
	s.seedStrongProfile()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	detector, err := fraud.NewDetector(s.reference, logger)
	s.Require().NoError(err)

	service, err := credit.NewService(
		s.merchants,
		identity.NewVerifier(s.provider, logger, time.Second),
		detector,
		s.policies,
		s.reference,
		failingSink{},
		logger,
		nil,
	)
	s.Require().NoError(err)

	decision, err := service.Evaluate(s.ctx, s.request())
	s.Require().NoError(err)
	s.True(decision.Approved)
}

func (s *ServiceSuite) TestEachEvaluationGetsFreshCheckID() {
	s.seedStrongProfile()

	first, err := s.service.Evaluate(s.ctx, s.request())
	s.Require().NoError(err)
	second, err := s.service.Evaluate(s.ctx, s.request())
	s.Require().NoError(err)

	s.NotEqual(first.CheckID, second.CheckID)
}

func (s *ServiceSuite) TestEvaluationFeedsVelocityWindow() {
	s.seedStrongProfile()

	_, err := s.service.Evaluate(s.ctx, s.request())
	s.Require().NoError(err)

	count, err := s.reference.ChecksInWindow(s.ctx, testPhone, 15*time.Minute)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *ServiceSuite) TestRapidResubmissionRaisesRiskScore() {
	s.seedStrongProfile()

	var last *credit.Decision
	for n := 0; n < 5; n++ {
		decision, err := s.service.Evaluate(s.ctx, s.request())
		s.Require().NoError(err)
		last = decision
	}

	// Velocity alone (weight 30) is below the fraud threshold, so the
	// application still approves, but the audit trail carries the signal.
	s.Equal(credit.StatusApproved, last.Status)
	events := s.auditStore.All()
	s.Require().Len(events, 5)
	s.Equal(30, events[4].RiskScore)
	s.Len(events[4].RiskReasons, 1)
}
