package fraud

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"lendgate/internal/platform/logger"
)

// fakeStore scripts reference data per test. Field zero values mean "check
// does not trigger".
type fakeStore struct {
	blacklisted  bool
	profileCount int
	checkCount   int
	defaulted    int
	active       int

	blacklistErr error
	velocityErr  error
}

func (f *fakeStore) InBlacklist(_ context.Context, _, _, _ string) (bool, error) {
	return f.blacklisted, f.blacklistErr
}

func (f *fakeStore) ProfileCountByPhone(_ context.Context, _ string) (int, error) {
	return f.profileCount, nil
}

func (f *fakeStore) ChecksInWindow(_ context.Context, _ string, _ time.Duration) (int, error) {
	return f.checkCount, f.velocityErr
}

func (f *fakeStore) LoanCountByStatus(_ context.Context, _ string, status LoanStatus) (int, error) {
	if status == LoanStatusDefaulted {
		return f.defaulted, nil
	}
	return f.active, nil
}

type DetectorSuite struct {
	suite.Suite
	ctx     context.Context
	subject Subject
}

func TestDetectorSuite(t *testing.T) {
	suite.Run(t, new(DetectorSuite))
}

func (s *DetectorSuite) SetupTest() {
	s.ctx = context.Background()
	s.subject = Subject{NIN: "12345678901", BVN: "22345678901", Phone: "08031234567"}
}

func (s *DetectorSuite) detect(store ReferenceStore) *CheckResult {
	d, err := NewDetector(store, logger.New("test"))
	s.Require().NoError(err)
	result, err := d.Detect(s.ctx, s.subject)
	s.Require().NoError(err)
	return result
}

func (s *DetectorSuite) TestCleanCustomer() {
	result := s.detect(&fakeStore{})

	s.False(result.IsFraud)
	s.Zero(result.RiskScore)
	s.Empty(result.Reasons)
}

func (s *DetectorSuite) TestBlacklistAloneIsFraud() {
	result := s.detect(&fakeStore{blacklisted: true})

	s.True(result.IsFraud, "a blacklist hit alone must be terminal")
	s.Equal(100, result.RiskScore)
	s.Require().Len(result.Reasons, 1)
	s.Contains(result.Reasons[0], "blacklist")
}

func (s *DetectorSuite) TestSingleSoftSignalIsNotFraud() {
	cases := []struct {
		name  string
		store *fakeStore
		score int
	}{
		{name: "multi_bvn", store: &fakeStore{profileCount: 2}, score: 50},
		{name: "velocity", store: &fakeStore{checkCount: 4}, score: 30},
		{name: "default_history", store: &fakeStore{defaulted: 1}, score: 40},
		{name: "cross_merchant", store: &fakeStore{active: 3}, score: 60},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			result := s.detect(tc.store)
			s.False(result.IsFraud)
			s.Equal(tc.score, result.RiskScore)
			s.Len(result.Reasons, 1)
		})
	}
}

func (s *DetectorSuite) TestAccumulationCrossesThreshold() {
	// multi_bvn(50) + default_history(40) = 90: below threshold.
	result := s.detect(&fakeStore{profileCount: 2, defaulted: 1})
	s.False(result.IsFraud)
	s.Equal(90, result.RiskScore)

	// Adding velocity(30) pushes the unclamped sum to 120.
	result = s.detect(&fakeStore{profileCount: 2, defaulted: 1, checkCount: 4})
	s.True(result.IsFraud)
	s.Equal(100, result.RiskScore, "reported score is clamped to 100")
	s.Len(result.Reasons, 3)
}

func (s *DetectorSuite) TestReasonsFollowDefinitionOrder() {
	result := s.detect(&fakeStore{
		blacklisted:  true,
		profileCount: 5,
		checkCount:   10,
		defaulted:    2,
		active:       4,
	})

	s.Require().Len(result.Reasons, 5)
	s.Contains(result.Reasons[0], "blacklist")
	s.Contains(result.Reasons[1], "profiles")
	s.Contains(result.Reasons[2], "eligibility checks")
	s.Contains(result.Reasons[3], "DEFAULTED")
	s.Contains(result.Reasons[4], "active loans")
}

func (s *DetectorSuite) TestThresholdBoundaries() {
	// >1 profiles, >3 checks, >=1 default, >2 active: verify the exact
	// boundary values do not trigger.
	result := s.detect(&fakeStore{profileCount: 1, checkCount: 3, defaulted: 0, active: 2})
	s.Zero(result.RiskScore)
	s.Empty(result.Reasons)
}

func (s *DetectorSuite) TestLookupFailureFailsOpen() {
	store := &fakeStore{
		blacklistErr: errors.New("blacklist table unavailable"),
		defaulted:    1,
	}
	result := s.detect(store)

	s.False(result.IsFraud, "a failed lookup must not trigger its check")
	s.Equal(40, result.RiskScore, "remaining checks still run")
	s.Require().Len(result.Reasons, 1)
	s.Contains(result.Reasons[0], "DEFAULTED")
}

// Exhaustive subset check: isFraud must hold exactly when the unclamped sum
// of triggered weights reaches 100, and the reported score is min(100, sum).
func (s *DetectorSuite) TestAllTriggerSubsets() {
	weights := []int{100, 50, 30, 40, 60}
	for mask := 0; mask < 1<<5; mask++ {
		store := &fakeStore{}
		sum := 0
		if mask&1 != 0 {
			store.blacklisted = true
			sum += weights[0]
		}
		if mask&2 != 0 {
			store.profileCount = 2
			sum += weights[1]
		}
		if mask&4 != 0 {
			store.checkCount = 4
			sum += weights[2]
		}
		if mask&8 != 0 {
			store.defaulted = 1
			sum += weights[3]
		}
		if mask&16 != 0 {
			store.active = 3
			sum += weights[4]
		}

		result := s.detect(store)
		s.Equal(sum >= 100, result.IsFraud, "mask %05b", mask)
		s.Equal(min(sum, 100), result.RiskScore, "mask %05b", mask)
	}
}
