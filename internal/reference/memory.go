// Package reference implements the data stores behind the fraud checks and
// the credit factors: blacklists, customer profiles, velocity counters, loan
// books, and merchant portfolio stats.
package reference

import (
	"context"
	"sync"
	"time"

	"lendgate/internal/credit"
	"lendgate/internal/fraud"
	"lendgate/pkg/requestcontext"
)

// InMemoryStore backs the fraud and scoring ports with maps. It is the
// default when Postgres is not configured and the fixture store for tests.
type InMemoryStore struct {
	mu sync.RWMutex

	blacklist map[string]struct{}
	// profiles maps phone number to the set of NINs seen with it.
	profiles map[string]map[string]struct{}
	checks   map[string][]time.Time
	loans    map[string]map[fraud.LoanStatus]int

	phoneAges map[string]int
	histories map[string]credit.LoanHistory
	incomes   map[string]float64
	merchants map[string]credit.MerchantStats
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		blacklist: make(map[string]struct{}),
		profiles:  make(map[string]map[string]struct{}),
		checks:    make(map[string][]time.Time),
		loans:     make(map[string]map[fraud.LoanStatus]int),
		phoneAges: make(map[string]int),
		histories: make(map[string]credit.LoanHistory),
		incomes:   make(map[string]float64),
		merchants: make(map[string]credit.MerchantStats),
	}
}

// Blacklist marks identifiers (NINs, BVNs, or phone numbers) as blocked.
func (s *InMemoryStore) Blacklist(identifiers ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range identifiers {
		if id != "" {
			s.blacklist[id] = struct{}{}
		}
	}
}

// SeedProfile records that a NIN has been observed with a phone number.
func (s *InMemoryStore) SeedProfile(phone, nin string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profiles[phone] == nil {
		s.profiles[phone] = make(map[string]struct{})
	}
	s.profiles[phone][nin] = struct{}{}
}

// SeedLoans sets the loan count for a NIN and status.
func (s *InMemoryStore) SeedLoans(nin string, status fraud.LoanStatus, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loans[nin] == nil {
		s.loans[nin] = make(map[fraud.LoanStatus]int)
	}
	s.loans[nin][status] = count
}

// SeedPhoneAge sets the observed age of a phone number in months.
func (s *InMemoryStore) SeedPhoneAge(phone string, months int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phoneAges[phone] = months
}

// SeedHistory sets a customer's repayment record.
func (s *InMemoryStore) SeedHistory(nin string, history credit.LoanHistory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.histories[nin] = history
}

// SeedIncome sets a customer's estimated monthly income.
func (s *InMemoryStore) SeedIncome(nin string, income float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.incomes[nin] = income
}

// SeedMerchantStats sets a merchant's portfolio summary.
func (s *InMemoryStore) SeedMerchantStats(merchantID string, stats credit.MerchantStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.merchants[merchantID] = stats
}

func (s *InMemoryStore) InBlacklist(_ context.Context, nin, bvn, phone string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range []string{nin, bvn, phone} {
		if id == "" {
			continue
		}
		if _, ok := s.blacklist[id]; ok {
			return true, nil
		}
	}
	return false, nil
}

func (s *InMemoryStore) ProfileCountByPhone(_ context.Context, phone string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles[phone]), nil
}

func (s *InMemoryStore) ChecksInWindow(ctx context.Context, phone string, window time.Duration) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cutoff := requestcontext.Now(ctx).Add(-window)
	count := 0
	for _, at := range s.checks[phone] {
		if at.After(cutoff) {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryStore) LoanCountByStatus(_ context.Context, nin string, status fraud.LoanStatus) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loans[nin][status], nil
}

func (s *InMemoryStore) PhoneAgeMonths(_ context.Context, phone string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phoneAges[phone], nil
}

func (s *InMemoryStore) LoanHistory(_ context.Context, nin string) (credit.LoanHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.histories[nin], nil
}

func (s *InMemoryStore) EstimatedIncome(_ context.Context, nin string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.incomes[nin], nil
}

func (s *InMemoryStore) MerchantStats(_ context.Context, merchantID string) (credit.MerchantStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.merchants[merchantID], nil
}

func (s *InMemoryStore) RecordCheck(ctx context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks[phone] = append(s.checks[phone], requestcontext.Now(ctx))
	return nil
}
