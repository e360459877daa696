package reference

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"lendgate/internal/credit"
	"lendgate/internal/fraud"
	"lendgate/internal/platform/postgres"
	"lendgate/pkg/requestcontext"
)

// PostgresStore serves the fraud and scoring ports from the reference
// schema: blacklist, customer_profiles, eligibility_checks, loans, and
// merchant_stats tables.
type PostgresStore struct {
	pool *postgres.Pool
}

func NewPostgresStore(pool *postgres.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) InBlacklist(ctx context.Context, nin, bvn, phone string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM blacklist WHERE identifier = ANY($1))`

	identifiers := make([]string, 0, 3)
	for _, id := range []string{nin, bvn, phone} {
		if id != "" {
			identifiers = append(identifiers, id)
		}
	}

	var found bool
	if err := s.pool.QueryRow(ctx, query, identifiers).Scan(&found); err != nil {
		return false, fmt.Errorf("blacklist lookup: %w", err)
	}
	return found, nil
}

func (s *PostgresStore) ProfileCountByPhone(ctx context.Context, phone string) (int, error) {
	const query = `SELECT COUNT(DISTINCT nin) FROM customer_profiles WHERE phone_number = $1`

	var count int
	if err := s.pool.QueryRow(ctx, query, phone).Scan(&count); err != nil {
		return 0, fmt.Errorf("profile count: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) ChecksInWindow(ctx context.Context, phone string, window time.Duration) (int, error) {
	const query = `SELECT COUNT(*) FROM eligibility_checks WHERE phone_number = $1 AND checked_at > $2`

	cutoff := requestcontext.Now(ctx).Add(-window)
	var count int
	if err := s.pool.QueryRow(ctx, query, phone, cutoff).Scan(&count); err != nil {
		return 0, fmt.Errorf("velocity count: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) LoanCountByStatus(ctx context.Context, nin string, status fraud.LoanStatus) (int, error) {
	const query = `SELECT COUNT(*) FROM loans WHERE nin = $1 AND status = $2`

	var count int
	if err := s.pool.QueryRow(ctx, query, nin, string(status)).Scan(&count); err != nil {
		return 0, fmt.Errorf("loan count: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) PhoneAgeMonths(ctx context.Context, phone string) (int, error) {
	const query = `SELECT first_seen FROM phone_observations WHERE phone_number = $1`

	var firstSeen time.Time
	err := s.pool.QueryRow(ctx, query, phone).Scan(&firstSeen)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("phone age: %w", err)
	}

	months := int(requestcontext.Now(ctx).Sub(firstSeen).Hours() / (24 * 30))
	if months < 0 {
		months = 0
	}
	return months, nil
}

func (s *PostgresStore) LoanHistory(ctx context.Context, nin string) (credit.LoanHistory, error) {
	const query = `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'DEFAULTED'),
		       COALESCE(SUM(on_time_payments), 0)
		FROM loans
		WHERE nin = $1`

	var h credit.LoanHistory
	if err := s.pool.QueryRow(ctx, query, nin).Scan(&h.PriorLoans, &h.Defaults, &h.OnTimePayments); err != nil {
		return credit.LoanHistory{}, fmt.Errorf("loan history: %w", err)
	}
	return h, nil
}

func (s *PostgresStore) EstimatedIncome(ctx context.Context, nin string) (float64, error) {
	const query = `SELECT estimated_income FROM customer_profiles WHERE nin = $1 ORDER BY updated_at DESC LIMIT 1`

	var income float64
	err := s.pool.QueryRow(ctx, query, nin).Scan(&income)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("estimated income: %w", err)
	}
	return income, nil
}

func (s *PostgresStore) MerchantStats(ctx context.Context, merchantID string) (credit.MerchantStats, error) {
	const query = `SELECT default_rate, volume FROM merchant_stats WHERE merchant_id = $1`

	var stats credit.MerchantStats
	err := s.pool.QueryRow(ctx, query, merchantID).Scan(&stats.DefaultRate, &stats.Volume)
	if errors.Is(err, pgx.ErrNoRows) {
		return credit.MerchantStats{}, nil
	}
	if err != nil {
		return credit.MerchantStats{}, fmt.Errorf("merchant stats: %w", err)
	}
	return stats, nil
}

func (s *PostgresStore) RecordCheck(ctx context.Context, phone string) error {
	const query = `INSERT INTO eligibility_checks (phone_number, checked_at) VALUES ($1, $2)`

	if _, err := s.pool.Exec(ctx, query, phone, requestcontext.Now(ctx)); err != nil {
		return fmt.Errorf("record check: %w", err)
	}
	return nil
}
