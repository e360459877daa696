package policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"lendgate/internal/platform/postgres"
	"lendgate/pkg/platform/sentinel"
)

// PostgresStore reads merchant policies from the merchant_policies table.
type PostgresStore struct {
	pool *postgres.Pool
}

// NewPostgresStore constructs a Postgres-backed policy store.
func NewPostgresStore(pool *postgres.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Get(ctx context.Context, merchantID string) (*MerchantPolicy, error) {
	const query = `
		SELECT merchant_id, max_device_value, allowed_tenures,
		       min_down_payment_percent, risk_tolerance
		FROM merchant_policies
		WHERE merchant_id = $1`

	var pol MerchantPolicy
	err := s.pool.QueryRow(ctx, query, merchantID).Scan(
		&pol.MerchantID,
		&pol.MaxDeviceValue,
		&pol.AllowedTenures,
		&pol.MinDownPaymentPercent,
		&pol.RiskTolerance,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("policy for merchant %s: %w", merchantID, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("get merchant policy: %w", err)
	}
	return &pol, nil
}
