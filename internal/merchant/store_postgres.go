package merchant

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"lendgate/internal/platform/postgres"
	"lendgate/pkg/platform/sentinel"
)

// PostgresDirectory reads merchants and agents from Postgres.
type PostgresDirectory struct {
	pool *postgres.Pool
}

// NewPostgresDirectory constructs a Postgres-backed directory.
func NewPostgresDirectory(pool *postgres.Pool) *PostgresDirectory {
	return &PostgresDirectory{pool: pool}
}

func (d *PostgresDirectory) GetMerchant(ctx context.Context, merchantID string) (*Merchant, error) {
	const query = `
		SELECT id, name, status, policy_approved
		FROM merchants
		WHERE id = $1`

	var m Merchant
	err := d.pool.QueryRow(ctx, query, merchantID).Scan(&m.ID, &m.Name, &m.Status, &m.PolicyApproved)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("merchant %s: %w", merchantID, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("get merchant: %w", err)
	}
	return &m, nil
}

func (d *PostgresDirectory) GetAgent(ctx context.Context, agentID string) (*Agent, error) {
	const query = `
		SELECT id, merchant_id, full_name, role
		FROM agents
		WHERE id = $1`

	var a Agent
	err := d.pool.QueryRow(ctx, query, agentID).Scan(&a.ID, &a.MerchantID, &a.FullName, &a.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("agent %s: %w", agentID, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("get agent: %w", err)
	}
	return &a, nil
}
