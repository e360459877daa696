package audit

import (
	"context"
	"fmt"

	"lendgate/internal/platform/postgres"
)

// PostgresStore persists decision events in the audit_events table.
type PostgresStore struct {
	pool *postgres.Pool
}

// NewPostgresStore constructs a Postgres-backed audit store.
func NewPostgresStore(pool *postgres.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Append(ctx context.Context, event DecisionEvent) error {
	const query = `
		INSERT INTO audit_events (
			check_id, created_at, request_id, merchant_id, agent_id,
			subject_id_hash, product_id, price, status, reason_code,
			score, risk_score, risk_reasons
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := s.pool.Exec(ctx, query,
		event.CheckID,
		event.Timestamp,
		event.RequestID,
		event.MerchantID,
		event.AgentID,
		event.SubjectIDHash,
		event.ProductID,
		event.Price,
		event.Status,
		event.ReasonCode,
		event.Score,
		event.RiskScore,
		event.RiskReasons,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByMerchant(ctx context.Context, merchantID string) ([]DecisionEvent, error) {
	const query = `
		SELECT check_id, created_at, request_id, merchant_id, agent_id,
		       subject_id_hash, product_id, price, status, reason_code,
		       score, risk_score, risk_reasons
		FROM audit_events
		WHERE merchant_id = $1
		ORDER BY created_at`

	rows, err := s.pool.Query(ctx, query, merchantID)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var out []DecisionEvent
	for rows.Next() {
		var e DecisionEvent
		if err := rows.Scan(
			&e.CheckID,
			&e.Timestamp,
			&e.RequestID,
			&e.MerchantID,
			&e.AgentID,
			&e.SubjectIDHash,
			&e.ProductID,
			&e.Price,
			&e.Status,
			&e.ReasonCode,
			&e.Score,
			&e.RiskScore,
			&e.RiskReasons,
		); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return out, nil
}
