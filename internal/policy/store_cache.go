package policy

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"lendgate/internal/platform/redis"
)

// CachedStore wraps a policy store with a Redis read-through cache.
// Policies change rarely but are read on every evaluation, so a short TTL
// keeps staleness bounded without hammering Postgres.
type CachedStore struct {
	inner  Store
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedStore wraps inner with a Redis cache. Cache failures degrade to
// direct reads; they are logged, never surfaced.
func NewCachedStore(inner Store, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedStore {
	return &CachedStore{inner: inner, client: client, ttl: ttl, logger: logger}
}

func cacheKey(merchantID string) string {
	return "lendgate:policy:" + merchantID
}

func (s *CachedStore) Get(ctx context.Context, merchantID string) (*MerchantPolicy, error) {
	key := cacheKey(merchantID)

	raw, err := s.client.Get(ctx, key).Bytes()
	if err == nil {
		var pol MerchantPolicy
		if err := json.Unmarshal(raw, &pol); err == nil {
			return &pol, nil
		}
		// Corrupt entry; fall through to the source of truth.
		s.logger.WarnContext(ctx, "discarding corrupt policy cache entry", "merchant_id", merchantID)
	} else if err != goredis.Nil {
		s.logger.WarnContext(ctx, "policy cache read failed", "merchant_id", merchantID, "error", err)
	}

	pol, err := s.inner.Get(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(pol); err == nil {
		if err := s.client.Set(ctx, key, encoded, s.ttl).Err(); err != nil {
			s.logger.WarnContext(ctx, "policy cache write failed", "merchant_id", merchantID, "error", err)
		}
	}

	return pol, nil
}
