package reference

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"lendgate/internal/credit"
	"lendgate/internal/fraud"
	"lendgate/internal/platform/redis"
	"lendgate/pkg/requestcontext"
)

const velocityKeyPrefix = "lendgate:velocity:"

// RedisVelocity tracks eligibility checks per phone number in a Redis
// sorted set keyed by timestamp, so the trailing-window count stays exact
// without a Postgres round trip on the hot path.
type RedisVelocity struct {
	client *redis.Client
}

func NewRedisVelocity(client *redis.Client) *RedisVelocity {
	return &RedisVelocity{client: client}
}

func (v *RedisVelocity) Record(ctx context.Context, phone string) error {
	now := requestcontext.Now(ctx)
	key := velocityKeyPrefix + phone
	member := strconv.FormatInt(now.UnixNano(), 10)

	pipe := v.client.Pipeline()
	pipe.ZAdd(ctx, key, goredis.Z{Score: float64(now.UnixNano()), Member: member})
	pipe.Expire(ctx, key, time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record velocity: %w", err)
	}
	return nil
}

func (v *RedisVelocity) Count(ctx context.Context, phone string, window time.Duration) (int, error) {
	now := requestcontext.Now(ctx)
	key := velocityKeyPrefix + phone
	cutoff := strconv.FormatInt(now.Add(-window).UnixNano(), 10)

	if err := v.client.ZRemRangeByScore(ctx, key, "-inf", "("+cutoff).Err(); err != nil {
		return 0, fmt.Errorf("trim velocity window: %w", err)
	}
	count, err := v.client.ZCount(ctx, key, cutoff, "+inf").Result()
	if err != nil {
		return 0, fmt.Errorf("count velocity window: %w", err)
	}
	return int(count), nil
}

// VelocityStore layers the Redis tracker over a base store, overriding the
// two velocity operations while delegating everything else.
type VelocityStore struct {
	base interface {
		fraud.ReferenceStore
		credit.HistoryStore
	}
	velocity *RedisVelocity
}

func WithVelocity(base interface {
	fraud.ReferenceStore
	credit.HistoryStore
}, velocity *RedisVelocity) *VelocityStore {
	return &VelocityStore{base: base, velocity: velocity}
}

func (s *VelocityStore) InBlacklist(ctx context.Context, nin, bvn, phone string) (bool, error) {
	return s.base.InBlacklist(ctx, nin, bvn, phone)
}

func (s *VelocityStore) ProfileCountByPhone(ctx context.Context, phone string) (int, error) {
	return s.base.ProfileCountByPhone(ctx, phone)
}

func (s *VelocityStore) ChecksInWindow(ctx context.Context, phone string, window time.Duration) (int, error) {
	return s.velocity.Count(ctx, phone, window)
}

func (s *VelocityStore) LoanCountByStatus(ctx context.Context, nin string, status fraud.LoanStatus) (int, error) {
	return s.base.LoanCountByStatus(ctx, nin, status)
}

func (s *VelocityStore) PhoneAgeMonths(ctx context.Context, phone string) (int, error) {
	return s.base.PhoneAgeMonths(ctx, phone)
}

func (s *VelocityStore) LoanHistory(ctx context.Context, nin string) (credit.LoanHistory, error) {
	return s.base.LoanHistory(ctx, nin)
}

func (s *VelocityStore) EstimatedIncome(ctx context.Context, nin string) (float64, error) {
	return s.base.EstimatedIncome(ctx, nin)
}

func (s *VelocityStore) MerchantStats(ctx context.Context, merchantID string) (credit.MerchantStats, error) {
	return s.base.MerchantStats(ctx, merchantID)
}

func (s *VelocityStore) RecordCheck(ctx context.Context, phone string) error {
	return s.velocity.Record(ctx, phone)
}
