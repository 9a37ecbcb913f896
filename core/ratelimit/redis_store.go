package ratelimit

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"garage-api/core/constants"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps one sorted set per (class, identity) key. Members are
// scored by request time in nanoseconds; entries older than the window are
// trimmed on every hit and the whole key expires on its own.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore requires a non-nil client. When redis is not configured the
// caller passes no store to the limiter at all, which then degrades to allow.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	now := time.Now()
	redisKey := constants.RateLimitKeySpace + ":" + key
	cutoff := now.Add(-window).UnixNano()
	member := fmt.Sprintf("%d-%d", now.UnixNano(), randSuffix())

	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(cutoff, 10))
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixNano()), Member: member})
	countCmd := pipe.ZCard(ctx, redisKey)
	oldestCmd := pipe.ZRangeWithScores(ctx, redisKey, 0, 0)
	pipe.Expire(ctx, redisKey, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, err
	}

	count := countCmd.Val()
	oldest := now
	if zs := oldestCmd.Val(); len(zs) > 0 {
		oldest = time.Unix(0, int64(zs[0].Score))
	}
	return count, oldest, nil
}

// randSuffix keeps members unique when two hits land on the same nanosecond.
func randSuffix() uint32 {
	return rand.Uint32()
}
