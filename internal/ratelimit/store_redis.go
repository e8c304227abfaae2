package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "lendfold:rl:"

// RedisBucketStore implements BucketStore on a Redis sorted set per key, with
// event timestamps as scores. One pipelined round trip trims the expired
// entries, adds the new one, and reads the count, so two requests racing at
// the limit cannot both observe a free slot.
type RedisBucketStore struct {
	client *redis.Client
	seq    atomic.Uint64
}

func NewRedisBucketStore(client *redis.Client) *RedisBucketStore {
	return &RedisBucketStore{client: client}
}

func (s *RedisBucketStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	now := time.Now()
	redisKey := redisKeyPrefix + key
	cutoff := strconv.FormatInt(now.Add(-window).UnixNano(), 10)
	// The sequence suffix keeps members unique when two events share a
	// nanosecond; a ZAdd collision would silently drop one of them.
	member := strconv.FormatInt(now.UnixNano(), 10) + "-" + strconv.FormatUint(s.seq.Add(1), 10)

	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", cutoff)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixNano()), Member: member})
	count := pipe.ZCard(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("rate limit window update: %w", err)
	}

	if count.Val() > int64(limit) {
		// Rejected attempts do not consume window capacity.
		if err := s.client.ZRem(ctx, redisKey, member).Err(); err != nil {
			return nil, fmt.Errorf("rate limit window trim: %w", err)
		}
		return &Result{
			Allowed: false,
			Limit:   limit,
			ResetAt: now.Add(window),
		}, nil
	}

	return &Result{
		Allowed:   true,
		Remaining: limit - int(count.Val()),
		Limit:     limit,
		ResetAt:   now.Add(window),
	}, nil
}

func (s *RedisBucketStore) Reset(ctx context.Context, key string) error {
	return s.client.Del(ctx, redisKeyPrefix+key).Err()
}
