// Package ratelimit throttles application submissions per customer.
package ratelimit

import (
	"context"
	"log/slog"
	"time"

	dErrors "lendfold/pkg/domain-errors"
)

// Result reports the outcome of one limiter check.
type Result struct {
	Allowed   bool
	Remaining int
	Limit     int
	ResetAt   time.Time
}

// BucketStore counts events per key over a sliding window. InMemory is the
// single-instance default; Redis shares state between instances.
type BucketStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
	Reset(ctx context.Context, key string) error
}

// Limiter enforces a per-customer submission cap.
type Limiter struct {
	store  BucketStore
	limit  int
	window time.Duration
	logger *slog.Logger
}

func NewLimiter(store BucketStore, limit int, window time.Duration, logger *slog.Logger) *Limiter {
	return &Limiter{store: store, limit: limit, window: window, logger: logger}
}

// Allow consumes one submission slot for the actor. Store failures fail open:
// a broken counter must not block legitimate submissions.
func (l *Limiter) Allow(ctx context.Context, actorID string) error {
	res, err := l.store.Allow(ctx, "create:"+actorID, l.limit, l.window)
	if err != nil {
		l.logger.WarnContext(ctx, "rate limit check failed, allowing request",
			"error", err,
			"actor_id", actorID,
		)
		return nil
	}
	if !res.Allowed {
		return dErrors.New(dErrors.CodeRateLimited, "too many applications submitted, try again later")
	}
	return nil
}
