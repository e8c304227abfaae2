package ratelimit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	dErrors "lendfold/pkg/domain-errors"
)

const (
	testLimit  = 3
	testWindow = time.Minute
)

type LimiterSuite struct {
	suite.Suite
	ctx    context.Context
	logger *slog.Logger
}

func TestLimiterSuite(t *testing.T) {
	suite.Run(t, new(LimiterSuite))
}

func (s *LimiterSuite) SetupTest() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *LimiterSuite) TestAllow() {
	limiter := NewLimiter(NewInMemoryBucketStore(), testLimit, testWindow, s.logger)

	s.Run("requests within limit pass", func() {
		for i := 0; i < testLimit; i++ {
			s.NoError(limiter.Allow(s.ctx, "cust-1"))
		}
	})

	s.Run("request over limit rejected", func() {
		err := limiter.Allow(s.ctx, "cust-1")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeRateLimited))
	})

	s.Run("keys are independent", func() {
		s.NoError(limiter.Allow(s.ctx, "cust-2"))
	})
}

type brokenStore struct{}

func (brokenStore) Allow(context.Context, string, int, time.Duration) (*Result, error) {
	return nil, errors.New("store down")
}

func (brokenStore) Reset(context.Context, string) error { return nil }

func (s *LimiterSuite) TestFailOpen() {
	limiter := NewLimiter(brokenStore{}, testLimit, testWindow, s.logger)
	s.NoError(limiter.Allow(s.ctx, "cust-1"))
}

func (s *LimiterSuite) TestInMemoryBucketStore() {
	store := NewInMemoryBucketStore()

	s.Run("counts and remaining", func() {
		res, err := store.Allow(s.ctx, "k", testLimit, testWindow)
		s.Require().NoError(err)
		s.True(res.Allowed)
		s.Equal(testLimit, res.Limit)
		s.Equal(testLimit-1, res.Remaining)
	})

	s.Run("denies at limit", func() {
		for i := 0; i < testLimit-1; i++ {
			_, err := store.Allow(s.ctx, "k", testLimit, testWindow)
			s.Require().NoError(err)
		}
		res, err := store.Allow(s.ctx, "k", testLimit, testWindow)
		s.Require().NoError(err)
		s.False(res.Allowed)
		s.Zero(res.Remaining)
	})

	s.Run("expired entries fall out of the window", func() {
		store.mu.Lock()
		for _, sw := range store.buckets {
			for i := range sw.timestamps {
				sw.timestamps[i] = sw.timestamps[i].Add(-2 * testWindow)
			}
		}
		store.mu.Unlock()

		res, err := store.Allow(s.ctx, "k", testLimit, testWindow)
		s.Require().NoError(err)
		s.True(res.Allowed)
	})

	s.Run("reset clears the bucket", func() {
		s.Require().NoError(store.Reset(s.ctx, "k"))
		res, err := store.Allow(s.ctx, "k", testLimit, testWindow)
		s.Require().NoError(err)
		s.Equal(testLimit-1, res.Remaining)
	})
}
