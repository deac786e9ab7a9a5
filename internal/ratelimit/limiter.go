package ratelimit

import (
	"context"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/storefront/internal/config"
	"go.uber.org/zap"
)

const keyFormSubmission = "storefront:ratelimit:%s:%s"

type bucket interface {
	Allow(ctx context.Context, key string, rate float64, burst int) (Result, error)
}

// FormLimiter throttles public form endpoints per client IP.
type FormLimiter struct {
	bucket bucket
	rate   float64
	burst  int
	log    *zap.Logger
}

func NewFormLimiter(cfg config.Config, client *redis.Client, log *zap.Logger) *FormLimiter {
	perMinute := cfg.FormRateLimitPerMinute
	if perMinute <= 0 {
		return &FormLimiter{log: log}
	}

	var b bucket = NewMemoryBucket()
	if tb := NewTokenBucket(client); tb != nil {
		b = tb
	}
	return &FormLimiter{
		bucket: b,
		rate:   float64(perMinute) / 60,
		burst:  int(perMinute),
		log:    log.Named("ratelimit"),
	}
}

// Enabled is false when FORM_RATE_LIMIT_PER_MINUTE is zero or negative.
func (l *FormLimiter) Enabled() bool {
	return l != nil && l.bucket != nil
}

// Allow fails open when the backing store errors.
func (l *FormLimiter) Allow(ctx context.Context, endpoint, clientIP string) Result {
	if !l.Enabled() {
		return Result{Allowed: true}
	}
	key := fmt.Sprintf(keyFormSubmission, endpoint, strings.TrimSpace(clientIP))
	res, err := l.bucket.Allow(ctx, key, l.rate, l.burst)
	if err != nil {
		l.log.Warn("rate limit check failed", zap.String("endpoint", endpoint), zap.Error(err))
		return Result{Allowed: true, Limit: l.burst}
	}
	return res
}
