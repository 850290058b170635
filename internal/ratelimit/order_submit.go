package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jawadsites/boostpanel/internal/config"
	redis "github.com/redis/go-redis/v9"
)

const keyOrderSubmit = "orders:submit:ip:%s"

// OrderSubmitLimiter throttles order creation per client address. A nil
// limiter (rate limiting disabled) allows everything.
type OrderSubmitLimiter struct {
	enabled bool

	bucket *TokenBucket
	rate   float64
	burst  int
}

func NewOrderSubmitLimiter(cfg config.Config) (*OrderSubmitLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}

	addr := strings.TrimSpace(limitCfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}
	if limitCfg.OrderSubmitRate <= 0 || limitCfg.OrderSubmitBurst <= 0 {
		return nil, errors.New("order submit rate limit must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(limitCfg.RedisPassword),
		DB:       limitCfg.RedisDB,
	})

	return &OrderSubmitLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
		rate:    limitCfg.OrderSubmitRate,
		burst:   limitCfg.OrderSubmitBurst,
	}, nil
}

func (l *OrderSubmitLimiter) Enabled() bool {
	return l != nil && l.enabled
}

// Allow reports whether the caller at clientIP may submit an order now.
// Errors from redis fail open; order intake must not depend on redis health.
func (l *OrderSubmitLimiter) Allow(ctx context.Context, clientIP string) (bool, time.Duration, error) {
	if !l.Enabled() {
		return true, 0, nil
	}

	res, err := l.bucket.Allow(ctx, fmt.Sprintf(keyOrderSubmit, strings.TrimSpace(clientIP)), l.rate, l.burst)
	if err != nil {
		return true, 0, err
	}
	return res.Allowed, res.RetryAfter, nil
}
