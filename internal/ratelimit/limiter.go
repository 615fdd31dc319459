package ratelimit

import (
	"context"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/tedxmekong/stagehub/internal/config"
)

const (
	ScopeCheckout = "checkout"
	ScopeDiscount = "discount"
	ScopeLogin    = "login"

	keyRequest = "rl:%s:%s"
)

type scopeLimit struct {
	rate  float64
	burst int
}

// RequestLimiter throttles abuse-prone endpoints per caller. A nil
// limiter (Redis not configured) allows everything.
type RequestLimiter struct {
	bucket *TokenBucket
	scopes map[string]scopeLimit
}

func NewRequestLimiter(cfg config.Config) (*RequestLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}

	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(limitCfg.RedisPassword),
		DB:       limitCfg.RedisDB,
	})

	return &RequestLimiter{
		bucket: NewTokenBucket(client),
		scopes: map[string]scopeLimit{
			ScopeCheckout: {rate: limitCfg.CheckoutRate, burst: limitCfg.CheckoutBurst},
			ScopeDiscount: {rate: limitCfg.DiscountRate, burst: limitCfg.DiscountBurst},
			ScopeLogin:    {rate: limitCfg.LoginRate, burst: limitCfg.LoginBurst},
		},
	}, nil
}

func (l *RequestLimiter) Enabled() bool {
	return l != nil && l.bucket != nil
}

// Allow consumes one token for the caller in the given scope. Unknown
// scopes are never throttled.
func (l *RequestLimiter) Allow(ctx context.Context, scope, caller string) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}
	limit, ok := l.scopes[scope]
	if !ok || limit.rate <= 0 || limit.burst <= 0 {
		return true, nil
	}
	key := fmt.Sprintf(keyRequest, scope, strings.TrimSpace(caller))
	return l.bucket.Allow(ctx, key, limit.rate, limit.burst)
}
