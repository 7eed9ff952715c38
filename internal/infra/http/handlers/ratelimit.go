package handlers

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window per-IP limiter on Redis, so the limit holds
// across replicas. Redis being down fails open: losing rate limiting is
// cheaper than dropping applications.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
}

func NewRateLimiter(rdb *redis.Client, limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{
		rdb:    rdb,
		limit:  limit,
		window: window,
	}
}

func (rl *RateLimiter) Allow(ctx context.Context, ip string) bool {
	key := "ratelimit:leads:" + ip

	count, err := rl.rdb.Incr(ctx, key).Result()
	if err != nil {
		log.Printf("⚠️ RateLimit: redis unavailable, allowing request: %v", err)
		return true
	}

	if count == 1 {
		rl.rdb.Expire(ctx, key, rl.window)
	}

	return count <= rl.limit
}
