package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter caps how often each user may call the AI endpoints, with a
// fixed window per user in redis. A nil limiter allows everything.
type RateLimiter struct {
	Client *redis.Client
	Limit  int
	Window time.Duration
}

func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{Client: client, Limit: limit, Window: window}
}

// Allow increments the user's counter and reports whether the call is within
// the limit. Redis failures fail open: an unavailable limiter must not take
// the AI features down with it.
func (rl *RateLimiter) Allow(ctx context.Context, userID, operation string) bool {
	if rl == nil || rl.Client == nil {
		return true
	}

	key := fmt.Sprintf("ratelimit:%s:%s", operation, userID)

	count, err := rl.Client.Incr(ctx, key).Result()
	if err != nil {
		return true
	}
	if count == 1 {
		rl.Client.Expire(ctx, key, rl.Window)
	}
	return count <= int64(rl.Limit)
}
