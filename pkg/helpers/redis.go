package helpers

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds the Redis client backing the rate limiter. The
// boot-time ping is advisory only: the limiter fails open, so an
// unreachable Redis degrades to unlimited rather than refusing to serve.
func NewRedisClient(logger interface{ Warnf(string, ...interface{}) }, addr, password string, db int) *redis.Client {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil && logger != nil {
		logger.Warnf("redis unreachable at %s: %v (rate limiting disabled)", addr, err)
	}
	return rdb
}
