package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/tourbook/tourbook-api/pkg/response"
)

// KeyFunc derives the rate-limit bucket for a request.
type KeyFunc func(c *gin.Context) string

// AllowFunc reports whether a request bypasses the limiter entirely.
type AllowFunc func(c *gin.Context) bool

// KeyByIP buckets requests by client address.
func KeyByIP() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:ip:" + ClientIP(c)
	}
}

// fixedWindowScript increments the bucket and returns the count together
// with the remaining window, setting the expiry only on the first hit.
// One round trip keeps the count and the reset header consistent.
var fixedWindowScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {n, ttl}
`)

// RateLimit enforces a fixed-window request budget per key, backed by
// Redis. A Redis failure fails open so the API keeps serving. Preflight
// requests and allowlisted callers are never counted.
func RateLimit(rdb *redis.Client, max int, window time.Duration, key KeyFunc, allow AllowFunc) gin.HandlerFunc {
	if rdb == nil || max <= 0 || window <= 0 || key == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (allow != nil && allow(c)) {
			c.Next()
			return
		}

		res, err := fixedWindowScript.Run(c.Request.Context(), rdb,
			[]string{key(c)}, window.Milliseconds()).Int64Slice()
		if err != nil || len(res) != 2 {
			c.Next()
			return
		}
		count, ttlMs := int(res[0]), res[1]

		resetSec := 0
		if ttlMs > 0 {
			resetSec = int((time.Duration(ttlMs) * time.Millisecond).Round(time.Second).Seconds())
		}
		remaining := max - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))

		if count > max {
			if resetSec > 0 {
				c.Header("Retry-After", strconv.Itoa(resetSec))
			}
			response.AbortError(c, http.StatusTooManyRequests, "Too many requests, please try again later", nil)
			return
		}
		c.Next()
	}
}
