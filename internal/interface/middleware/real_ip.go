package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

const clientIPKey = "client_ip"

// RealIP resolves the originating client address for requests arriving
// through a reverse proxy and stores it in the Gin context. The left-most
// X-Forwarded-For entry wins, then X-Real-IP, then Gin's own resolution.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
			first := strings.TrimSpace(strings.SplitN(xff, ",", 2)[0])
			if ip := net.ParseIP(first); ip != nil {
				c.Set(clientIPKey, ip.String())
				c.Next()
				return
			}
		}
		if xri := strings.TrimSpace(c.GetHeader("X-Real-IP")); xri != "" {
			if ip := net.ParseIP(xri); ip != nil {
				c.Set(clientIPKey, ip.String())
				c.Next()
				return
			}
		}
		c.Set(clientIPKey, c.ClientIP())
		c.Next()
	}
}

// ClientIP returns the address resolved by RealIP, falling back to Gin's
// resolution when the middleware is not installed.
func ClientIP(c *gin.Context) string {
	if ip := c.GetString(clientIPKey); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}
