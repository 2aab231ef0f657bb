package middleware

import (
	"net/netip"

	"github.com/gin-gonic/gin"
)

// AllowPrivateIP bypasses the rate limit for loopback and RFC 1918
// addresses, so health probes and in-cluster calls never count against
// the public budget.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		addr, err := netip.ParseAddr(ClientIP(c))
		if err != nil {
			return false
		}
		return addr.IsLoopback() || addr.IsPrivate()
	}
}
