// File: questly/middleware/getClientIP.go
package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// getClientIP resolves the address the rate limiter buckets on. School
// tablets usually reach us through a proxy, so the forwarding headers take
// precedence over the socket address; a classroom behind one NAT shares a
// bucket, which is the behavior we want for burst protection.
func getClientIP(c *gin.Context) string {
	// X-Forwarded-For lists every hop; the leftmost entry is the client.
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	if xri := c.GetHeader("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// RemoteAddr carries the port; the bucket key must not.
	addr := c.Request.RemoteAddr
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
