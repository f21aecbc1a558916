// Package maintenance implements the catalog's read-only mode, used while
// the database is being backed up or migrated.
package maintenance

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextKeyReadOnly exposes the mode to templates.
const ContextKeyReadOnly = "read_only"

const blockedMessage = "The catalog is in read-only mode for maintenance"

// Middleware blocks write operations while read-only mode is on.
// GET, HEAD and OPTIONS are always allowed.
type Middleware struct {
	enabled bool
}

func NewMiddleware(enabled bool) *Middleware {
	return &Middleware{enabled: enabled}
}

// IsEnabled returns whether read-only mode is active.
func (m *Middleware) IsEnabled() bool {
	return m.enabled
}

// Handler returns a Gin middleware that blocks write operations.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyReadOnly, m.enabled)

		if !m.enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		m.respondBlocked(c)
	}
}

// respondBlocked sends a 503 so clients and proxies know to retry later.
func (m *Middleware) respondBlocked(c *gin.Context) {
	c.Header("Retry-After", "300")

	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
			"error":     blockedMessage,
			"read_only": true,
		})
		return
	}

	c.String(http.StatusServiceUnavailable, blockedMessage)
	c.Abort()
}
