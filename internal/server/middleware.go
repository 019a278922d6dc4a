package server

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

// AdminRequired guards operator endpoints with the shared ADMIN_TOKEN.
// With no token configured the admin routes are open.
func (s *Server) AdminRequired() gin.HandlerFunc {
	expected := strings.TrimSpace(s.cfg.AdminToken)
	return func(c *gin.Context) {
		if expected == "" {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		c.Next()
	}
}
