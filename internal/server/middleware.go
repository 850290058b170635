package server

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
)

// requireAdmin gates mutating catalog and order-management routes behind a
// shared token. An empty configured token disables the gate for local dev.
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := s.cfg.AdminToken
		if token == "" {
			c.Next()
			return
		}

		presented := strings.TrimSpace(c.GetHeader("X-Admin-Token"))
		if presented == "" {
			auth := strings.TrimSpace(c.GetHeader("Authorization"))
			if strings.HasPrefix(auth, "Bearer ") {
				presented = strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			}
		}

		if presented == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		c.Next()
	}
}
