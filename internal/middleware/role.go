package middleware

import (
	"net/http"

	"authservice/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireRole creates a Gin middleware that only lets requests through when
// the authenticated identity holds one of the permitted roles. A request with
// no identity at all gets 401; an identity with a role outside the set
// (including an unrecognized role) gets 403.
func RequireRole(logger *zap.Logger, permitted ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(CtxRole)
		if !exists {
			logger.Warn("Role check with no authenticated identity", zap.String("path", c.FullPath()))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		role, ok := v.(models.Role)
		if !ok || !role.In(permitted...) {
			logger.Warn("Role not permitted",
				zap.String("role", string(role)),
				zap.String("path", c.FullPath()))
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	}
}
