package middleware

import (
	"net/http"                      // HTTP status codes
	"waste_tracker/internal/domain" // Roles and permissions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// RequirePermission lets the request through only when the role in the
// token claims grants p. It must run after JWTAuthMiddleware.
func RequirePermission(p domain.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c) // Claims set by JWTAuthMiddleware
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing token"})
			return
		}
		role := claims.Role()
		if !role.Can(p) {
			logrus.WithFields(logrus.Fields{
				"user_id":    claims.UserID,
				"role":       role,
				"permission": p.String(),
				"path":       c.FullPath(),
			}).Warn("Permission denied")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
			return
		}
		c.Next()
	}
}
