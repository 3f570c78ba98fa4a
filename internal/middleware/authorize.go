package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asafarviv55/attendance-system-backend/internal/models"
)

// RequireRoles gates a route on the role name carried in the token claims.
// Admin-only routes list just RoleAdmin; manager routes list RoleManager and
// RoleAdmin so admins pass both gates.
func RequireRoles(roles ...models.RoleName) gin.HandlerFunc {
	roleSet := make(map[models.RoleName]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
			return
		}

		if _, ok := roleSet[models.RoleName(claims.RoleName)]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Next()
	}
}
