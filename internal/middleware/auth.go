package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/asafarviv55/attendance-system-backend/internal/security"
)

const claimsKey = "auth_claims"

// Auth extracts the bearer token and verifies it. Claims are trusted as-is;
// the role table is not re-queried, so a role change only shows up in tokens
// issued after the user's next sign-in.
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := security.ParseToken(tokenStr, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		c.Set(claimsKey, *claims)

		c.Next()
	}
}

// ClaimsFrom returns the verified claims Auth attached to the request.
func ClaimsFrom(c *gin.Context) (security.Claims, bool) {
	val, exists := c.Get(claimsKey)
	if !exists {
		return security.Claims{}, false
	}
	claims, ok := val.(security.Claims)
	return claims, ok
}
