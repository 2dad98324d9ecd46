package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gamewise/api/internal/config"
	"gamewise/api/internal/security"
)

const claimsKey = "session_claims"

// Auth gates bearer-token endpoints. Tokens are stateless: a valid signature
// inside its lifetime is sufficient, with no store lookup. A missing header
// yields 401; a bad or expired token yields 403.
func Auth(cfg *config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := security.ParseSessionToken(tokenStr, cfg.Security.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(claimsKey, *claims)

		c.Next()
	}
}

// SessionClaims returns the claims stored by Auth, or false when the request
// did not pass through it.
func SessionClaims(c *gin.Context) (security.SessionClaims, bool) {
	val, exists := c.Get(claimsKey)
	if !exists {
		return security.SessionClaims{}, false
	}
	claims, ok := val.(security.SessionClaims)
	return claims, ok
}
