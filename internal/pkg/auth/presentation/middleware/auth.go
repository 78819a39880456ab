package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	cacheport "github.com/nahid515023/MyTutor-App-sub002/internal/infrastructure/cache/port"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/application/usecase"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/token"
)

const claimsKey = "auth.claims"

// RequireAuth verifies the bearer token (or, for websocket upgrades, the
// token query parameter), rejects revoked tokens and stashes the claims in
// the request context.
func RequireAuth(tokens token.Issuer, cache cacheport.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		_, err = cache.Get(c.Request.Context(), usecase.RevokedKey(claims.ID))
		if err == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token has been revoked"})
			return
		}
		if !errors.Is(err, cacheport.ErrMiss) {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "session check unavailable"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRole gates a route to one role. Must run after RequireAuth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFrom(c)
		if claims == nil || claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}

// ClaimsFrom returns the verified claims set by RequireAuth, or nil.
func ClaimsFrom(c *gin.Context) *token.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*token.Claims)
	return claims
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	// Browsers cannot set headers on websocket upgrades.
	return c.Query("token")
}
