package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/okravchuk/airport-service/internal/auth"
)

const claimsKey = "claims"

// AuthMiddleware parses a Bearer token when one is present and stores the
// verified claims on the context. Requests without a token pass through
// anonymously; Authorize decides whether that is enough for the endpoint.
func AuthMiddleware(service auth.AuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := service.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// Authorize enforces the policy table for one (resource, action) pair.
func Authorize(resource string, action Action) gin.HandlerFunc {
	required := RequiredCapability(resource, action)
	return func(c *gin.Context) {
		if required == Public {
			c.Next()
			return
		}

		claims, ok := claimsFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if required == Admin && !claims.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

func claimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
