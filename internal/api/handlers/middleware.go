package routes

import (
	"net/http"
	"strings"

	"packtrack/internal/auth"
	"packtrack/internal/model"

	"github.com/gin-gonic/gin"
)

// claimsKey is where the auth middleware stores the validated claims
const claimsKey = "auth_claims"

// AuthRequired validates the bearer token and stores its claims in the
// request context
func AuthRequired(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRole rejects callers whose role is not in the allowed set.
// Must run after AuthRequired.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := CurrentClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
	}
}

// CurrentClaims returns the validated claims for this request, or nil
func CurrentClaims(c *gin.Context) *auth.Claims {
	value, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// canReadPackage reports whether the caller may see the given package
func canReadPackage(claims *auth.Claims, pkg *model.Package) bool {
	if claims == nil {
		return false
	}
	return claims.Role.CanReadAnyPackage() || pkg.UserID == claims.UserID
}
