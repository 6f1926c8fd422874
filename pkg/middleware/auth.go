// Package middleware contains the gin middleware shared by all routes.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/turfhub/service-turf/pkg/auth"
	"github.com/turfhub/service-turf/pkg/response"
)

const claimsKey = "auth.claims"

// AuthMiddleware rejects requests without a valid bearer token and stores the
// verified claims on the context.
func AuthMiddleware(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Unauthorized(c, "invalid authorization header")
			return
		}

		claims, err := jwtManager.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRole allows the request through only when the caller holds one of roles.
// It must run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			response.Unauthorized(c, "unauthorized")
			return
		}
		for _, role := range roles {
			if claims.HasRole(role) {
				c.Next()
				return
			}
		}
		response.Forbidden(c, "insufficient permissions")
	}
}

// GetClaims returns the verified claims stored by AuthMiddleware.
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

// GetUserID returns the authenticated user's id.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	claims, ok := GetClaims(c)
	if !ok {
		return uuid.Nil, false
	}
	return claims.UserID, true
}

// IsSelfOrAdmin reports whether the caller is the given user or holds ADMIN.
func IsSelfOrAdmin(c *gin.Context, userID uuid.UUID) bool {
	claims, ok := GetClaims(c)
	if !ok {
		return false
	}
	return claims.UserID == userID || claims.HasRole(auth.RoleAdmin)
}
