package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/exp/slog"

	"github.com/ArowuTest/nebula-luck-backend/internal/models"
)

// ClaimsKey is the gin context key of the verified admin claims
const ClaimsKey = "adminClaims"

// TokenValidator verifies admin tokens
type TokenValidator interface {
	ValidateToken(tokenString string) (*models.AdminClaims, error)
}

// JWTAuthMiddleware rejects requests without a valid admin bearer token
func JWTAuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		const BearerSchema = "Bearer "
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}
		if !strings.HasPrefix(authHeader, BearerSchema) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must start with Bearer "})
			return
		}

		claims, err := validator.ValidateToken(strings.TrimSpace(authHeader[len(BearerSchema):]))
		if err != nil {
			slog.Warn("Token validation failed", "path", c.FullPath(), "error", err)
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}
