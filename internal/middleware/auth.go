package middleware

import (
	"net/http"
	"strings"

	"github.com/brainspark/brainspark-backend/internal/response"
	"github.com/brainspark/brainspark-backend/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	// ContextKeyClaims is the Gin context key for JWT claims.
	ContextKeyClaims = "claims"
)

// RequireAuth validates a bearer token from the Authorization header.
func RequireAuth(accountService *service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		claims, err := accountService.ValidateToken(tokenStr)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// OptionalAuth attaches claims when a valid token is present but lets
// anonymous requests through. Quiz play does not require an account;
// result persistence to user history does.
func OptionalAuth(accountService *service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr := extractToken(c); tokenStr != "" {
			if claims, err := accountService.ValidateToken(tokenStr); err == nil {
				c.Set(ContextKeyClaims, claims)
			}
		}
		c.Next()
	}
}

// GetClaims retrieves the JWT claims from the Gin context, or nil.
func GetClaims(c *gin.Context) *service.Claims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

// UserID returns the authenticated user id, or "" for anonymous requests.
func UserID(c *gin.Context) string {
	if claims := GetClaims(c); claims != nil {
		return claims.UserID
	}
	return ""
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}

	// Fallback for WebSocket upgrades which cannot send headers.
	return c.Query("token")
}
