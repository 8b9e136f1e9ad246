package middleware

import (
	"net/http"
	"strings"

	"bitwise74/account-api/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewJWTMiddleware verifies the bearer credential of a request and puts
// the identity claims into the context as userID, email and username.
// The token is taken from the Authorization header or, failing that,
// the auth_token cookie
func NewJWTMiddleware(tm *security.TokenMaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		tokenStr := extractToken(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Not authenticated",
				"requestID": requestID,
			})
			return
		}

		claims, err := tm.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Authorization token invalid",
				"requestID": requestID,
			})

			zap.L().Debug("Failed to verify token", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("username", claims.Username)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth != "" {
		return strings.TrimPrefix(auth, "Bearer ")
	}

	cookie, err := c.Cookie("auth_token")
	if err != nil {
		return ""
	}

	return cookie
}
