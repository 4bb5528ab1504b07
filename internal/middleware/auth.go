package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/flightarcs-backend-go/internal/service"
	"github.com/jengzang/flightarcs-backend-go/pkg/response"
)

// ContextUserID is the gin context key holding the authenticated user ID
const ContextUserID = "userID"

// Auth middleware requires a valid "Authorization: Bearer <token>" header
func Auth(secret string) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			response.Error(c, http.StatusUnauthorized, "Missing bearer token", nil)
			return
		}

		userID, err := service.ParseToken(key, strings.TrimSpace(token))
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid token", err)
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// UserID returns the authenticated user ID set by Auth
func UserID(c *gin.Context) int64 {
	return c.GetInt64(ContextUserID)
}
