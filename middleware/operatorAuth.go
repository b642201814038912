package middleware

import (
	"net/http"
	"strings"

	"rescuehub/config"

	"github.com/gin-gonic/gin"
)

// OperatorAuthMiddleware guards the dispatch-console endpoints with the
// shared operator secret.
func OperatorAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		if tokenString == "" || tokenString != config.AppConfig.OperatorToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized operator access"})
			return
		}

		c.Set("isOperator", true)
		c.Next()
	}
}
