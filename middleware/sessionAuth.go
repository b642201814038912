package middleware

import (
	"net/http"
	"strings"

	"rescuehub/utils"

	"github.com/gin-gonic/gin"
)

// SessionAuthMiddleware validates the caller token minted at session start
// and checks it is scoped to the session being addressed.
func SessionAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
					"code":  500,
				})
			}
		}()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, role, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil || subject == "" || role != "caller" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		if sessionID := c.Param("sessionID"); sessionID != "" && sessionID != subject {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Token not valid for this session",
				"code":  0,
			})
			return
		}

		c.Set("sessionID", subject)
		c.Next()
	}
}
