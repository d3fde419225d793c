package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kubealloc/services"
)

// AuthMiddleware authenticates API requests with either the static
// X-API-Key header or a bearer token issued by the auth endpoint
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if key := c.GetHeader("X-API-Key"); key != "" {
			if err := services.VerifyAPIKey(key); err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{
					"status":  "error",
					"message": err.Error(),
				})
				c.Abort()
				return
			}
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "credentials are required",
			})
			c.Abort()
			return
		}

		claims, err := services.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "invalid token",
			})
			c.Abort()
			return
		}

		c.Set("client", claims.Client)
		c.Next()
	}
}
