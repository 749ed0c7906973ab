package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"showreel/internal/auth"
)

// RequireAuthorized guards mutation routes behind the authorizer's boolean
// check
func RequireAuthorized(authorizer auth.Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authorizer.Authorized(c.Request) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Missing or invalid credentials",
			})
			return
		}
		c.Next()
	}
}
