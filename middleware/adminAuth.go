package middleware

import (
	"net/http"
	"strings"

	"outreach/utils"

	"github.com/gin-gonic/gin"
)

const RoleAdmin = "admin"

// JWTAuthAdminMiddleware accepts HS256 tokens issued by the admin login.
func JWTAuthAdminMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, role, err := utils.ExtractClaims(secret, tokenString)
		if err != nil || role != RoleAdmin {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}

		c.Set("adminID", subject)
		c.Set("isAdmin", true)
		c.Next()
	}
}
