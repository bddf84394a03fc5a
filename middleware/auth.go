package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/datapad/config"
)

const UserNameKey = "user_name"

// Auth resolves the caller from a Bearer token. Requests without a token
// pass through anonymously; a present but invalid token is rejected. With
// no secret configured, tokens are ignored entirely.
func Auth(sec config.SecurityConfig) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if sec.JWTSecret == "" {
			ctx.Next()
			return
		}
		header := ctx.GetHeader("Authorization")
		if header == "" {
			ctx.Next()
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "malformed authorization header"})
			return
		}
		claims, err := ParseToken(strings.TrimPrefix(header, "Bearer "), sec.JWTSecret)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}
		ctx.Set(UserNameKey, claims.UserName)
		ctx.Next()
	}
}

// GetUserName returns the authenticated user name, or "".
func GetUserName(c *gin.Context) string {
	if v, exists := c.Get(UserNameKey); exists {
		return v.(string)
	}
	return ""
}
