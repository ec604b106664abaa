package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cineview/backend/pkg/helpers"
	"github.com/cineview/backend/pkg/response"
)

const CtxUserIDKey = "userID"

// JWTAuth reads the bearer token from the Authorization header, validates
// it, and injects the user ID into context. All failures produce the same
// 401; the reason is not distinguishable from outside.
func JWTAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.AbortMessage(c, http.StatusUnauthorized, "missing token")
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			response.AbortMessage(c, http.StatusUnauthorized, "invalid token")
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
