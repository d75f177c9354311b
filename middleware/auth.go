package middleware

import (
	"net/http"
	"strings"

	"homigo-backend/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID = "userId"
	ContextRole   = "role"
)

// AuthRequired parses the Bearer token and stores the caller's identity on
// the context. Requests without a valid token get a 401.
func AuthRequired(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token := ""
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: token missing"})
			return
		}

		claims, err := utils.ParseToken(secret, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: invalid token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// CurrentUserID returns the authenticated caller's id, or 0 when the request
// did not pass AuthRequired.
func CurrentUserID(c *gin.Context) uint {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0
	}
	id, ok := v.(uint)
	if !ok {
		return 0
	}
	return id
}
