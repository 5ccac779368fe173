package middleware

import (
	"net/http"
	"strings"

	"kanbanify/internal/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const ContextUserID = "user_id"

type TokenParser interface {
	UserIDFromToken(token string) (string, error)
}

// AuthMiddleware resolves the caller's user scope from a bearer token or the
// token query parameter. Without a token the request runs in the global scope
// unless required is set.
func AuthMiddleware(parser TokenParser, required bool, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "authentication required",
					"code":  apperr.CodeAuth,
				})
				return
			}
			c.Set(ContextUserID, "")
			c.Next()
			return
		}

		userID, err := parser.UserIDFromToken(token)
		if err != nil {
			logger.Debug("Rejected token", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
				"code":  apperr.CodeAuth,
			})
			return
		}
		c.Set(ContextUserID, userID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return c.Query("token")
}

// UserID returns the scope set by AuthMiddleware, or "" for the global scope.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
