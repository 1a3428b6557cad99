package middleware

import (
	"net/http"
	"strings"

	"github.com/Yogesh-MG/Meditrackpro/pkg/metrics"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the middleware chain
const (
	ContextUserID       = "user_id"
	ContextIsSuperAdmin = "is_superadmin"
	ContextActor        = "actor"
)

// AuthMiddleware validates the bearer access token and stores the caller's
// identity in the gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.AuthAttemptsCounter.Inc()

		header := c.GetHeader("Authorization")
		if header == "" {
			metrics.AuthErrorsCounter.Inc()
			utils.ErrorResponse(c, http.StatusUnauthorized, "authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			metrics.AuthErrorsCounter.Inc()
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := utils.ValidateAccessToken(parts[1])
		if err != nil {
			metrics.AuthErrorsCounter.Inc()
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextIsSuperAdmin, claims.IsSuperAdmin)
		c.Next()
	}
}

// UserID reads the authenticated user id from the context.
func UserID(c *gin.Context) uint {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// IsSuperAdmin reads the superadmin flag from the context.
func IsSuperAdmin(c *gin.Context) bool {
	if v, ok := c.Get(ContextIsSuperAdmin); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}
