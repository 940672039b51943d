package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/MateusMunaro/financial-manager/internal/errors"
	"github.com/MateusMunaro/financial-manager/internal/logger"
)

// Throttler decides whether a request repeats too quickly.
type Throttler interface {
	ShouldBlock(userID, endpoint string, params map[string][]string) bool
}

// RateLimit rejects a request with 429 when the same user sends the same
// query to endpoint within the throttler's interval. It must run after
// AuthMiddleware and before the handler touches the store.
func RateLimit(t Throttler, endpoint string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(UserIDKey)
		if t.ShouldBlock(userID, endpoint, c.Request.URL.Query()) {
			logger.Get().Debugw("request throttled",
				"user_id", userID,
				"endpoint", endpoint,
			)
			abortWith(c, apperrors.ErrRateLimited)
			return
		}
		c.Next()
	}
}
