package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"todoapp/internal/transport/http/response"
)

const ContextUserIDKey = "user_id"

// IdentityResolver maps a session cookie value to a user id.
type IdentityResolver interface {
	Get(ctx context.Context, token string) (uint, bool, error)
}

// RequireLogin resolves the session cookie to a user id and stores it
// on the request context. Requests without a live session never reach
// the handler.
func RequireLogin(cookieName string, resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			response.Error(c, 401, response.CodeUnauthorized, "login required")
			c.Abort()
			return
		}

		userID, ok, err := resolver.Get(c.Request.Context(), token)
		if err != nil {
			response.Error(c, 500, response.CodeInternalServer, "resolve session failed")
			c.Abort()
			return
		}
		if !ok {
			response.Error(c, 401, response.CodeUnauthorized, "session expired, please log in again")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}
