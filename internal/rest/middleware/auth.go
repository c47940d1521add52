package middleware

import (
	"net/http"

	"github.com/flowblog/flowblog/domain"
	"github.com/gin-gonic/gin"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "flowblog_session"

// ContextUserKey is where the resolved user id lands in the gin context.
const ContextUserKey = "user_id"

// RequiresAuth resolves the session cookie and stores the user id in the
// request context. Requests without a live session are rejected with 401.
func RequiresAuth(sessions domain.SessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		userID, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		c.Set(ContextUserKey, userID)
		c.Next()
	}
}
