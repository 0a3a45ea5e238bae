package auth

import (
	"context"
	"errors"
	"net/http"

	dom "github.com/DennisRussell0/cereal-api/internal/domain"
	"github.com/DennisRussell0/cereal-api/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "session_id"

// UnauthorizedMessage is the uniform body of every 401 from a protected route.
const UnauthorizedMessage = "Unauthorized. Please log in."

const (
	contextKeyUser      = "current_user"
	contextKeySessionID = "session_id"
)

// UserLookup resolves the account behind a session. Unknown IDs yield service.ErrNotFound.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (dom.User, error)
}

// CurrentUser returns the user set by RequireSession.
func CurrentUser(c *gin.Context) (dom.User, bool) {
	v, ok := c.Get(contextKeyUser)
	if !ok {
		return dom.User{}, false
	}
	u, ok := v.(dom.User)
	return u, ok
}

// SessionIDFromContext returns the session token accepted by RequireSession. "" if not set.
func SessionIDFromContext(c *gin.Context) string {
	return c.GetString(contextKeySessionID)
}

// RequireSession returns a middleware that checks for a valid session cookie
// and sets the current user in context. If missing or invalid, responds with 401.
func RequireSession(sessions Store, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookieName)
		if err != nil || sessionID == "" {
			abortUnauthorized(c)
			return
		}
		userID, ok := sessions.GetUserID(c.Request.Context(), sessionID)
		if !ok {
			abortUnauthorized(c)
			return
		}
		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				abortUnauthorized(c)
				return
			}
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session lookup failed"})
			return
		}
		c.Set(contextKeyUser, user)
		c.Set(contextKeySessionID, sessionID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": UnauthorizedMessage})
}
