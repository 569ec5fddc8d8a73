package middleware

import (
	"context"
	"errors"
	"net/http"

	domainerrors "folio.backend/internal/domain/errors"
	"folio.backend/internal/interfaces/http/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserIDKey is the context key for the authenticated user ID
const UserIDKey = "userId"

// SessionValidator resolves a session token to its user. Missing,
// unknown, and expired tokens all come back as ErrUnauthenticated.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (uuid.UUID, error)
}

// RequireSession gates API routes on a live session cookie. Requests
// without one are rejected with 401; the response never says whether
// the cookie was absent, unknown, or expired.
func RequireSession(sessions SessionValidator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := validate(c, sessions, cookieName)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// RequirePageSession gates browser-facing routes. Unauthenticated
// requests are sent to the login page instead of receiving a JSON 401.
func RequirePageSession(sessions SessionValidator, cookieName, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := validate(c, sessions, cookieName)
		if err != nil {
			if errors.Is(err, domainerrors.ErrUnauthenticated) {
				c.Redirect(http.StatusSeeOther, loginPath)
				c.Abort()
				return
			}
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

func validate(c *gin.Context, sessions SessionValidator, cookieName string) (uuid.UUID, error) {
	token, err := c.Cookie(cookieName)
	if err != nil {
		return uuid.Nil, domainerrors.ErrUnauthenticated
	}
	return sessions.Validate(c.Request.Context(), token)
}

// GetUserID gets the authenticated user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}
