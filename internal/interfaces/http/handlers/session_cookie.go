package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookies writes and clears the browser session cookie. The
// cookie is HttpOnly and SameSite=Lax; Secure is flipped on from
// configuration for TLS deployments.
type SessionCookies struct {
	name   string
	secure bool
	maxAge int
}

// NewSessionCookies creates a new session cookie writer
func NewSessionCookies(name string, ttl time.Duration, secure bool) *SessionCookies {
	return &SessionCookies{
		name:   name,
		secure: secure,
		maxAge: int(ttl.Seconds()),
	}
}

// Name returns the cookie name used for the session token
func (s *SessionCookies) Name() string {
	return s.name
}

// Set attaches the session token to the response
func (s *SessionCookies) Set(c *gin.Context, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     s.name,
		Value:    token,
		Path:     "/",
		MaxAge:   s.maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie immediately
func (s *SessionCookies) Clear(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
