package entities

import (
	"time"

	"github.com/google/uuid"
)

// Session is a server-side login record. Token is the opaque bearer
// credential carried by the sid cookie; it has no decodable structure.
type Session struct {
	Token     string    `json:"-"`
	UserID    uuid.UUID `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// Live reports whether the session is still valid at the given instant.
func (s *Session) Live(now time.Time) bool {
	return s.ExpiresAt.After(now)
}
