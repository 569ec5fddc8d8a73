package entities

import (
	"time"

	"github.com/google/uuid"
)

// VerificationToken is a single-use, time-limited credential proving
// control of an email address. It is destroyed the moment it is consumed.
type VerificationToken struct {
	Token     string
	UserID    uuid.UUID
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is past its lifetime at the given instant.
func (t *VerificationToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
