package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// User represents an account owner
type User struct {
	ID              uuid.UUID   `json:"id"`
	Email           string      `json:"email"`
	DisplayName     null.String `json:"displayName,omitempty"`
	PasswordHash    string      `json:"-"`
	EmailVerifiedAt null.Time   `json:"emailVerifiedAt,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// Verified reports whether the user's email address has been confirmed.
func (u *User) Verified() bool {
	return u.EmailVerifiedAt.Valid
}

// SignupInput represents input for user registration
type SignupInput struct {
	Email       string `form:"email" json:"email" binding:"required,email"`
	Password    string `form:"password" json:"password" binding:"required,min=8"`
	DisplayName string `form:"display_name" json:"displayName" binding:"omitempty,max=100"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required"`
}

// Identity is the authenticated-user view returned by the identity endpoint.
type Identity struct {
	Email       string      `json:"email"`
	DisplayName null.String `json:"displayName,omitempty"`
}
