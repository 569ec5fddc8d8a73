package models

import (
	"time"

	"github.com/google/uuid"
)

type EmailVerification struct {
	Token     string    `gorm:"type:varchar(64);primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time

	// Associations
	User User `gorm:"foreignKey:UserID"`
}
