package models

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	Token     string    `gorm:"type:varchar(128);primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time

	// Associations
	User User `gorm:"foreignKey:UserID"`
}
