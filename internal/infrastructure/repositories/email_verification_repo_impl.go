package repositories

import (
	"context"
	"errors"
	"time"

	"folio.backend/internal/domain/entities"
	domainerrors "folio.backend/internal/domain/errors"
	"folio.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var timeNow = time.Now

// EmailVerificationRepository implements verification token store operations
type EmailVerificationRepository struct {
	db *gorm.DB
}

// NewEmailVerificationRepository creates a new email verification repository
func NewEmailVerificationRepository(db *gorm.DB) *EmailVerificationRepository {
	return &EmailVerificationRepository{db: db}
}

// Create persists a new verification token row
func (r *EmailVerificationRepository) Create(ctx context.Context, token *entities.VerificationToken) error {
	m := &models.EmailVerification{
		Token:     token.Token,
		UserID:    token.UserID,
		ExpiresAt: token.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	token.CreatedAt = m.CreatedAt
	return nil
}

// GetByToken gets a verification token row by its opaque value. Expired rows
// are returned as stored; the verification flow owns the expiry comparison.
func (r *EmailVerificationRepository) GetByToken(ctx context.Context, token string) (*entities.VerificationToken, error) {
	var m models.EmailVerification
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.VerificationToken{
		Token:     m.Token,
		UserID:    m.UserID,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}, nil
}

// Consume deletes the token row and marks the owning user verified in one
// transaction. The delete runs first: if anything goes wrong mid-way the
// worst outcome is a lost token, never a replayable one. A user who is
// already verified keeps the original timestamp.
func (r *EmailVerificationRepository) Consume(ctx context.Context, token string, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.EmailVerification{}, "token = ?", token)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// consumed concurrently between lookup and here
			return domainerrors.ErrNotFound
		}

		return tx.Model(&models.User{}).
			Where("id = ? AND email_verified_at IS NULL", userID).
			Update("email_verified_at", timeNow()).Error
	})
}
