package repositories

import (
	"context"

	"folio.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// VerificationTokenRepository defines verification token store operations.
// Consume deletes the token row and marks the owning user verified as one
// atomic operation; the token must never survive a successful consume.
type VerificationTokenRepository interface {
	Create(ctx context.Context, token *entities.VerificationToken) error
	GetByToken(ctx context.Context, token string) (*entities.VerificationToken, error)
	Consume(ctx context.Context, token string, userID uuid.UUID) error
}
