package repositories

import (
	"context"

	"folio.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// UserRepository defines credential store operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
}
