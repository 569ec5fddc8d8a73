package repositories

import (
	"context"
	"time"

	"folio.backend/internal/domain/entities"
)

// SessionRepository defines session store operations. Delete is idempotent:
// removing an absent token is not an error.
type SessionRepository interface {
	Create(ctx context.Context, session *entities.Session) error
	GetByToken(ctx context.Context, token string) (*entities.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
