package repositories

import (
	"context"
	"errors"
	"time"

	"folio.backend/internal/domain/entities"
	domainerrors "folio.backend/internal/domain/errors"
	"folio.backend/internal/infrastructure/models"
	"gorm.io/gorm"
)

// SessionRepository implements session store operations
type SessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create persists a new session row
func (r *SessionRepository) Create(ctx context.Context, session *entities.Session) error {
	m := &models.Session{
		Token:     session.Token,
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	session.CreatedAt = m.CreatedAt
	return nil
}

// GetByToken gets a session by its opaque token. Expiry is not checked here;
// the session manager owns that comparison.
func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*entities.Session, error) {
	var m models.Session
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.Session{
		Token:     m.Token,
		UserID:    m.UserID,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}, nil
}

// Delete removes a session row. Deleting an absent token is not an error.
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Delete(&models.Session{}, "token = ?", token).Error
}

// DeleteExpired removes sessions whose expiry is at or before the cutoff and
// reports how many rows were swept.
func (r *SessionRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Session{}, "expires_at <= ?", cutoff)
	return result.RowsAffected, result.Error
}
