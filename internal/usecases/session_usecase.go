package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"folio.backend/internal/domain/entities"
	domainerrors "folio.backend/internal/domain/errors"
	"folio.backend/internal/domain/repositories"
	"folio.backend/pkg/crypto"
	"folio.backend/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var timeNow = time.Now

// SessionCache is the optional encrypted read-through cache in front of
// the session store. Cache failures never fail a session operation; the
// relational store is the source of truth.
type SessionCache interface {
	Put(ctx context.Context, token, userID string, ttl time.Duration) error
	Get(ctx context.Context, token string) (string, error)
	Invalidate(ctx context.Context, token string) error
}

// SessionUsecase issues, validates, and revokes sessions
type SessionUsecase struct {
	sessionRepo repositories.SessionRepository
	cache       SessionCache // nil when the cache is disabled
	ttl         time.Duration
}

// NewSessionUsecase creates a new session usecase
func NewSessionUsecase(sessionRepo repositories.SessionRepository, cache SessionCache, ttl time.Duration) *SessionUsecase {
	return &SessionUsecase{
		sessionRepo: sessionRepo,
		cache:       cache,
		ttl:         ttl,
	}
}

// TTL returns the fixed session lifetime, used for the cookie Max-Age.
func (u *SessionUsecase) TTL() time.Duration {
	return u.ttl
}

// Create generates a fresh opaque token and persists a session expiring
// at now + TTL.
func (u *SessionUsecase) Create(ctx context.Context, userID uuid.UUID) (*entities.Session, error) {
	token, err := crypto.NewSessionToken()
	if err != nil {
		return nil, err
	}

	session := &entities.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: timeNow().Add(u.ttl),
	}
	if err := u.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	if u.cache != nil {
		if err := u.cache.Put(ctx, token, userID.String(), u.ttl); err != nil {
			logger.Warn(ctx, "session cache put failed", zap.Error(err))
		}
	}
	return session, nil
}

// Validate resolves a token to its owning user id. It returns
// ErrUnauthenticated for missing, unknown, and expired tokens alike;
// callers must not distinguish those cases in their responses.
func (u *SessionUsecase) Validate(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, domainerrors.ErrUnauthenticated
	}

	if u.cache != nil {
		if cached, err := u.cache.Get(ctx, token); err == nil {
			if id, err := uuid.Parse(cached); err == nil {
				return id, nil
			}
		}
	}

	session, err := u.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return uuid.Nil, domainerrors.ErrUnauthenticated
		}
		return uuid.Nil, err
	}

	now := timeNow()
	if !session.Live(now) {
		return uuid.Nil, domainerrors.ErrUnauthenticated
	}

	if u.cache != nil {
		// TTL capped at the remaining lifetime so the entry cannot
		// outlive the row it mirrors
		if err := u.cache.Put(ctx, token, session.UserID.String(), session.ExpiresAt.Sub(now)); err != nil {
			logger.Warn(ctx, "session cache put failed", zap.Error(err))
		}
	}
	return session.UserID, nil
}

// Revoke drops the cache entry and deletes the session row. Revoking a
// nonexistent or already-revoked token is not an error. The cache entry
// goes first, and a failed invalidation fails the whole revocation:
// Validate trusts cache hits, so a surviving entry would keep the token
// authenticating until its TTL lapsed.
func (u *SessionUsecase) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if u.cache != nil {
		if err := u.cache.Invalidate(ctx, token); err != nil {
			return fmt.Errorf("session cache invalidate failed: %w", err)
		}
	}

	return u.sessionRepo.Delete(ctx, token)
}
