package repositories

import (
	"context"
	"testing"
	"time"

	"folio.backend/internal/domain/entities"
	domainerrors "folio.backend/internal/domain/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_CreateGetDelete(t *testing.T) {
	db := newTestDB(t)
	createSessionTable(t, db)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	s := &entities.Session{
		Token:     "tok-1",
		UserID:    uuid.New(),
		ExpiresAt: time.Now().Add(30 * 24 * time.Hour),
	}
	require.NoError(t, repo.Create(ctx, s))
	require.False(t, s.CreatedAt.IsZero())

	got, err := repo.GetByToken(ctx, "tok-1")
	require.NoError(t, err)
	require.Equal(t, s.UserID, got.UserID)
	require.True(t, got.Live(time.Now()))

	require.NoError(t, repo.Delete(ctx, "tok-1"))
	_, err = repo.GetByToken(ctx, "tok-1")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	// deleting again is not an error
	require.NoError(t, repo.Delete(ctx, "tok-1"))
}

func TestSessionRepository_ExpiredRowStillReadable(t *testing.T) {
	db := newTestDB(t)
	createSessionTable(t, db)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	s := &entities.Session{
		Token:     "tok-old",
		UserID:    uuid.New(),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, repo.Create(ctx, s))

	got, err := repo.GetByToken(ctx, "tok-old")
	require.NoError(t, err)
	require.False(t, got.Live(time.Now()))
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	db := newTestDB(t)
	createSessionTable(t, db)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, repo.Create(ctx, &entities.Session{Token: "live", UserID: uuid.New(), ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, &entities.Session{Token: "dead-1", UserID: uuid.New(), ExpiresAt: now.Add(-time.Hour)}))
	require.NoError(t, repo.Create(ctx, &entities.Session{Token: "dead-2", UserID: uuid.New(), ExpiresAt: now.Add(-time.Minute)}))

	swept, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 2, swept)

	_, err = repo.GetByToken(ctx, "live")
	require.NoError(t, err)
	_, err = repo.GetByToken(ctx, "dead-1")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
