package usecases

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"folio.backend/internal/domain/entities"
	domainerrors "folio.backend/internal/domain/errors"
	"folio.backend/internal/domain/repositories"
	"folio.backend/internal/infrastructure/mail"
	"folio.backend/pkg/crypto"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// AuthUsecase handles registration, login, and email verification
type AuthUsecase struct {
	userRepo  repositories.UserRepository
	verifRepo repositories.VerificationTokenRepository
	sessions  *SessionUsecase
	mailer    mail.Mailer
	baseURL   string
	verifTTL  time.Duration
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	verifRepo repositories.VerificationTokenRepository,
	sessions *SessionUsecase,
	mailer mail.Mailer,
	baseURL string,
	verifTTL time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:  userRepo,
		verifRepo: verifRepo,
		sessions:  sessions,
		mailer:    mailer,
		baseURL:   baseURL,
		verifTTL:  verifTTL,
	}
}

// Register creates a user, issues a verification token, dispatches the
// verification email, and opens the first session. A failed dispatch is
// fatal to the request: the user must never believe registration
// succeeded without a way to verify.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.SignupInput) (*entities.User, *entities.Session, error) {
	// best-effort pre-check; the store's unique index is the real enforcer
	if _, err := u.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, nil, domainerrors.ErrEmailTaken
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &entities.User{
		ID:           uuid.New(),
		Email:        input.Email,
		DisplayName:  null.NewString(input.DisplayName, input.DisplayName != ""),
		PasswordHash: passwordHash,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	token := &entities.VerificationToken{
		Token:     crypto.NewVerificationToken(),
		UserID:    user.ID,
		ExpiresAt: timeNow().Add(u.verifTTL),
	}
	if err := u.verifRepo.Create(ctx, token); err != nil {
		return nil, nil, err
	}

	if err := u.mailer.SendVerification(ctx, user.Email, u.VerifyURL(token.Token)); err != nil {
		return nil, nil, fmt.Errorf("verification email dispatch failed: %w", err)
	}

	session, err := u.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Login authenticates a user and opens a session. Unknown email and
// wrong password collapse into the same ErrInvalidCredentials.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.Session, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := crypto.CheckPassword(input.Password, user.PasswordHash)
	if err != nil {
		// corrupt stored hash is an internal error, not a login failure
		return nil, fmt.Errorf("stored credential unusable for user %s: %w", user.ID, err)
	}
	if !ok {
		return nil, domainerrors.ErrInvalidCredentials
	}

	return u.sessions.Create(ctx, user.ID)
}

// VerifyEmail consumes a verification token and marks the owner verified.
// Absent, expired, and already-consumed tokens are indistinguishable to
// the caller.
func (u *AuthUsecase) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return domainerrors.ErrInvalidOrExpiredToken
	}

	rec, err := u.verifRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.ErrInvalidOrExpiredToken
		}
		return err
	}
	if rec.Expired(timeNow()) {
		return domainerrors.ErrInvalidOrExpiredToken
	}

	if err := u.verifRepo.Consume(ctx, token, rec.UserID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.ErrInvalidOrExpiredToken
		}
		return err
	}
	return nil
}

// Identity returns the authenticated-user view for the identity endpoint
func (u *AuthUsecase) Identity(ctx context.Context, userID uuid.UUID) (*entities.Identity, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &entities.Identity{
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}, nil
}

// VerifyURL builds the time-bounded verification link pointing back at
// the verification entry point.
func (u *AuthUsecase) VerifyURL(token string) string {
	return fmt.Sprintf("%s/auth/verify?token=%s", strings.TrimRight(u.baseURL, "/"), url.QueryEscape(token))
}
