package handlers

import (
	"errors"
	"net/http"

	"folio.backend/internal/domain/entities"
	domainerrors "folio.backend/internal/domain/errors"
	"folio.backend/internal/interfaces/http/middleware"
	"folio.backend/internal/interfaces/http/response"
	"folio.backend/internal/usecases"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles the registration, login, verification, and
// session endpoints
type AuthHandler struct {
	authUsecase    *usecases.AuthUsecase
	sessionUsecase *usecases.SessionUsecase
	cookies        *SessionCookies
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase *usecases.AuthUsecase, sessionUsecase *usecases.SessionUsecase, cookies *SessionCookies) *AuthHandler {
	return &AuthHandler{
		authUsecase:    authUsecase,
		sessionUsecase: sessionUsecase,
		cookies:        cookies,
	}
}

// Signup handles user registration
// POST /auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var input entities.SignupInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	_, session, err := h.authUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.cookies.Set(c, session.Token)
	c.Redirect(http.StatusSeeOther, "/")
}

// Login handles user login
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	session, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.cookies.Set(c, session.Token)
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout revokes the current session and clears the cookie. It
// succeeds even without a live session.
// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(h.cookies.Name())
	if err == nil {
		if err := h.sessionUsecase.Revoke(c.Request.Context(), token); err != nil {
			response.Error(c, err)
			return
		}
	}

	h.cookies.Clear(c)
	c.Redirect(http.StatusSeeOther, "/auth/login")
}

// VerifyEmail consumes an emailed verification token
// GET /auth/verify?token=...
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	if err := h.authUsecase.VerifyEmail(c.Request.Context(), c.Query("token")); err != nil {
		response.Error(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/?verified=1")
}

// Session reports whether the request carries a live session. It is
// always 200 so frontends can poll it without tripping error handling.
// GET /auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	authenticated := false
	if token, err := c.Cookie(h.cookies.Name()); err == nil {
		if _, err := h.sessionUsecase.Validate(c.Request.Context(), token); err == nil {
			authenticated = true
		} else if !errors.Is(err, domainerrors.ErrUnauthenticated) {
			response.Error(c, err)
			return
		}
	}

	response.Success(c, http.StatusOK, gin.H{"authenticated": authenticated})
}

// Me returns the authenticated user's identity
// GET /api/v1/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.ErrUnauthenticated)
		return
	}

	identity, err := h.authUsecase.Identity(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, identity)
}
