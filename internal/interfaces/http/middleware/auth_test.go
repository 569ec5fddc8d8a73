package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "folio.backend/internal/domain/errors"
	"folio.backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubValidator struct {
	userID uuid.UUID
	err    error
	tokens []string
}

func (s *stubValidator) Validate(_ context.Context, token string) (uuid.UUID, error) {
	s.tokens = append(s.tokens, token)
	if s.err != nil {
		return uuid.Nil, s.err
	}
	return s.userID, nil
}

func newGatedRouter(gate gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", gate, func(c *gin.Context) {
		userID, ok := middleware.GetUserID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": userID.String()})
	})
	return r
}

func TestRequireSession_MissingCookie(t *testing.T) {
	validator := &stubValidator{}
	r := newGatedRouter(middleware.RequireSession(validator, "sid"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), domainerrors.CodeUnauthenticated)
	assert.Empty(t, validator.tokens)
}

func TestRequireSession_RejectedToken(t *testing.T) {
	validator := &stubValidator{err: domainerrors.ErrUnauthenticated}
	r := newGatedRouter(middleware.RequireSession(validator, "sid"))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "revoked-or-expired"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, []string{"revoked-or-expired"}, validator.tokens)
}

func TestRequireSession_StoreFailureIs500(t *testing.T) {
	validator := &stubValidator{err: errors.New("connection refused")}
	r := newGatedRouter(middleware.RequireSession(validator, "sid"))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "tok"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestRequireSession_Success(t *testing.T) {
	userID := uuid.New()
	validator := &stubValidator{userID: userID}
	r := newGatedRouter(middleware.RequireSession(validator, "sid"))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "live-token"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
}

func TestRequirePageSession_RedirectsToLogin(t *testing.T) {
	validator := &stubValidator{err: domainerrors.ErrUnauthenticated}
	r := newGatedRouter(middleware.RequirePageSession(validator, "sid", "/auth/login"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))
}

func TestRequirePageSession_Success(t *testing.T) {
	validator := &stubValidator{userID: uuid.New()}
	r := newGatedRouter(middleware.RequirePageSession(validator, "sid", "/auth/login"))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "live-token"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetUserID_Unset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := middleware.GetUserID(c)
	assert.False(t, ok)
}
