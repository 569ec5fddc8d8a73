package response

import (
	"errors"
	"net/http"

	domainerrors "folio.backend/internal/domain/errors"
	"folio.backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error maps an error to its HTTP representation. Domain sentinels get
// their fixed status and code; anything else is logged and sent as a
// generic 500 so internal detail never reaches the client.
func Error(c *gin.Context, err error) {
	appErr := toAppError(err)
	if appErr.Status >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "request failed", zap.Error(err))
	}

	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

func toAppError(err error) *domainerrors.AppError {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, domainerrors.ErrEmailTaken):
		return domainerrors.NewAppError(http.StatusConflict, domainerrors.CodeEmailTaken, "email already registered", err)
	case errors.Is(err, domainerrors.ErrInvalidCredentials):
		return domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeInvalidCredentials, "invalid email or password", err)
	case errors.Is(err, domainerrors.ErrInvalidOrExpiredToken):
		return domainerrors.NewAppError(http.StatusBadRequest, domainerrors.CodeInvalidToken, "invalid or expired verification token", err)
	case errors.Is(err, domainerrors.ErrUnauthenticated):
		return domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeUnauthenticated, "authentication required", err)
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NewAppError(http.StatusNotFound, domainerrors.CodeNotFound, "resource not found", err)
	case errors.Is(err, domainerrors.ErrInvalidInput):
		return domainerrors.NewAppError(http.StatusBadRequest, domainerrors.CodeInvalidInput, "invalid input", err)
	default:
		return domainerrors.InternalError(err)
	}
}
