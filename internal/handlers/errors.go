package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/contas_app/internal/apperrors"
	"github.com/SscSPs/contas_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// statusForError maps a service error to its HTTP status.
func statusForError(err error) int {
	if kind, ok := apperrors.KindOf(err); ok {
		switch kind {
		case apperrors.KindValidation:
			return http.StatusBadRequest
		case apperrors.KindState:
			return http.StatusConflict
		case apperrors.KindNotFound:
			return http.StatusNotFound
		case apperrors.KindTransient:
			return http.StatusServiceUnavailable
		}
	}

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrTransient):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError writes the error body {"error", "code"}. Internal failures are
// logged and replaced by fallbackMsg so that nothing leaks to the client.
func respondError(c *gin.Context, err error, fallbackMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusForError(err)
	code := apperrors.CodeOf(err)

	if status == http.StatusInternalServerError {
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallbackMsg, "code": code})
		return
	}

	logger.Warn(fallbackMsg, slog.String("error", err.Error()), slog.String("code", code))
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}

// respondBindError answers 400 for a request that failed binding. Amount tags
// report the same code the services use for invalid amounts.
func respondBindError(c *gin.Context, err error, what string) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind "+what, slog.String("error", err.Error()))

	code := "INVALID_REQUEST"
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "money" || fe.Tag() == "decimal2" {
				code = apperrors.ErrInvalidAmount.Code
				break
			}
		}
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + what + ": " + err.Error(), "code": code})
}

// ownerFromContext returns the authenticated owner, answering 401 when absent.
func ownerFromContext(c *gin.Context) (string, bool) {
	ownerID, ok := middleware.GetOwnerIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Owner ID not found in context")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "code": "UNAUTHORIZED"})
		return "", false
	}
	return ownerID, true
}
