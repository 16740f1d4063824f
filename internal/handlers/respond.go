package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clockwork-hr/attendance_app/internal/apperrors"
	"github.com/clockwork-hr/attendance_app/internal/core/domain"
	"github.com/clockwork-hr/attendance_app/internal/middleware"
)

// ErrorResponse is the generic error body returned by all handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps a service error onto an HTTP status. Validation and
// sequencing problems are the caller's fault (400), state collisions are
// conflicts (409), anything unmapped is a 500 logged with full context.
func respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	msg := fallback

	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidKind),
		errors.Is(err, apperrors.ErrDuplicateKind),
		errors.Is(err, apperrors.ErrMissingEntry),
		errors.Is(err, apperrors.ErrNoPriorEntry),
		errors.Is(err, apperrors.ErrAbsenceBlock):
		status = http.StatusBadRequest
		msg = err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
		msg = "Unauthorized"
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
		msg = "Forbidden"
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
		msg = err.Error()
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrOverlap),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrAlreadyResolved),
		errors.Is(err, apperrors.ErrInsufficientBalance),
		errors.Is(err, apperrors.ErrInvalidAdjustment),
		errors.Is(err, apperrors.ErrWouldGoNegative):
		status = http.StatusConflict
		msg = err.Error()
	}

	if status == http.StatusInternalServerError {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error(fallback, slog.String("error", err.Error()))
	}
	c.JSON(status, ErrorResponse{Error: msg})
}

// requirePrincipal fetches the authenticated principal or responds 401.
func requirePrincipal(c *gin.Context) (domain.Principal, bool) {
	p, found := middleware.GetPrincipalFromContext(c)
	if !found {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Principal not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return domain.Principal{}, false
	}
	return p, true
}
