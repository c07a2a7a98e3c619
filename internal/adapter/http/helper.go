package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"simlok-backend/internal/domain/notification"
	"simlok-backend/internal/domain/session"
	"simlok-backend/internal/domain/submission"
	"simlok-backend/internal/domain/user"
	"simlok-backend/internal/pdf"
	"simlok-backend/internal/qr"
	"simlok-backend/internal/usecase/scan"
	useruc "simlok-backend/internal/usecase/user"
)

// domainError maps usecase/domain sentinels onto HTTP responses. Unknown
// errors surface as 500 without leaking internals.
func domainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, user.ErrWrongPassword),
		errors.Is(err, user.ErrNotVerified),
		errors.Is(err, session.ErrNotFound),
		errors.Is(err, session.ErrExpired):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})

	case errors.Is(err, submission.ErrNotOwner),
		errors.Is(err, useruc.ErrSelfDemotion):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})

	case errors.Is(err, user.ErrNotFound),
		errors.Is(err, submission.ErrNotFound),
		errors.Is(err, notification.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, user.ErrEmailTaken),
		errors.Is(err, submission.ErrLocked),
		errors.Is(err, submission.ErrNotReviewed),
		errors.Is(err, submission.ErrAlreadyDecided),
		errors.Is(err, submission.ErrReviewClosed),
		errors.Is(err, submission.ErrDeleteApproved),
		errors.Is(err, pdf.ErrNotApproved):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})

	case errors.Is(err, qr.ErrInvalidToken),
		errors.Is(err, qr.ErrOutsideRange),
		errors.Is(err, scan.ErrNotApproved):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// ---- helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
