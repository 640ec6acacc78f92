package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"fintrack/internal/db"
	"fintrack/internal/errors"
	"fintrack/internal/service"
)

// translateError maps service and store errors to echo HTTP errors with the
// standard {error, code} body. Unknown errors collapse to 500.
func translateError(err error) *echo.HTTPError {
	switch {
	case stderrors.Is(err, service.ErrInvalidCredentials),
		stderrors.Is(err, service.ErrInvalidRefreshToken):
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "UNAUTHORIZED",
		})

	case stderrors.Is(err, service.ErrUsernameTaken),
		stderrors.Is(err, service.ErrEmailTaken),
		stderrors.Is(err, service.ErrRoleNameTaken),
		stderrors.Is(err, errors.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "CONFLICT",
		})

	case stderrors.Is(err, service.ErrRoleNotFound),
		stderrors.Is(err, service.ErrPermissionNotFound),
		stderrors.Is(err, service.ErrReportNotFound),
		stderrors.Is(err, errors.ErrNotFound),
		stderrors.Is(err, gorm.ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: "resource not found",
			Code:  "NOT_FOUND",
		})

	case stderrors.Is(err, service.ErrSystemRole),
		stderrors.Is(err, service.ErrRoleInUse),
		stderrors.Is(err, service.ErrReportClosed),
		stderrors.Is(err, service.ErrInvalidTransition),
		stderrors.Is(err, service.ErrUnknownModerationAction),
		stderrors.Is(err, service.ErrSelfReport),
		stderrors.Is(err, service.ErrSelfStatusChange),
		stderrors.Is(err, service.ErrInvalidStatus),
		stderrors.Is(err, service.ErrInvalidAmount),
		stderrors.Is(err, service.ErrInvalidSettingValue),
		stderrors.Is(err, errors.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})

	case stderrors.Is(err, errors.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "FORBIDDEN",
		})

	case stderrors.Is(err, db.ErrActivityLogImmutable):
		// Security-relevant anomaly: something tried to delete audit rows.
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "internal server error",
			Code:  "INTEGRITY_VIOLATION",
		})

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "internal server error",
			Code:  "INTERNAL_ERROR",
		})
	}
}
