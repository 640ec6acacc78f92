package auth

import (
	"context"
	"net/http"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// PermissionChecker answers whether a user holds a named permission.
// Satisfied by service.RBACService.
type PermissionChecker interface {
	HasPermission(ctx context.Context, userID uuid.UUID, permissionName string) (bool, error)
}

// CurrentUserID extracts the authenticated user id from the echo-jwt token
// stored on the request context.
func CurrentUserID(c echo.Context) (uuid.UUID, error) {
	token, ok := c.Get("user").(*jwtv5.Token)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(jwtv5.MapClaims)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	return id, nil
}

// RequirePermission returns middleware enforcing that the authenticated user
// holds the named permission. A missing grant is a 403; the check is a fresh
// query on every request so revocations take effect immediately.
func RequirePermission(checker PermissionChecker, permissionName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := CurrentUserID(c)
			if err != nil {
				return err
			}
			allowed, err := checker.HasPermission(c.Request().Context(), userID, permissionName)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "permission check failed")
			}
			if !allowed {
				return echo.NewHTTPError(http.StatusForbidden, "permission denied")
			}
			return next(c)
		}
	}
}
