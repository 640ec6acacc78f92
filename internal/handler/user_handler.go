package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fintrack/internal/auth"
	"fintrack/internal/service"
)

// UserHandler serves the current user's profile.
type UserHandler struct {
	userService service.UserService
	rbacService service.RBACService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService, rbacService service.RBACService) *UserHandler {
	return &UserHandler{userService: userService, rbacService: rbacService}
}

// UpdateProfileRequest represents a profile update request.
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" validate:"max=255"`
	Currency    string `json:"currency" validate:"omitempty,len=3,uppercase"`
}

// GetCurrentUser godoc
// @Summary Current user profile with roles and permissions
// @Tags user
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /user [get]
func (h *UserHandler) GetCurrentUser(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	user, err := h.userService.GetUser(ctx, userID)
	if err != nil {
		return translateError(err)
	}
	permissions, err := h.rbacService.GetUserPermissions(ctx, userID)
	if err != nil {
		return translateError(err)
	}
	roles, err := h.rbacService.GetUserRoles(ctx, userID)
	if err != nil {
		return translateError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user":        user,
		"roles":       roles,
		"permissions": permissions,
	})
}

// UpdateProfile godoc
// @Summary Update current user profile
// @Tags user
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /user [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), userID, req.DisplayName, req.Currency)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, user)
}
