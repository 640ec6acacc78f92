package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"fintrack/internal/auth"
	"fintrack/internal/model"
	"fintrack/internal/service"
)

// AdminUserHandler handles admin user management: listing, status changes
// and role assignment.
type AdminUserHandler struct {
	users service.UserService
	rbac  service.RBACService
}

// NewAdminUserHandler creates a new admin user handler.
func NewAdminUserHandler(users service.UserService, rbac service.RBACService) *AdminUserHandler {
	return &AdminUserHandler{users: users, rbac: rbac}
}

// SetStatusRequest represents a status change request.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active suspended deleted"`
}

// SetRolesRequest represents a role replacement request.
type SetRolesRequest struct {
	RoleIDs []string `json:"role_ids" validate:"required,dive,uuid"`
}

// ListUsers godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/users [get]
func (h *AdminUserHandler) ListUsers(c echo.Context) error {
	page, limit := pagination(c)
	users, total, err := h.users.ListUsers(c.Request().Context(), page, limit)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"users": users,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GetUser godoc
// @Summary Get one user with roles
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id} [get]
func (h *AdminUserHandler) GetUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	ctx := c.Request().Context()

	user, err := h.users.GetUser(ctx, id)
	if err != nil {
		return translateError(err)
	}
	roles, err := h.rbac.GetUserRoles(ctx, id)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"user":  user,
		"roles": roles,
	})
}

// SetStatus godoc
// @Summary Change a user's lifecycle status
// @Description Suspends, soft-deletes or reactivates an account. The row is always retained.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body SetStatusRequest true "New status"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id}/status [put]
func (h *AdminUserHandler) SetStatus(c echo.Context) error {
	adminID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req SetStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.SetStatus(c.Request().Context(), adminID, id, model.UserStatus(req.Status))
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// GetUserRoles godoc
// @Summary List a user's roles
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} model.Role
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id}/roles [get]
func (h *AdminUserHandler) GetUserRoles(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	ctx := c.Request().Context()

	if _, err := h.users.GetUser(ctx, id); err != nil {
		return translateError(err)
	}
	roles, err := h.rbac.GetUserRoles(ctx, id)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, roles)
}

// SetUserRoles godoc
// @Summary Replace a user's role set
// @Description Atomic replace-all: on any failure the prior role set is retained.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body SetRolesRequest true "Role ids"
// @Success 200 {array} model.Role
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id}/roles [post]
func (h *AdminUserHandler) SetUserRoles(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req SetRolesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ctx := c.Request().Context()

	if _, err := h.users.GetUser(ctx, id); err != nil {
		return translateError(err)
	}
	roleIDs := make([]uuid.UUID, 0, len(req.RoleIDs))
	for _, raw := range req.RoleIDs {
		rid, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid role id")
		}
		roleIDs = append(roleIDs, rid)
	}

	if err := h.rbac.SetUserRoles(ctx, id, roleIDs); err != nil {
		return translateError(err)
	}
	roles, err := h.rbac.GetUserRoles(ctx, id)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, roles)
}
