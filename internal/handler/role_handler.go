package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"fintrack/internal/service"
)

// RoleHandler handles admin role and permission endpoints.
type RoleHandler struct {
	rbac service.RBACService
}

// NewRoleHandler creates a new role handler.
func NewRoleHandler(rbac service.RBACService) *RoleHandler {
	return &RoleHandler{rbac: rbac}
}

// RoleRequest represents a role create/update payload.
type RoleRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=255"`
}

// SetPermissionsRequest represents a role permission replacement payload.
type SetPermissionsRequest struct {
	Permissions []string `json:"permissions" validate:"required"`
}

// ListRoles godoc
// @Summary List roles
// @Tags admin
// @Produce json
// @Success 200 {array} model.Role
// @Security BearerAuth
// @Router /admin/roles [get]
func (h *RoleHandler) ListRoles(c echo.Context) error {
	roles, err := h.rbac.ListRoles(c.Request().Context())
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, roles)
}

// GetRole godoc
// @Summary Get a role with its full permission set
// @Tags admin
// @Produce json
// @Param id path string true "Role ID"
// @Success 200 {object} service.RoleWithPermissions
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/roles/{id} [get]
func (h *RoleHandler) GetRole(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	role, err := h.rbac.GetRoleWithPermissions(c.Request().Context(), id)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, role)
}

// CreateRole godoc
// @Summary Create a role
// @Tags admin
// @Accept json
// @Produce json
// @Param request body RoleRequest true "Role data"
// @Success 201 {object} model.Role
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/roles [post]
func (h *RoleHandler) CreateRole(c echo.Context) error {
	var req RoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := h.rbac.CreateRole(c.Request().Context(), req.Name, req.Description)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusCreated, role)
}

// UpdateRole godoc
// @Summary Update a role
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Role ID"
// @Param request body RoleRequest true "Role data"
// @Success 200 {object} model.Role
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/roles/{id} [put]
func (h *RoleHandler) UpdateRole(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req RoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := h.rbac.UpdateRole(c.Request().Context(), id, req.Name, req.Description)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, role)
}

// DeleteRole godoc
// @Summary Delete a role
// @Description System roles and roles still held by users are refused.
// @Tags admin
// @Produce json
// @Param id path string true "Role ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/roles/{id} [delete]
func (h *RoleHandler) DeleteRole(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.rbac.DeleteRole(c.Request().Context(), id); err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "role deleted"})
}

// SetRolePermissions godoc
// @Summary Replace a role's permission set
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Role ID"
// @Param request body SetPermissionsRequest true "Permission names"
// @Success 200 {object} service.RoleWithPermissions
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/roles/{id}/permissions [put]
func (h *RoleHandler) SetRolePermissions(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req SetPermissionsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ctx := c.Request().Context()

	if err := h.rbac.SetRolePermissions(ctx, id, req.Permissions); err != nil {
		return translateError(err)
	}
	role, err := h.rbac.GetRoleWithPermissions(ctx, id)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, role)
}

// ListPermissions godoc
// @Summary List the seeded permission set
// @Tags admin
// @Produce json
// @Success 200 {array} model.Permission
// @Security BearerAuth
// @Router /admin/permissions [get]
func (h *RoleHandler) ListPermissions(c echo.Context) error {
	permissions, err := h.rbac.ListPermissions(c.Request().Context())
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, permissions)
}
