package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fintrack/internal/auth"
	"fintrack/internal/model"
	"fintrack/internal/service"
)

// ActivityHandler serves the activity log, role-scoped.
type ActivityHandler struct {
	activity service.ActivityService
	rbac     service.RBACService
}

// NewActivityHandler creates a new activity handler.
func NewActivityHandler(activity service.ActivityService, rbac service.RBACService) *ActivityHandler {
	return &ActivityHandler{activity: activity, rbac: rbac}
}

// List godoc
// @Summary Paginated activity log
// @Description Users holding activity:read-all see the whole log; everyone else sees only their own entries.
// @Tags activity
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /activity-logs [get]
func (h *ActivityHandler) List(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	page, limit := pagination(c)

	canReadAll, err := h.rbac.HasPermission(ctx, userID, model.PermActivityReadAll)
	if err != nil {
		return translateError(err)
	}
	entries, total, err := h.activity.List(ctx, userID, canReadAll, page, limit)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"entries": entries,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}
