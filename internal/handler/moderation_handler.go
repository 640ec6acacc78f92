package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"fintrack/internal/auth"
	"fintrack/internal/model"
	"fintrack/internal/service"
)

// ModerationHandler handles the admin moderation queue.
type ModerationHandler struct {
	moderation service.ModerationService
}

// NewModerationHandler creates a new moderation handler.
func NewModerationHandler(moderation service.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderation: moderation}
}

// ResolveReportRequest represents a report resolution payload.
type ResolveReportRequest struct {
	Status          string `json:"status" validate:"required,oneof=resolved dismissed"`
	FeedbackMessage string `json:"feedback_message" validate:"max=2000"`
}

// ModerationActionRequest represents a moderation action payload.
type ModerationActionRequest struct {
	Action string `json:"action" validate:"required,oneof=warn hide escalate"`
}

// ListReports godoc
// @Summary List the moderation queue
// @Tags moderation
// @Produce json
// @Param status query string false "Filter by status"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/reports [get]
func (h *ModerationHandler) ListReports(c echo.Context) error {
	page, limit := pagination(c)
	status := model.ReportStatus(c.QueryParam("status"))

	reports, total, err := h.moderation.ListQueue(c.Request().Context(), status, page, limit)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"reports": reports,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

// ResolveReport godoc
// @Summary Resolve or dismiss a report
// @Description Notifies the reporter, and the reported user when they differ.
// @Tags moderation
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param request body ResolveReportRequest true "Resolution"
// @Success 200 {object} model.ContentReport
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/reports/{id}/resolve [post]
func (h *ModerationHandler) ResolveReport(c echo.Context) error {
	moderatorID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req ResolveReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	report, err := h.moderation.ResolveReport(c.Request().Context(), moderatorID, id,
		model.ReportStatus(req.Status), req.FeedbackMessage)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, report)
}

// RecordAction godoc
// @Summary Record a moderation action (warn/hide/escalate)
// @Tags moderation
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param request body ModerationActionRequest true "Action"
// @Success 200 {object} model.ContentReport
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/moderation/{id}/action [post]
func (h *ModerationHandler) RecordAction(c echo.Context) error {
	moderatorID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req ModerationActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	report, err := h.moderation.RecordAction(c.Request().Context(), moderatorID, id,
		service.ModerationAction(req.Action))
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, report)
}
