package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"fintrack/internal/auth"
	"fintrack/internal/service"
)

// ReportHandler lets users file content reports.
type ReportHandler struct {
	moderation service.ModerationService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(moderation service.ModerationService) *ReportHandler {
	return &ReportHandler{moderation: moderation}
}

// CreateReportRequest represents a content report submission.
type CreateReportRequest struct {
	ReportedUserID string `json:"reported_user_id" validate:"required,uuid"`
	ContentType    string `json:"content_type" validate:"required,max=50"`
	ContentID      string `json:"content_id" validate:"omitempty,uuid"`
	Reason         string `json:"reason" validate:"required,max=2000"`
}

// Create godoc
// @Summary File a content report
// @Tags reports
// @Accept json
// @Produce json
// @Param request body CreateReportRequest true "Report data"
// @Success 201 {object} model.ContentReport
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /reports [post]
func (h *ReportHandler) Create(c echo.Context) error {
	reporterID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	var req CreateReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reportedUserID, err := uuid.Parse(req.ReportedUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reported_user_id")
	}
	var contentID *uuid.UUID
	if req.ContentID != "" {
		id, err := uuid.Parse(req.ContentID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid content_id")
		}
		contentID = &id
	}

	report, err := h.moderation.CreateReport(c.Request().Context(), reporterID, reportedUserID, req.ContentType, contentID, req.Reason)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusCreated, report)
}
