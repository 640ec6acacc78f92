package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"fintrack/internal/auth"
	"fintrack/internal/model"
	"fintrack/internal/service"
)

// SettingHandler handles admin system settings.
type SettingHandler struct {
	settings service.SettingService
}

// NewSettingHandler creates a new setting handler.
func NewSettingHandler(settings service.SettingService) *SettingHandler {
	return &SettingHandler{settings: settings}
}

// UpsertSettingRequest represents a setting upsert payload. Value is raw JSON
// checked against the declared type before storage.
type UpsertSettingRequest struct {
	Key   string          `json:"key" validate:"required,max=100"`
	Type  string          `json:"type" validate:"required,oneof=text number boolean json"`
	Value json.RawMessage `json:"value" validate:"required"`
}

// List godoc
// @Summary List system settings
// @Tags admin
// @Produce json
// @Success 200 {array} model.Setting
// @Security BearerAuth
// @Router /admin/settings [get]
func (h *SettingHandler) List(c echo.Context) error {
	settings, err := h.settings.List(c.Request().Context())
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, settings)
}

// Upsert godoc
// @Summary Create or replace a system setting
// @Tags admin
// @Accept json
// @Produce json
// @Param request body UpsertSettingRequest true "Setting data"
// @Success 200 {object} model.Setting
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/settings [put]
func (h *SettingHandler) Upsert(c echo.Context) error {
	adminID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	var req UpsertSettingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	setting, err := h.settings.Upsert(c.Request().Context(), adminID, req.Key,
		model.SettingType(req.Type), req.Value)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, setting)
}
