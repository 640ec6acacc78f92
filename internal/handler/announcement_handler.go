package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"fintrack/internal/auth"
	"fintrack/internal/service"
)

// AnnouncementHandler serves announcements to users and lets admins manage them.
type AnnouncementHandler struct {
	announcements service.AnnouncementService
}

// NewAnnouncementHandler creates a new announcement handler.
func NewAnnouncementHandler(announcements service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcements: announcements}
}

// AnnouncementRequest represents an announcement create/update payload.
type AnnouncementRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Body     string `json:"body" validate:"required"`
	Audience string `json:"audience" validate:"required,oneof=all admins"`
	StartsAt string `json:"starts_at" validate:"required"`
	EndsAt   string `json:"ends_at" validate:"omitempty"`
}

func (r *AnnouncementRequest) parse() (service.AnnouncementInput, error) {
	startsAt, err := time.Parse(time.RFC3339, r.StartsAt)
	if err != nil {
		return service.AnnouncementInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid starts_at, expected RFC 3339")
	}
	in := service.AnnouncementInput{
		Title:    r.Title,
		Body:     r.Body,
		Audience: r.Audience,
		StartsAt: startsAt,
	}
	if r.EndsAt != "" {
		endsAt, err := time.Parse(time.RFC3339, r.EndsAt)
		if err != nil {
			return service.AnnouncementInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid ends_at, expected RFC 3339")
		}
		in.EndsAt = &endsAt
	}
	return in, nil
}

// ListActive godoc
// @Summary List currently active announcements
// @Tags announcements
// @Produce json
// @Success 200 {array} model.Announcement
// @Router /announcements [get]
func (h *AnnouncementHandler) ListActive(c echo.Context) error {
	announcements, err := h.announcements.ListActive(c.Request().Context())
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, announcements)
}

// ListAll godoc
// @Summary List all announcements including inactive ones
// @Tags admin
// @Produce json
// @Success 200 {array} model.Announcement
// @Security BearerAuth
// @Router /admin/announcements [get]
func (h *AnnouncementHandler) ListAll(c echo.Context) error {
	announcements, err := h.announcements.ListAll(c.Request().Context())
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, announcements)
}

// Create godoc
// @Summary Publish an announcement
// @Tags admin
// @Accept json
// @Produce json
// @Param request body AnnouncementRequest true "Announcement data"
// @Success 201 {object} model.Announcement
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/announcements [post]
func (h *AnnouncementHandler) Create(c echo.Context) error {
	adminID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	var req AnnouncementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	in, err := req.parse()
	if err != nil {
		return err
	}

	announcement, err := h.announcements.Create(c.Request().Context(), adminID, in)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusCreated, announcement)
}

// Update godoc
// @Summary Update an announcement
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Announcement ID"
// @Param request body AnnouncementRequest true "Announcement data"
// @Success 200 {object} model.Announcement
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/announcements/{id} [put]
func (h *AnnouncementHandler) Update(c echo.Context) error {
	adminID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid announcement id")
	}
	var req AnnouncementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	in, err := req.parse()
	if err != nil {
		return err
	}

	announcement, err := h.announcements.Update(c.Request().Context(), adminID, id, in)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, announcement)
}

// Delete godoc
// @Summary Retract an announcement
// @Tags admin
// @Param id path string true "Announcement ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/announcements/{id} [delete]
func (h *AnnouncementHandler) Delete(c echo.Context) error {
	adminID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid announcement id")
	}
	if err := h.announcements.Delete(c.Request().Context(), adminID, id); err != nil {
		return translateError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
