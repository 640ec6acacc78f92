package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fintrack/internal/auth"
	"fintrack/internal/model"
	"fintrack/internal/service"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	categories service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categories service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// CreateCategoryRequest represents a user category payload.
type CreateCategoryRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Type  string `json:"type" validate:"required,oneof=expense income"`
	Icon  string `json:"icon" validate:"max=50"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

// List godoc
// @Summary List categories visible to the current user
// @Tags categories
// @Produce json
// @Success 200 {array} model.Category
// @Security BearerAuth
// @Router /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	categories, err := h.categories.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, categories)
}

// Create godoc
// @Summary Create a personal category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body CreateCategoryRequest true "Category data"
// @Success 201 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.categories.Create(c.Request().Context(), userID, req.Name, model.CategoryType(req.Type), req.Icon, req.Color)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusCreated, category)
}
