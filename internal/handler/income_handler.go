package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"fintrack/internal/auth"
	"fintrack/internal/service"
)

// IncomeHandler handles income CRUD endpoints.
type IncomeHandler struct {
	incomes service.IncomeService
}

// NewIncomeHandler creates a new income handler.
func NewIncomeHandler(incomes service.IncomeService) *IncomeHandler {
	return &IncomeHandler{incomes: incomes}
}

// Create godoc
// @Summary Create an income
// @Tags incomes
// @Accept json
// @Produce json
// @Param request body TransactionRequest true "Income data"
// @Success 201 {object} model.Income
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /incomes [post]
func (h *IncomeHandler) Create(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	categoryID, amount, date, httpErr := req.parse()
	if httpErr != nil {
		return httpErr
	}

	income, err := h.incomes.Create(c.Request().Context(), userID, service.IncomeInput{
		CategoryID:  categoryID,
		Amount:      amount,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusCreated, income)
}

// Get godoc
// @Summary Get one income
// @Tags incomes
// @Produce json
// @Param id path string true "Income ID"
// @Success 200 {object} model.Income
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /incomes/{id} [get]
func (h *IncomeHandler) Get(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	income, err := h.incomes.Get(c.Request().Context(), userID, id)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, income)
}

// List godoc
// @Summary List own incomes
// @Tags incomes
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /incomes [get]
func (h *IncomeHandler) List(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	page, limit := pagination(c)

	incomes, total, err := h.incomes.List(c.Request().Context(), userID, page, limit)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"incomes": incomes,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

// Update godoc
// @Summary Update an income
// @Tags incomes
// @Accept json
// @Produce json
// @Param id path string true "Income ID"
// @Param request body TransactionRequest true "Income data"
// @Success 200 {object} model.Income
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /incomes/{id} [put]
func (h *IncomeHandler) Update(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	categoryID, amount, date, httpErr := req.parse()
	if httpErr != nil {
		return httpErr
	}

	income, err := h.incomes.Update(c.Request().Context(), userID, id, service.IncomeInput{
		CategoryID:  categoryID,
		Amount:      amount,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, income)
}

// Delete godoc
// @Summary Delete an income
// @Tags incomes
// @Produce json
// @Param id path string true "Income ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /incomes/{id} [delete]
func (h *IncomeHandler) Delete(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.incomes.Delete(c.Request().Context(), userID, id); err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "income deleted"})
}
