package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"fintrack/internal/auth"
	"fintrack/internal/model"
	"fintrack/internal/service"
)

// BudgetHandler handles budget endpoints.
type BudgetHandler struct {
	budgets service.BudgetService
}

// NewBudgetHandler creates a new budget handler.
func NewBudgetHandler(budgets service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgets: budgets}
}

// BudgetRequest represents a budget payload.
type BudgetRequest struct {
	CategoryID string `json:"category_id" validate:"required,uuid"`
	Amount     string `json:"amount" validate:"required"`
	Period     string `json:"period" validate:"required,oneof=month year"`
	StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02"`
}

func (r *BudgetRequest) parse() (service.BudgetInput, *echo.HTTPError) {
	categoryID, err := uuid.Parse(r.CategoryID)
	if err != nil {
		return service.BudgetInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid category_id")
	}
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return service.BudgetInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid amount")
	}
	startDate, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return service.BudgetInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid start_date")
	}
	return service.BudgetInput{
		CategoryID: categoryID,
		Amount:     amount,
		Period:     model.BudgetPeriod(r.Period),
		StartDate:  startDate,
	}, nil
}

// Create godoc
// @Summary Create a budget
// @Tags budgets
// @Accept json
// @Produce json
// @Param request body BudgetRequest true "Budget data"
// @Success 201 {object} model.Budget
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /budgets [post]
func (h *BudgetHandler) Create(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	var req BudgetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	input, httpErr := req.parse()
	if httpErr != nil {
		return httpErr
	}

	budget, err := h.budgets.Create(c.Request().Context(), userID, input)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusCreated, budget)
}

// List godoc
// @Summary List own budgets with spent-vs-limit summaries
// @Tags budgets
// @Produce json
// @Success 200 {array} model.BudgetSummary
// @Security BearerAuth
// @Router /budgets [get]
func (h *BudgetHandler) List(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	summaries, err := h.budgets.Summaries(c.Request().Context(), userID, time.Now())
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, summaries)
}

// Update godoc
// @Summary Update a budget
// @Tags budgets
// @Accept json
// @Produce json
// @Param id path string true "Budget ID"
// @Param request body BudgetRequest true "Budget data"
// @Success 200 {object} model.Budget
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /budgets/{id} [put]
func (h *BudgetHandler) Update(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req BudgetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	input, httpErr := req.parse()
	if httpErr != nil {
		return httpErr
	}

	budget, err := h.budgets.Update(c.Request().Context(), userID, id, input)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, budget)
}

// Delete godoc
// @Summary Delete a budget
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /budgets/{id} [delete]
func (h *BudgetHandler) Delete(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.budgets.Delete(c.Request().Context(), userID, id); err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "budget deleted"})
}
