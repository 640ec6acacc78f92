package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"fintrack/internal/auth"
	"fintrack/internal/service"
)

// ExpenseHandler handles expense CRUD endpoints.
type ExpenseHandler struct {
	expenses service.ExpenseService
}

// NewExpenseHandler creates a new expense handler.
func NewExpenseHandler(expenses service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

// TransactionRequest represents an expense or income payload. Amounts travel
// as strings and are parsed with shopspring/decimal to avoid float drift.
type TransactionRequest struct {
	CategoryID  string `json:"category_id" validate:"required,uuid"`
	Amount      string `json:"amount" validate:"required"`
	Description string `json:"description" validate:"max=255"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
}

func (r *TransactionRequest) parse() (uuid.UUID, decimal.Decimal, time.Time, *echo.HTTPError) {
	categoryID, err := uuid.Parse(r.CategoryID)
	if err != nil {
		return uuid.Nil, decimal.Zero, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "invalid category_id")
	}
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return uuid.Nil, decimal.Zero, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "invalid amount")
	}
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return uuid.Nil, decimal.Zero, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "invalid date")
	}
	return categoryID, amount, date, nil
}

// Create godoc
// @Summary Create an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param request body TransactionRequest true "Expense data"
// @Success 201 {object} model.Expense
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /expenses [post]
func (h *ExpenseHandler) Create(c echo.Context) error {
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

	expense, err := h.expenses.Create(c.Request().Context(), userID, service.ExpenseInput{
		CategoryID:  categoryID,
		Amount:      amount,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusCreated, expense)
}

// Get godoc
// @Summary Get one expense
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} model.Expense
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) Get(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	expense, err := h.expenses.Get(c.Request().Context(), userID, id)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, expense)
}

// List godoc
// @Summary List own expenses
// @Tags expenses
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /expenses [get]
func (h *ExpenseHandler) List(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	page, limit := pagination(c)

	expenses, total, err := h.expenses.List(c.Request().Context(), userID, page, limit)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"expenses": expenses,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// Update godoc
// @Summary Update an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param request body TransactionRequest true "Expense data"
// @Success 200 {object} model.Expense
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) Update(c echo.Context) error {
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

	expense, err := h.expenses.Update(c.Request().Context(), userID, id, service.ExpenseInput{
		CategoryID:  categoryID,
		Amount:      amount,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, expense)
}

// Delete godoc
// @Summary Delete an expense
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.expenses.Delete(c.Request().Context(), userID, id); err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "expense deleted"})
}
