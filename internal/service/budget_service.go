package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/model"
	"fintrack/internal/repository"
)

// BudgetInput carries budget fields from the handler layer.
type BudgetInput struct {
	CategoryID uuid.UUID
	Amount     decimal.Decimal
	Period     model.BudgetPeriod
	StartDate  time.Time
}

// BudgetService handles owner-scoped budgets and spent-vs-limit summaries.
type BudgetService interface {
	Create(ctx context.Context, userID uuid.UUID, in BudgetInput) (*model.Budget, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Budget, error)
	Update(ctx context.Context, userID, id uuid.UUID, in BudgetInput) (*model.Budget, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Summaries(ctx context.Context, userID uuid.UUID, at time.Time) ([]model.BudgetSummary, error)
}

type budgetService struct {
	repo     repository.BudgetRepository
	expenses repository.ExpenseRepository
	activity ActivityService
}

// NewBudgetService builds a BudgetService.
func NewBudgetService(repo repository.BudgetRepository, expenses repository.ExpenseRepository, activity ActivityService) BudgetService {
	return &budgetService{repo: repo, expenses: expenses, activity: activity}
}

func (s *budgetService) Create(ctx context.Context, userID uuid.UUID, in BudgetInput) (*model.Budget, error) {
	if !in.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	budget := &model.Budget{
		UserID:     userID,
		CategoryID: in.CategoryID,
		Amount:     in.Amount,
		Period:     in.Period,
		StartDate:  in.StartDate,
	}
	if err := s.repo.Create(ctx, budget); err != nil {
		return nil, err
	}
	s.activity.Log(ctx, ActivityEntry{
		UserID:       userID,
		ActionType:   model.ActionCreate,
		ResourceType: "budget",
		ResourceID:   &budget.ID,
		Description:  "budget created",
	})
	return budget, nil
}

func (s *budgetService) List(ctx context.Context, userID uuid.UUID) ([]model.Budget, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *budgetService) Update(ctx context.Context, userID, id uuid.UUID, in BudgetInput) (*model.Budget, error) {
	budget, err := s.repo.FindByIDForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	budget.CategoryID = in.CategoryID
	budget.Amount = in.Amount
	budget.Period = in.Period
	budget.StartDate = in.StartDate
	if err := s.repo.Update(ctx, budget); err != nil {
		return nil, err
	}
	s.activity.Log(ctx, ActivityEntry{
		UserID:       userID,
		ActionType:   model.ActionUpdate,
		ResourceType: "budget",
		ResourceID:   &budget.ID,
		Description:  "budget updated",
	})
	return budget, nil
}

func (s *budgetService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	s.activity.Log(ctx, ActivityEntry{
		UserID:       userID,
		ActionType:   model.ActionDelete,
		ResourceType: "budget",
		ResourceID:   &id,
		Description:  "budget deleted",
	})
	return nil
}

// Summaries computes spent-vs-limit for every budget over the period window
// containing at. Spent is always derived from the expenses table.
func (s *budgetService) Summaries(ctx context.Context, userID uuid.UUID, at time.Time) ([]model.BudgetSummary, error) {
	budgets, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	summaries := make([]model.BudgetSummary, 0, len(budgets))
	for _, budget := range budgets {
		from, to := periodWindow(budget.Period, at)
		spent, err := s.expenses.SumByCategory(ctx, userID, budget.CategoryID, from, to)
		if err != nil {
			return nil, err
		}
		remaining := budget.Amount.Sub(spent)
		summaries = append(summaries, model.BudgetSummary{
			Budget:    budget,
			Spent:     spent,
			Remaining: remaining,
			Exceeded:  remaining.IsNegative(),
		})
	}
	return summaries, nil
}

// periodWindow returns the [from, to) bounds of the calendar period
// containing at.
func periodWindow(period model.BudgetPeriod, at time.Time) (time.Time, time.Time) {
	switch period {
	case model.BudgetPeriodYear:
		from := time.Date(at.Year(), 1, 1, 0, 0, 0, 0, at.Location())
		return from, from.AddDate(1, 0, 0)
	default: // month
		from := time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, at.Location())
		return from, from.AddDate(0, 1, 0)
	}
}
