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

// ErrInvalidAmount is returned when a monetary amount is zero or negative.
var ErrInvalidAmount = errors.New("amount must be positive")

// ExpenseInput carries expense fields from the handler layer.
type ExpenseInput struct {
	CategoryID  uuid.UUID
	Amount      decimal.Decimal
	Description string
	Date        time.Time
}

// ExpenseService handles owner-scoped expense CRUD.
type ExpenseService interface {
	Create(ctx context.Context, userID uuid.UUID, in ExpenseInput) (*model.Expense, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*model.Expense, error)
	List(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.Expense, int64, error)
	Update(ctx context.Context, userID, id uuid.UUID, in ExpenseInput) (*model.Expense, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type expenseService struct {
	repo       repository.ExpenseRepository
	categories repository.CategoryRepository
	activity   ActivityService
}

// NewExpenseService builds an ExpenseService.
func NewExpenseService(repo repository.ExpenseRepository, categories repository.CategoryRepository, activity ActivityService) ExpenseService {
	return &expenseService{repo: repo, categories: categories, activity: activity}
}

func (s *expenseService) validate(ctx context.Context, userID uuid.UUID, in ExpenseInput) error {
	if !in.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	category, err := s.categories.FindByID(ctx, in.CategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	if category.UserID != nil && *category.UserID != userID {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *expenseService) Create(ctx context.Context, userID uuid.UUID, in ExpenseInput) (*model.Expense, error) {
	if err := s.validate(ctx, userID, in); err != nil {
		return nil, err
	}
	expense := &model.Expense{
		UserID:      userID,
		CategoryID:  in.CategoryID,
		Amount:      in.Amount,
		Description: in.Description,
		Date:        in.Date,
	}
	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, err
	}
	s.activity.Log(ctx, ActivityEntry{
		UserID:       userID,
		ActionType:   model.ActionCreate,
		ResourceType: "expense",
		ResourceID:   &expense.ID,
		Description:  "expense created",
	})
	return expense, nil
}

func (s *expenseService) Get(ctx context.Context, userID, id uuid.UUID) (*model.Expense, error) {
	expense, err := s.repo.FindByIDForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) List(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.Expense, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repo.ListByUser(ctx, userID, page, limit)
}

func (s *expenseService) Update(ctx context.Context, userID, id uuid.UUID, in ExpenseInput) (*model.Expense, error) {
	expense, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, userID, in); err != nil {
		return nil, err
	}
	expense.CategoryID = in.CategoryID
	expense.Amount = in.Amount
	expense.Description = in.Description
	expense.Date = in.Date
	if err := s.repo.Update(ctx, expense); err != nil {
		return nil, err
	}
	s.activity.Log(ctx, ActivityEntry{
		UserID:       userID,
		ActionType:   model.ActionUpdate,
		ResourceType: "expense",
		ResourceID:   &expense.ID,
		Description:  "expense updated",
	})
	return expense, nil
}

func (s *expenseService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	s.activity.Log(ctx, ActivityEntry{
		UserID:       userID,
		ActionType:   model.ActionDelete,
		ResourceType: "expense",
		ResourceID:   &id,
		Description:  "expense deleted",
	})
	return nil
}
