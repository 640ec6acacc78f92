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

// IncomeInput carries income fields from the handler layer.
type IncomeInput struct {
	CategoryID  uuid.UUID
	Amount      decimal.Decimal
	Description string
	Date        time.Time
}

// IncomeService handles owner-scoped income CRUD.
type IncomeService interface {
	Create(ctx context.Context, userID uuid.UUID, in IncomeInput) (*model.Income, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*model.Income, error)
	List(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.Income, int64, error)
	Update(ctx context.Context, userID, id uuid.UUID, in IncomeInput) (*model.Income, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type incomeService struct {
	repo       repository.IncomeRepository
	categories repository.CategoryRepository
	activity   ActivityService
}

// NewIncomeService builds an IncomeService.
func NewIncomeService(repo repository.IncomeRepository, categories repository.CategoryRepository, activity ActivityService) IncomeService {
	return &incomeService{repo: repo, categories: categories, activity: activity}
}

func (s *incomeService) validate(ctx context.Context, userID uuid.UUID, in IncomeInput) error {
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

func (s *incomeService) Create(ctx context.Context, userID uuid.UUID, in IncomeInput) (*model.Income, error) {
	if err := s.validate(ctx, userID, in); err != nil {
		return nil, err
	}
	income := &model.Income{
		UserID:      userID,
		CategoryID:  in.CategoryID,
		Amount:      in.Amount,
		Description: in.Description,
		Date:        in.Date,
	}
	if err := s.repo.Create(ctx, income); err != nil {
		return nil, err
	}
	s.activity.Log(ctx, ActivityEntry{
		UserID:       userID,
		ActionType:   model.ActionCreate,
		ResourceType: "income",
		ResourceID:   &income.ID,
		Description:  "income created",
	})
	return income, nil
}

func (s *incomeService) Get(ctx context.Context, userID, id uuid.UUID) (*model.Income, error) {
	income, err := s.repo.FindByIDForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return income, nil
}

func (s *incomeService) List(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.Income, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repo.ListByUser(ctx, userID, page, limit)
}

func (s *incomeService) Update(ctx context.Context, userID, id uuid.UUID, in IncomeInput) (*model.Income, error) {
	income, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, userID, in); err != nil {
		return nil, err
	}
	income.CategoryID = in.CategoryID
	income.Amount = in.Amount
	income.Description = in.Description
	income.Date = in.Date
	if err := s.repo.Update(ctx, income); err != nil {
		return nil, err
	}
	s.activity.Log(ctx, ActivityEntry{
		UserID:       userID,
		ActionType:   model.ActionUpdate,
		ResourceType: "income",
		ResourceID:   &income.ID,
		Description:  "income updated",
	})
	return income, nil
}

func (s *incomeService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	s.activity.Log(ctx, ActivityEntry{
		UserID:       userID,
		ActionType:   model.ActionDelete,
		ResourceType: "income",
		ResourceID:   &id,
		Description:  "income deleted",
	})
	return nil
}
