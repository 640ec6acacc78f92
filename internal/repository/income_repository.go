package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fintrack/internal/model"
)

// IncomeRepository defines income persistence operations, owner-scoped like
// expenses.
type IncomeRepository interface {
	Create(ctx context.Context, income *model.Income) error
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*model.Income, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.Income, int64, error)
	Update(ctx context.Context, income *model.Income) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type incomeRepository struct {
	db *gorm.DB
}

// NewIncomeRepository builds a GORM-backed repository.
func NewIncomeRepository(db *gorm.DB) IncomeRepository {
	return &incomeRepository{db: db}
}

func (r *incomeRepository) Create(ctx context.Context, income *model.Income) error {
	return r.db.WithContext(ctx).Create(income).Error
}

func (r *incomeRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*model.Income, error) {
	var income model.Income
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&income).Error
	if err != nil {
		return nil, err
	}
	return &income, nil
}

func (r *incomeRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.Income, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Income{}).Where("user_id = ?", userID)

	var incomes []model.Income
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Category").Order("date DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&incomes).Error
	if err != nil {
		return nil, 0, err
	}
	return incomes, total, nil
}

func (r *incomeRepository) Update(ctx context.Context, income *model.Income) error {
	return r.db.WithContext(ctx).Save(income).Error
}

func (r *incomeRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Income{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
