package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fintrack/internal/model"
)

// ActivityRepository defines activity log persistence operations. The
// interface intentionally has no delete: the table is append-only and the
// storage layer rejects deletes outright (see internal/db).
type ActivityRepository interface {
	Create(ctx context.Context, entry *model.ActivityLog) error
	ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.ActivityLog, int64, error)
	ListAll(ctx context.Context, page, limit int) ([]model.ActivityLog, int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository builds a GORM-backed repository.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, entry *model.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *activityRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.ActivityLog, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&model.ActivityLog{}).Where("user_id = ?", userID), page, limit)
}

func (r *activityRepository) ListAll(ctx context.Context, page, limit int) ([]model.ActivityLog, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&model.ActivityLog{}), page, limit)
}

func (r *activityRepository) list(ctx context.Context, q *gorm.DB, page, limit int) ([]model.ActivityLog, int64, error) {
	var entries []model.ActivityLog
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
