package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fintrack/internal/model"
)

// NotificationRepository defines user notification persistence operations.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.UserNotification) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.UserNotification, error)
	Update(ctx context.Context, n *model.UserNotification) error
	ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.UserNotification, int64, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID, readAt time.Time) (int64, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository builds a GORM-backed repository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.UserNotification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.UserNotification, error) {
	var n model.UserNotification
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepository) Update(ctx context.Context, n *model.UserNotification) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.UserNotification, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.UserNotification{}).
		Where("user_id = ? AND deleted_at IS NULL", userID)

	var notifications []model.UserNotification
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

// MarkAllRead stamps every unread, non-deleted notification of the user in a
// single UPDATE and returns the number of rows touched.
func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID, readAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.UserNotification{}).
		Where("user_id = ? AND read_at IS NULL AND deleted_at IS NULL", userID).
		Update("read_at", readAt)
	return res.RowsAffected, res.Error
}

// UnreadCount is always derived from the table, never materialized.
func (r *notificationRepository) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.UserNotification{}).
		Where("user_id = ? AND read_at IS NULL AND deleted_at IS NULL", userID).
		Count(&count).Error
	return count, err
}
