package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/model"
	"fintrack/internal/repository"
)

// NotificationPage is the list response: notifications plus the derived
// unread count, which is recomputed on every call.
type NotificationPage struct {
	Notifications []model.UserNotification `json:"notifications"`
	Total         int64                    `json:"total"`
	UnreadCount   int64                    `json:"unread_count"`
}

// NotificationService manages user-visible notifications. Only the owning
// user may read or mark them.
type NotificationService interface {
	Notify(ctx context.Context, userID uuid.UUID, title, message string, typ model.NotificationType, reportID *uuid.UUID) (*model.UserNotification, error)
	List(ctx context.Context, userID uuid.UUID, page, limit int) (*NotificationPage, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationService struct {
	repo repository.NotificationRepository
	now  func() time.Time
}

// NewNotificationService builds a NotificationService.
func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo, now: time.Now}
}

func (s *notificationService) Notify(ctx context.Context, userID uuid.UUID, title, message string, typ model.NotificationType, reportID *uuid.UUID) (*model.UserNotification, error) {
	n := &model.UserNotification{
		UserID:   userID,
		Title:    title,
		Message:  message,
		Type:     typ,
		ReportID: reportID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID, page, limit int) (*NotificationPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	notifications, total, err := s.repo.ListByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &NotificationPage{Notifications: notifications, Total: total, UnreadCount: unread}, nil
}

// MarkRead stamps ReadAt once. Re-invoking on an already-read notification is
// a no-op that keeps the original timestamp.
func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	n, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	if n.UserID != userID || n.IsDeleted() {
		// Another user's notification behaves like a missing one.
		return apperrors.ErrNotFound
	}
	if n.IsRead() {
		return nil
	}
	readAt := s.now()
	n.ReadAt = &readAt
	return s.repo.Update(ctx, n)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID, s.now())
}
