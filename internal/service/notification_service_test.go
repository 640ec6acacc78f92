package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/model"
)

// MockNotificationRepository is a mock implementation of NotificationRepository.
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *model.UserNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.UserNotification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserNotification), args.Error(1)
}

func (m *MockNotificationRepository) Update(ctx context.Context, n *model.UserNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.UserNotification, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.UserNotification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID, readAt time.Time) (int64, error) {
	args := m.Called(ctx, userID, readAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func TestNotificationService_MarkRead(t *testing.T) {
	userID := uuid.New()
	otherUserID := uuid.New()
	notificationID := uuid.New()
	fixedNow := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	earlier := fixedNow.Add(-time.Hour)

	tests := []struct {
		name          string
		setupMock     func(*MockNotificationRepository)
		expectedError error
	}{
		{
			name: "stamps an unread notification",
			setupMock: func(m *MockNotificationRepository) {
				m.On("FindByID", mock.Anything, notificationID).Return(&model.UserNotification{
					ID:     notificationID,
					UserID: userID,
				}, nil)
				m.On("Update", mock.Anything, mock.MatchedBy(func(n *model.UserNotification) bool {
					return n.ReadAt != nil && n.ReadAt.Equal(fixedNow)
				})).Return(nil)
			},
		},
		{
			// Marking twice is a no-op; the original timestamp survives and
			// no update is issued.
			name: "already read is a no-op",
			setupMock: func(m *MockNotificationRepository) {
				m.On("FindByID", mock.Anything, notificationID).Return(&model.UserNotification{
					ID:     notificationID,
					UserID: userID,
					ReadAt: &earlier,
				}, nil)
			},
		},
		{
			// Another user's notification behaves exactly like a missing one.
			name: "foreign notification looks missing",
			setupMock: func(m *MockNotificationRepository) {
				m.On("FindByID", mock.Anything, notificationID).Return(&model.UserNotification{
					ID:     notificationID,
					UserID: otherUserID,
				}, nil)
			},
			expectedError: apperrors.ErrNotFound,
		},
		{
			name: "missing notification",
			setupMock: func(m *MockNotificationRepository) {
				m.On("FindByID", mock.Anything, notificationID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrNotFound,
		},
		{
			name: "soft-deleted notification looks missing",
			setupMock: func(m *MockNotificationRepository) {
				deleted := &model.UserNotification{ID: notificationID, UserID: userID}
				deleted.SoftDelete(earlier)
				m.On("FindByID", mock.Anything, notificationID).Return(deleted, nil)
			},
			expectedError: apperrors.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockNotificationRepository)
			tt.setupMock(mockRepo)

			service := &notificationService{repo: mockRepo, now: func() time.Time { return fixedNow }}
			err := service.MarkRead(context.Background(), userID, notificationID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestNotificationService_MarkAllRead(t *testing.T) {
	userID := uuid.New()
	fixedNow := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mockRepo := new(MockNotificationRepository)
	mockRepo.On("MarkAllRead", mock.Anything, userID, fixedNow).Return(int64(4), nil)

	service := &notificationService{repo: mockRepo, now: func() time.Time { return fixedNow }}
	updated, err := service.MarkAllRead(context.Background(), userID)

	assert.NoError(t, err)
	assert.Equal(t, int64(4), updated)
	mockRepo.AssertExpectations(t)
}

func TestNotificationService_List(t *testing.T) {
	userID := uuid.New()

	mockRepo := new(MockNotificationRepository)
	mockRepo.On("ListByUser", mock.Anything, userID, 1, 20).Return([]model.UserNotification{
		{ID: uuid.New(), UserID: userID},
		{ID: uuid.New(), UserID: userID},
	}, int64(2), nil)
	mockRepo.On("UnreadCount", mock.Anything, userID).Return(int64(1), nil)

	service := NewNotificationService(mockRepo)
	page, err := service.List(context.Background(), userID, 0, 0)

	assert.NoError(t, err)
	assert.Len(t, page.Notifications, 2)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, int64(1), page.UnreadCount)
	mockRepo.AssertExpectations(t)
}
