package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"fintrack/internal/model"
)

// MockReportRepository is a mock implementation of ReportRepository.
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Create(ctx context.Context, report *model.ContentReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ContentReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContentReport), args.Error(1)
}

func (m *MockReportRepository) Update(ctx context.Context, report *model.ContentReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) ListQueue(ctx context.Context, status model.ReportStatus, page, limit int) ([]model.ContentReport, int64, error) {
	args := m.Called(ctx, status, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.ContentReport), args.Get(1).(int64), args.Error(2)
}

// MockNotificationService is a mock implementation of NotificationService.
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Notify(ctx context.Context, userID uuid.UUID, title, message string, typ model.NotificationType, reportID *uuid.UUID) (*model.UserNotification, error) {
	args := m.Called(ctx, userID, title, message, typ, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserNotification), args.Error(1)
}

func (m *MockNotificationService) List(ctx context.Context, userID uuid.UUID, page, limit int) (*NotificationPage, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*NotificationPage), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func newModerationServiceForTest(reports *MockReportRepository, notifications *MockNotificationService, activity *MockActivityService, now time.Time) ModerationService {
	return &moderationService{
		reports:       reports,
		notifications: notifications,
		activity:      activity,
		now:           func() time.Time { return now },
	}
}

func TestModerationService_ResolveReport(t *testing.T) {
	moderatorID := uuid.New()
	reporterID := uuid.New()
	reportedUserID := uuid.New()
	reportID := uuid.New()
	fixedNow := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	openReport := func() *model.ContentReport {
		return &model.ContentReport{
			ID:             reportID,
			ReporterID:     reporterID,
			ReportedUserID: reportedUserID,
			Status:         model.ReportStatusPending,
			Priority:       model.ReportPriorityMedium,
		}
	}

	tests := []struct {
		name          string
		status        model.ReportStatus
		setupMock     func(*MockReportRepository, *MockNotificationService, *MockActivityService)
		expectedError error
	}{
		{
			// Resolving fans out to both parties: the reporter hears the
			// outcome and the reported user gets a neutral notice.
			name:   "resolved notifies reporter and reported user",
			status: model.ReportStatusResolved,
			setupMock: func(mReports *MockReportRepository, mNotify *MockNotificationService, mActivity *MockActivityService) {
				mReports.On("FindByID", mock.Anything, reportID).Return(openReport(), nil)
				mReports.On("Update", mock.Anything, mock.MatchedBy(func(r *model.ContentReport) bool {
					return r.Status == model.ReportStatusResolved && r.ResolvedByID != nil && *r.ResolvedByID == moderatorID
				})).Return(nil)
				mNotify.On("Notify", mock.Anything, reporterID, "Report update", mock.Anything, model.NotificationSuccess, mock.Anything).
					Return(&model.UserNotification{}, nil)
				mNotify.On("Notify", mock.Anything, reportedUserID, "Moderation notice", mock.Anything, model.NotificationInfo, mock.Anything).
					Return(&model.UserNotification{}, nil)
				mActivity.On("Log", mock.Anything, mock.Anything).Return()
			},
		},
		{
			// Dismissal only tells the reporter; the reported user never
			// learns a dismissed report existed.
			name:   "dismissed notifies reporter only",
			status: model.ReportStatusDismissed,
			setupMock: func(mReports *MockReportRepository, mNotify *MockNotificationService, mActivity *MockActivityService) {
				mReports.On("FindByID", mock.Anything, reportID).Return(openReport(), nil)
				mReports.On("Update", mock.Anything, mock.Anything).Return(nil)
				mNotify.On("Notify", mock.Anything, reporterID, "Report update", mock.Anything, model.NotificationSuccess, mock.Anything).
					Return(&model.UserNotification{}, nil)
				mActivity.On("Log", mock.Anything, mock.Anything).Return()
			},
		},
		{
			name:   "closed report rejects further resolution",
			status: model.ReportStatusResolved,
			setupMock: func(mReports *MockReportRepository, mNotify *MockNotificationService, mActivity *MockActivityService) {
				closed := openReport()
				closed.Status = model.ReportStatusDismissed
				mReports.On("FindByID", mock.Anything, reportID).Return(closed, nil)
			},
			expectedError: ErrReportClosed,
		},
		{
			name:          "pending is not a resolution status",
			status:        model.ReportStatusPending,
			setupMock:     func(mReports *MockReportRepository, mNotify *MockNotificationService, mActivity *MockActivityService) {},
			expectedError: ErrInvalidTransition,
		},
		{
			name:   "missing report",
			status: model.ReportStatusResolved,
			setupMock: func(mReports *MockReportRepository, mNotify *MockNotificationService, mActivity *MockActivityService) {
				mReports.On("FindByID", mock.Anything, reportID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrReportNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReports := new(MockReportRepository)
			mockNotify := new(MockNotificationService)
			mockActivity := new(MockActivityService)
			tt.setupMock(mockReports, mockNotify, mockActivity)

			service := newModerationServiceForTest(mockReports, mockNotify, mockActivity, fixedNow)
			report, err := service.ResolveReport(context.Background(), moderatorID, reportID, tt.status, "reviewed")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, report)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, report)
				assert.Equal(t, tt.status, report.Status)
			}

			mockReports.AssertExpectations(t)
			mockNotify.AssertExpectations(t)
		})
	}
}

func TestModerationService_RecordAction(t *testing.T) {
	moderatorID := uuid.New()
	reportedUserID := uuid.New()
	reportID := uuid.New()
	fixedNow := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	openReport := func() *model.ContentReport {
		return &model.ContentReport{
			ID:             reportID,
			ReporterID:     uuid.New(),
			ReportedUserID: reportedUserID,
			Status:         model.ReportStatusPending,
			Priority:       model.ReportPriorityMedium,
		}
	}

	tests := []struct {
		name          string
		action        ModerationAction
		setupMock     func(*MockReportRepository, *MockNotificationService, *MockActivityService)
		check         func(*testing.T, *model.ContentReport)
		expectedError error
	}{
		{
			name:   "warn notifies the reported user",
			action: ModerationWarn,
			setupMock: func(mReports *MockReportRepository, mNotify *MockNotificationService, mActivity *MockActivityService) {
				mReports.On("FindByID", mock.Anything, reportID).Return(openReport(), nil)
				mNotify.On("Notify", mock.Anything, reportedUserID, "Moderation warning", mock.Anything, model.NotificationWarning, mock.Anything).
					Return(&model.UserNotification{}, nil)
				mActivity.On("Log", mock.Anything, mock.Anything).Return()
			},
		},
		{
			name:   "hide soft-deletes the report",
			action: ModerationHide,
			setupMock: func(mReports *MockReportRepository, mNotify *MockNotificationService, mActivity *MockActivityService) {
				mReports.On("FindByID", mock.Anything, reportID).Return(openReport(), nil)
				mReports.On("Update", mock.Anything, mock.MatchedBy(func(r *model.ContentReport) bool {
					return r.IsDeleted()
				})).Return(nil)
				mActivity.On("Log", mock.Anything, mock.Anything).Return()
			},
			check: func(t *testing.T, r *model.ContentReport) {
				assert.True(t, r.IsDeleted())
			},
		},
		{
			name:   "escalate bumps priority and moves to reviewing",
			action: ModerationEscalate,
			setupMock: func(mReports *MockReportRepository, mNotify *MockNotificationService, mActivity *MockActivityService) {
				mReports.On("FindByID", mock.Anything, reportID).Return(openReport(), nil)
				mReports.On("Update", mock.Anything, mock.Anything).Return(nil)
				mActivity.On("Log", mock.Anything, mock.Anything).Return()
			},
			check: func(t *testing.T, r *model.ContentReport) {
				assert.Equal(t, model.ReportPriorityHigh, r.Priority)
				assert.Equal(t, model.ReportStatusReviewing, r.Status)
			},
		},
		{
			name:   "closed report rejects actions",
			action: ModerationWarn,
			setupMock: func(mReports *MockReportRepository, mNotify *MockNotificationService, mActivity *MockActivityService) {
				closed := openReport()
				closed.Status = model.ReportStatusResolved
				mReports.On("FindByID", mock.Anything, reportID).Return(closed, nil)
			},
			expectedError: ErrReportClosed,
		},
		{
			name:   "unknown action",
			action: ModerationAction("banish"),
			setupMock: func(mReports *MockReportRepository, mNotify *MockNotificationService, mActivity *MockActivityService) {
				mReports.On("FindByID", mock.Anything, reportID).Return(openReport(), nil)
			},
			expectedError: ErrUnknownModerationAction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReports := new(MockReportRepository)
			mockNotify := new(MockNotificationService)
			mockActivity := new(MockActivityService)
			tt.setupMock(mockReports, mockNotify, mockActivity)

			service := newModerationServiceForTest(mockReports, mockNotify, mockActivity, fixedNow)
			report, err := service.RecordAction(context.Background(), moderatorID, reportID, tt.action)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, report)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, report)
				if tt.check != nil {
					tt.check(t, report)
				}
			}

			mockReports.AssertExpectations(t)
			mockNotify.AssertExpectations(t)
		})
	}
}

func TestModerationService_CreateReport(t *testing.T) {
	reporterID := uuid.New()

	t.Run("rejects self-reports", func(t *testing.T) {
		mockReports := new(MockReportRepository)
		mockNotify := new(MockNotificationService)
		mockActivity := new(MockActivityService)

		service := newModerationServiceForTest(mockReports, mockNotify, mockActivity, time.Now())
		report, err := service.CreateReport(context.Background(), reporterID, reporterID, "expense", nil, "spam")

		assert.ErrorIs(t, err, ErrSelfReport)
		assert.Nil(t, report)
	})

	t.Run("new reports start pending at medium priority", func(t *testing.T) {
		mockReports := new(MockReportRepository)
		mockNotify := new(MockNotificationService)
		mockActivity := new(MockActivityService)
		mockReports.On("Create", mock.Anything, mock.AnythingOfType("*model.ContentReport")).Return(nil)
		mockActivity.On("Log", mock.Anything, mock.Anything).Return()

		service := newModerationServiceForTest(mockReports, mockNotify, mockActivity, time.Now())
		report, err := service.CreateReport(context.Background(), reporterID, uuid.New(), "expense", nil, "spam")

		assert.NoError(t, err)
		assert.Equal(t, model.ReportStatusPending, report.Status)
		assert.Equal(t, model.ReportPriorityMedium, report.Priority)
		mockReports.AssertExpectations(t)
	})
}
