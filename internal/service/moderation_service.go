package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fintrack/internal/model"
	"fintrack/internal/repository"
)

var (
	// ErrReportNotFound is returned when a referenced report does not exist.
	ErrReportNotFound = errors.New("report not found")
	// ErrReportClosed is returned when acting on a resolved or dismissed report.
	ErrReportClosed = errors.New("report is already closed")
	// ErrInvalidTransition is returned for a status move the report state
	// machine does not admit.
	ErrInvalidTransition = errors.New("invalid report status transition")
	// ErrUnknownModerationAction is returned for an unrecognized action verb.
	ErrUnknownModerationAction = errors.New("unknown moderation action")
	// ErrSelfReport is returned when a user reports themselves.
	ErrSelfReport = errors.New("cannot report yourself")
)

// ModerationAction is an admin verb applied to a report.
type ModerationAction string

const (
	ModerationWarn     ModerationAction = "warn"
	ModerationHide     ModerationAction = "hide"
	ModerationEscalate ModerationAction = "escalate"
)

// ModerationService owns the content report lifecycle and its notification
// fan-out.
type ModerationService interface {
	CreateReport(ctx context.Context, reporterID, reportedUserID uuid.UUID, contentType string, contentID *uuid.UUID, reason string) (*model.ContentReport, error)
	ListQueue(ctx context.Context, status model.ReportStatus, page, limit int) ([]model.ContentReport, int64, error)
	ResolveReport(ctx context.Context, moderatorID, reportID uuid.UUID, status model.ReportStatus, feedbackMessage string) (*model.ContentReport, error)
	RecordAction(ctx context.Context, moderatorID, reportID uuid.UUID, action ModerationAction) (*model.ContentReport, error)
}

type moderationService struct {
	reports       repository.ReportRepository
	notifications NotificationService
	activity      ActivityService
	now           func() time.Time
}

// NewModerationService builds a ModerationService.
func NewModerationService(reports repository.ReportRepository, notifications NotificationService, activity ActivityService) ModerationService {
	return &moderationService{
		reports:       reports,
		notifications: notifications,
		activity:      activity,
		now:           time.Now,
	}
}

func (s *moderationService) CreateReport(ctx context.Context, reporterID, reportedUserID uuid.UUID, contentType string, contentID *uuid.UUID, reason string) (*model.ContentReport, error) {
	if reporterID == reportedUserID {
		return nil, ErrSelfReport
	}
	report := &model.ContentReport{
		ReporterID:     reporterID,
		ReportedUserID: reportedUserID,
		ContentType:    contentType,
		ContentID:      contentID,
		Reason:         reason,
		Status:         model.ReportStatusPending,
		Priority:       model.ReportPriorityMedium,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}
	s.activity.Log(ctx, ActivityEntry{
		UserID:       reporterID,
		ActionType:   model.ActionCreate,
		ResourceType: "content_report",
		ResourceID:   &report.ID,
		Description:  "content report filed",
	})
	return report, nil
}

func (s *moderationService) ListQueue(ctx context.Context, status model.ReportStatus, page, limit int) ([]model.ContentReport, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.reports.ListQueue(ctx, status, page, limit)
}

// ResolveReport closes a report as resolved or dismissed and fans out
// notifications. The reporter always gets a success notification; if the
// reported user differs, they get an info notification. The two inserts are
// deliberately not atomic: a failed second insert is logged and the
// resolution stands.
func (s *moderationService) ResolveReport(ctx context.Context, moderatorID, reportID uuid.UUID, status model.ReportStatus, feedbackMessage string) (*model.ContentReport, error) {
	if status != model.ReportStatusResolved && status != model.ReportStatusDismissed {
		return nil, ErrInvalidTransition
	}
	report, err := s.reports.FindByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	if report.Status.Terminal() {
		return nil, ErrReportClosed
	}
	if !report.Status.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	report.Status = status
	report.FeedbackMessage = feedbackMessage
	report.ResolvedByID = &moderatorID
	if err := s.reports.Update(ctx, report); err != nil {
		return nil, err
	}

	s.activity.Log(ctx, ActivityEntry{
		UserID:       moderatorID,
		ActionType:   model.ActionUpdate,
		ResourceType: "content_report",
		ResourceID:   &report.ID,
		Description:  fmt.Sprintf("report %s", status),
		Metadata:     map[string]any{"status": string(status)},
	})

	message := fmt.Sprintf("Your report has been %s.", status)
	if feedbackMessage != "" {
		message = fmt.Sprintf("Your report has been %s: %s", status, feedbackMessage)
	}
	if _, err := s.notifications.Notify(ctx, report.ReporterID, "Report update", message, model.NotificationSuccess, &report.ID); err != nil {
		log.Printf("reporter notification for report %s failed: %v", report.ID, err)
	}
	if status == model.ReportStatusResolved && report.ReportedUserID != report.ReporterID {
		if _, err := s.notifications.Notify(ctx, report.ReportedUserID, "Moderation notice",
			"A report involving your content has been reviewed by moderators.",
			model.NotificationInfo, &report.ID); err != nil {
			log.Printf("reported-user notification for report %s failed: %v", report.ID, err)
		}
	}
	return report, nil
}

// RecordAction applies a moderation verb to an open report: warn notifies the
// reported user, hide soft-deletes the report from queue views, escalate
// bumps its priority and moves it to reviewing.
func (s *moderationService) RecordAction(ctx context.Context, moderatorID, reportID uuid.UUID, action ModerationAction) (*model.ContentReport, error) {
	report, err := s.reports.FindByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	if report.Status.Terminal() {
		return nil, ErrReportClosed
	}

	switch action {
	case ModerationWarn:
		if _, err := s.notifications.Notify(ctx, report.ReportedUserID, "Moderation warning",
			"Your content has been flagged by moderators. Please review the community guidelines.",
			model.NotificationWarning, &report.ID); err != nil {
			log.Printf("warn notification for report %s failed: %v", report.ID, err)
		}
	case ModerationHide:
		report.SoftDelete(s.now())
		if err := s.reports.Update(ctx, report); err != nil {
			return nil, err
		}
	case ModerationEscalate:
		report.Priority = model.ReportPriorityHigh
		if report.Status == model.ReportStatusPending {
			report.Status = model.ReportStatusReviewing
		}
		if err := s.reports.Update(ctx, report); err != nil {
			return nil, err
		}
	default:
		return nil, ErrUnknownModerationAction
	}

	s.activity.Log(ctx, ActivityEntry{
		UserID:       moderatorID,
		ActionType:   model.ActionUpdate,
		ResourceType: "content_report",
		ResourceID:   &report.ID,
		Description:  fmt.Sprintf("moderation action: %s", action),
		Metadata:     map[string]any{"action": string(action)},
	})
	return report, nil
}
