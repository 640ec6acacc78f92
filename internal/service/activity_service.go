package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"fintrack/internal/model"
	"fintrack/internal/repository"
)

// ActivityEntry is the caller-facing shape of an audit record.
type ActivityEntry struct {
	UserID       uuid.UUID
	ActionType   model.ActionType
	ResourceType string
	ResourceID   *uuid.UUID
	Description  string
	IPAddress    string
	UserAgent    string
	Metadata     map[string]any
}

// ActivityService records and lists audit activity.
type ActivityService interface {
	// Log appends an audit record. It is best-effort: a failure is written
	// to the operational log and never propagated, so the business
	// operation it is attached to cannot be aborted by audit trouble.
	Log(ctx context.Context, entry ActivityEntry)
	// List returns activity pages. With canReadAll the whole log is
	// visible; otherwise only the caller's own entries.
	List(ctx context.Context, userID uuid.UUID, canReadAll bool, page, limit int) ([]model.ActivityLog, int64, error)
}

type activityService struct {
	repo repository.ActivityRepository
}

// NewActivityService builds an ActivityService.
func NewActivityService(repo repository.ActivityRepository) ActivityService {
	return &activityService{repo: repo}
}

func (s *activityService) Log(ctx context.Context, entry ActivityEntry) {
	record := &model.ActivityLog{
		UserID:       entry.UserID,
		ActionType:   entry.ActionType,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		Description:  entry.Description,
		IPAddress:    entry.IPAddress,
		UserAgent:    entry.UserAgent,
	}
	if entry.Metadata != nil {
		record.Metadata = datatypes.JSONMap(entry.Metadata)
	}
	if err := s.repo.Create(ctx, record); err != nil {
		log.Printf("activity log write failed (action=%s resource=%s user=%s): %v",
			entry.ActionType, entry.ResourceType, entry.UserID, err)
	}
}

func (s *activityService) List(ctx context.Context, userID uuid.UUID, canReadAll bool, page, limit int) ([]model.ActivityLog, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if canReadAll {
		return s.repo.ListAll(ctx, page, limit)
	}
	return s.repo.ListByUser(ctx, userID, page, limit)
}
