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

// AnnouncementInput carries announcement fields from the handler layer.
type AnnouncementInput struct {
	Title    string
	Body     string
	Audience string
	StartsAt time.Time
	EndsAt   *time.Time
}

// AnnouncementService manages admin-published announcements.
type AnnouncementService interface {
	Create(ctx context.Context, adminID uuid.UUID, in AnnouncementInput) (*model.Announcement, error)
	Update(ctx context.Context, adminID, id uuid.UUID, in AnnouncementInput) (*model.Announcement, error)
	Delete(ctx context.Context, adminID, id uuid.UUID) error
	ListActive(ctx context.Context) ([]model.Announcement, error)
	ListAll(ctx context.Context) ([]model.Announcement, error)
}

type announcementService struct {
	repo     repository.AnnouncementRepository
	activity ActivityService
	now      func() time.Time
}

// NewAnnouncementService builds an AnnouncementService.
func NewAnnouncementService(repo repository.AnnouncementRepository, activity ActivityService) AnnouncementService {
	return &announcementService{repo: repo, activity: activity, now: time.Now}
}

func (s *announcementService) Create(ctx context.Context, adminID uuid.UUID, in AnnouncementInput) (*model.Announcement, error) {
	audience := in.Audience
	if audience == "" {
		audience = "all"
	}
	a := &model.Announcement{
		Title:     in.Title,
		Body:      in.Body,
		Audience:  audience,
		StartsAt:  in.StartsAt,
		EndsAt:    in.EndsAt,
		CreatedBy: adminID,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	s.activity.Log(ctx, ActivityEntry{
		UserID:       adminID,
		ActionType:   model.ActionCreate,
		ResourceType: "announcement",
		ResourceID:   &a.ID,
		Description:  "announcement published",
	})
	return a, nil
}

func (s *announcementService) Update(ctx context.Context, adminID, id uuid.UUID, in AnnouncementInput) (*model.Announcement, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Title = in.Title
	a.Body = in.Body
	if in.Audience != "" {
		a.Audience = in.Audience
	}
	a.StartsAt = in.StartsAt
	a.EndsAt = in.EndsAt
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	s.activity.Log(ctx, ActivityEntry{
		UserID:       adminID,
		ActionType:   model.ActionUpdate,
		ResourceType: "announcement",
		ResourceID:   &a.ID,
		Description:  "announcement updated",
	})
	return a, nil
}

// Delete soft-deletes the announcement; the row is retained.
func (s *announcementService) Delete(ctx context.Context, adminID, id uuid.UUID) error {
	a, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	a.SoftDelete(s.now())
	if err := s.repo.Update(ctx, a); err != nil {
		return err
	}
	s.activity.Log(ctx, ActivityEntry{
		UserID:       adminID,
		ActionType:   model.ActionDelete,
		ResourceType: "announcement",
		ResourceID:   &id,
		Description:  "announcement removed",
	})
	return nil
}

func (s *announcementService) ListActive(ctx context.Context) ([]model.Announcement, error) {
	return s.repo.ListActive(ctx, s.now())
}

func (s *announcementService) ListAll(ctx context.Context) ([]model.Announcement, error) {
	return s.repo.ListAll(ctx)
}

func (s *announcementService) find(ctx context.Context, id uuid.UUID) (*model.Announcement, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if a.IsDeleted() {
		return nil, apperrors.ErrNotFound
	}
	return a, nil
}
