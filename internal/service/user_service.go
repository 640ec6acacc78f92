package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/model"
	"fintrack/internal/repository"
)

var (
	// ErrSelfStatusChange is returned when an admin suspends or deletes
	// their own account.
	ErrSelfStatusChange = errors.New("cannot change the status of your own account")
	// ErrInvalidStatus is returned for an unknown lifecycle status.
	ErrInvalidStatus = errors.New("invalid user status")
)

// UserService exposes profile operations and admin user management. Users are
// never physically removed: SetStatus with "deleted" is the only delete path.
type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, displayName, currency string) (*model.User, error)
	ListUsers(ctx context.Context, page, limit int) ([]model.User, int64, error)
	SetStatus(ctx context.Context, adminID, userID uuid.UUID, status model.UserStatus) (*model.User, error)
}

type userService struct {
	repo     repository.UserRepository
	activity ActivityService
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository, activity ActivityService) UserService {
	return &userService{repo: repo, activity: activity}
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, displayName, currency string) (*model.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	user.DisplayName = displayName
	if currency != "" {
		user.Currency = currency
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.activity.Log(ctx, ActivityEntry{
		UserID:       id,
		ActionType:   model.ActionUpdate,
		ResourceType: "user",
		ResourceID:   &id,
		Description:  "profile updated",
	})
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, page, limit int) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repo.List(ctx, page, limit)
}

// SetStatus moves a user between active, suspended and deleted. The row is
// retained in every case so the activity log keeps resolving, and admins
// cannot lock themselves out by changing their own status.
func (s *userService) SetStatus(ctx context.Context, adminID, userID uuid.UUID, status model.UserStatus) (*model.User, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	if adminID == userID && status != model.UserStatusActive {
		return nil, ErrSelfStatusChange
	}
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	previous := user.Status
	if err := s.repo.UpdateStatus(ctx, userID, status); err != nil {
		return nil, err
	}
	user.Status = status

	s.activity.Log(ctx, ActivityEntry{
		UserID:       adminID,
		ActionType:   model.ActionUpdate,
		ResourceType: "user",
		ResourceID:   &userID,
		Description:  fmt.Sprintf("user status changed to %s", status),
		Metadata:     map[string]any{"from": string(previous), "to": string(status)},
	})
	return user, nil
}
