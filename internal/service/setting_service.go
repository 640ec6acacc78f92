package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/model"
	"fintrack/internal/repository"
)

// ErrInvalidSettingValue is returned when a value does not match its
// declared setting type.
var ErrInvalidSettingValue = errors.New("setting value does not match declared type")

// SettingService manages admin system settings.
type SettingService interface {
	Upsert(ctx context.Context, adminID uuid.UUID, key string, typ model.SettingType, rawValue json.RawMessage) (*model.Setting, error)
	Get(ctx context.Context, key string) (*model.Setting, error)
	List(ctx context.Context) ([]model.Setting, error)
}

type settingService struct {
	repo     repository.SettingRepository
	activity ActivityService
}

// NewSettingService builds a SettingService.
func NewSettingService(repo repository.SettingRepository, activity ActivityService) SettingService {
	return &settingService{repo: repo, activity: activity}
}

// Upsert stores a setting after verifying the raw JSON value matches the
// declared type, so a number setting can never hold a string.
func (s *settingService) Upsert(ctx context.Context, adminID uuid.UUID, key string, typ model.SettingType, rawValue json.RawMessage) (*model.Setting, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidSettingValue, typ)
	}
	if err := checkSettingShape(typ, rawValue); err != nil {
		return nil, err
	}

	setting := &model.Setting{
		Key:       key,
		Type:      typ,
		Value:     datatypes.JSON(rawValue),
		UpdatedBy: &adminID,
	}
	if err := s.repo.Upsert(ctx, setting); err != nil {
		return nil, err
	}
	s.activity.Log(ctx, ActivityEntry{
		UserID:       adminID,
		ActionType:   model.ActionUpdate,
		ResourceType: "setting",
		Description:  fmt.Sprintf("setting %q updated", key),
		Metadata:     map[string]any{"key": key, "type": string(typ)},
	})
	return setting, nil
}

func (s *settingService) Get(ctx context.Context, key string) (*model.Setting, error) {
	setting, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return setting, nil
}

func (s *settingService) List(ctx context.Context) ([]model.Setting, error) {
	return s.repo.List(ctx)
}

func checkSettingShape(typ model.SettingType, raw json.RawMessage) error {
	switch typ {
	case model.SettingText:
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("%w: want string", ErrInvalidSettingValue)
		}
	case model.SettingNumber:
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("%w: want number", ErrInvalidSettingValue)
		}
	case model.SettingBoolean:
		var v bool
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("%w: want boolean", ErrInvalidSettingValue)
		}
	case model.SettingJSON:
		if !json.Valid(raw) {
			return fmt.Errorf("%w: want valid JSON", ErrInvalidSettingValue)
		}
	}
	return nil
}
