package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"fintrack/internal/model"
)

// MockSettingRepository is a mock implementation of SettingRepository.
type MockSettingRepository struct {
	mock.Mock
}

func (m *MockSettingRepository) Upsert(ctx context.Context, setting *model.Setting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

func (m *MockSettingRepository) FindByKey(ctx context.Context, key string) (*model.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Setting), args.Error(1)
}

func (m *MockSettingRepository) List(ctx context.Context) ([]model.Setting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Setting), args.Error(1)
}

func TestSettingService_Upsert(t *testing.T) {
	adminID := uuid.New()

	tests := []struct {
		name      string
		key       string
		typ       model.SettingType
		value     string
		wantError bool
	}{
		{"text accepts a string", "site_name", model.SettingText, `"FinTrack"`, false},
		{"number accepts a float", "report_threshold", model.SettingNumber, `5`, false},
		{"boolean accepts a bool", "registration_open", model.SettingBoolean, `false`, false},
		{"json accepts an object", "limits", model.SettingJSON, `{"max": 10}`, false},
		{"number rejects a string", "report_threshold", model.SettingNumber, `"five"`, true},
		{"boolean rejects a number", "registration_open", model.SettingBoolean, `1`, true},
		{"text rejects an object", "site_name", model.SettingText, `{"a": 1}`, true},
		{"unknown type rejected", "blob", model.SettingType("blob"), `"x"`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockSettingRepository)
			mockActivity := new(MockActivityService)
			if !tt.wantError {
				mockRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(s *model.Setting) bool {
					return s.Key == tt.key && s.Type == tt.typ && s.UpdatedBy != nil && *s.UpdatedBy == adminID
				})).Return(nil)
				mockActivity.On("Log", mock.Anything, mock.Anything).Return()
			}

			service := NewSettingService(mockRepo, mockActivity)
			setting, err := service.Upsert(context.Background(), adminID, tt.key, tt.typ, json.RawMessage(tt.value))

			if tt.wantError {
				assert.ErrorIs(t, err, ErrInvalidSettingValue)
				assert.Nil(t, setting)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, setting)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}
