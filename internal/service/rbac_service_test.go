package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"fintrack/internal/model"
)

func TestRBACService_HasPermission(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		userID         uuid.UUID
		permission     string
		setupMock      func(*MockRBACRepository)
		expectedResult bool
	}{
		{
			name:       "granted through a role",
			userID:     userID,
			permission: model.PermUsersRead,
			setupMock: func(m *MockRBACRepository) {
				m.On("UserHasPermission", mock.Anything, userID, model.PermUsersRead).Return(true, nil)
			},
			expectedResult: true,
		},
		{
			// A user with no roles is denied everything.
			name:       "no roles means no grants",
			userID:     userID,
			permission: model.PermUsersRead,
			setupMock: func(m *MockRBACRepository) {
				m.On("UserHasPermission", mock.Anything, userID, model.PermUsersRead).Return(false, nil)
			},
			expectedResult: false,
		},
		{
			// An unknown permission name resolves to false, not an error, so
			// callers cannot distinguish it from an absent grant.
			name:       "unknown permission name",
			userID:     userID,
			permission: "users:fly",
			setupMock: func(m *MockRBACRepository) {
				m.On("UserHasPermission", mock.Anything, userID, "users:fly").Return(false, nil)
			},
			expectedResult: false,
		},
		{
			name:           "nil user id short-circuits to deny",
			userID:         uuid.Nil,
			permission:     model.PermUsersRead,
			setupMock:      func(m *MockRBACRepository) {},
			expectedResult: false,
		},
		{
			name:           "empty permission name short-circuits to deny",
			userID:         userID,
			permission:     "",
			setupMock:      func(m *MockRBACRepository) {},
			expectedResult: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRBACRepository)
			tt.setupMock(mockRepo)

			service := NewRBACService(mockRepo)
			allowed, err := service.HasPermission(context.Background(), tt.userID, tt.permission)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedResult, allowed)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestRBACService_SetUserRoles(t *testing.T) {
	userID := uuid.New()
	roleA := uuid.New()
	roleB := uuid.New()

	tests := []struct {
		name          string
		roleIDs       []uuid.UUID
		setupMock     func(*MockRBACRepository)
		expectedError error
	}{
		{
			name:    "replaces the whole set at once",
			roleIDs: []uuid.UUID{roleA, roleB},
			setupMock: func(m *MockRBACRepository) {
				m.On("FindRoleByID", mock.Anything, roleA).Return(&model.Role{ID: roleA}, nil)
				m.On("FindRoleByID", mock.Anything, roleB).Return(&model.Role{ID: roleB}, nil)
				m.On("ReplaceUserRoles", mock.Anything, userID, []uuid.UUID{roleA, roleB}).Return(nil)
			},
		},
		{
			// Clearing all roles is a legal replacement; the user just loses
			// every permission.
			name:    "empty set clears all roles",
			roleIDs: []uuid.UUID{},
			setupMock: func(m *MockRBACRepository) {
				m.On("ReplaceUserRoles", mock.Anything, userID, []uuid.UUID{}).Return(nil)
			},
		},
		{
			name:    "unknown role id fails the whole call",
			roleIDs: []uuid.UUID{roleA, roleB},
			setupMock: func(m *MockRBACRepository) {
				m.On("FindRoleByID", mock.Anything, roleA).Return(&model.Role{ID: roleA}, nil)
				m.On("FindRoleByID", mock.Anything, roleB).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrRoleNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRBACRepository)
			tt.setupMock(mockRepo)

			service := NewRBACService(mockRepo)
			err := service.SetUserRoles(context.Background(), userID, tt.roleIDs)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestRBACService_DeleteRole(t *testing.T) {
	roleID := uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockRBACRepository)
		expectedError error
	}{
		{
			name: "deletes an unused custom role",
			setupMock: func(m *MockRBACRepository) {
				m.On("FindRoleByID", mock.Anything, roleID).Return(&model.Role{ID: roleID, Name: "auditor"}, nil)
				m.On("CountUsersWithRole", mock.Anything, roleID).Return(int64(0), nil)
				m.On("DeleteRole", mock.Anything, roleID).Return(nil)
			},
		},
		{
			name: "refuses system roles",
			setupMock: func(m *MockRBACRepository) {
				m.On("FindRoleByID", mock.Anything, roleID).Return(&model.Role{ID: roleID, Name: "admin", IsSystem: true}, nil)
			},
			expectedError: ErrSystemRole,
		},
		{
			name: "refuses roles still held by users",
			setupMock: func(m *MockRBACRepository) {
				m.On("FindRoleByID", mock.Anything, roleID).Return(&model.Role{ID: roleID, Name: "auditor"}, nil)
				m.On("CountUsersWithRole", mock.Anything, roleID).Return(int64(3), nil)
			},
			expectedError: ErrRoleInUse,
		},
		{
			name: "unknown role",
			setupMock: func(m *MockRBACRepository) {
				m.On("FindRoleByID", mock.Anything, roleID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrRoleNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRBACRepository)
			tt.setupMock(mockRepo)

			service := NewRBACService(mockRepo)
			err := service.DeleteRole(context.Background(), roleID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestRBACService_SetRolePermissions(t *testing.T) {
	roleID := uuid.New()
	readPerm := model.Permission{ID: uuid.New(), Name: model.PermUsersRead}

	t.Run("resolves names to ids before replacing", func(t *testing.T) {
		mockRepo := new(MockRBACRepository)
		mockRepo.On("FindRoleByID", mock.Anything, roleID).Return(&model.Role{ID: roleID}, nil)
		mockRepo.On("FindPermissionByName", mock.Anything, model.PermUsersRead).Return(&readPerm, nil)
		mockRepo.On("ReplaceRolePermissions", mock.Anything, roleID, []uuid.UUID{readPerm.ID}).Return(nil)

		service := NewRBACService(mockRepo)
		err := service.SetRolePermissions(context.Background(), roleID, []string{model.PermUsersRead})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown permission name fails the whole call", func(t *testing.T) {
		mockRepo := new(MockRBACRepository)
		mockRepo.On("FindRoleByID", mock.Anything, roleID).Return(&model.Role{ID: roleID}, nil)
		mockRepo.On("FindPermissionByName", mock.Anything, "users:fly").Return(nil, gorm.ErrRecordNotFound)

		service := NewRBACService(mockRepo)
		err := service.SetRolePermissions(context.Background(), roleID, []string{"users:fly"})

		assert.ErrorIs(t, err, ErrPermissionNotFound)
		mockRepo.AssertExpectations(t)
	})
}
