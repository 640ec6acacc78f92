package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fintrack/internal/auth"
	"fintrack/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, page, limit int) ([]model.User, int64, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.UserStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockRBACRepository is a mock implementation of RBACRepository.
type MockRBACRepository struct {
	mock.Mock
}

func (m *MockRBACRepository) CreateRole(ctx context.Context, role *model.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *MockRBACRepository) UpdateRole(ctx context.Context, role *model.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *MockRBACRepository) DeleteRole(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRBACRepository) FindRoleByID(ctx context.Context, id uuid.UUID) (*model.Role, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockRBACRepository) FindRoleByName(ctx context.Context, name string) (*model.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockRBACRepository) ListRoles(ctx context.Context) ([]model.Role, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Role), args.Error(1)
}

func (m *MockRBACRepository) CountUsersWithRole(ctx context.Context, roleID uuid.UUID) (int64, error) {
	args := m.Called(ctx, roleID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRBACRepository) CreatePermission(ctx context.Context, perm *model.Permission) error {
	args := m.Called(ctx, perm)
	return args.Error(0)
}

func (m *MockRBACRepository) FindPermissionByName(ctx context.Context, name string) (*model.Permission, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Permission), args.Error(1)
}

func (m *MockRBACRepository) ListPermissions(ctx context.Context) ([]model.Permission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Permission), args.Error(1)
}

func (m *MockRBACRepository) RolePermissions(ctx context.Context, roleID uuid.UUID) ([]model.Permission, error) {
	args := m.Called(ctx, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Permission), args.Error(1)
}

func (m *MockRBACRepository) ReplaceRolePermissions(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) error {
	args := m.Called(ctx, roleID, permissionIDs)
	return args.Error(0)
}

func (m *MockRBACRepository) UserRoles(ctx context.Context, userID uuid.UUID) ([]model.Role, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Role), args.Error(1)
}

func (m *MockRBACRepository) ReplaceUserRoles(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID) error {
	args := m.Called(ctx, userID, roleIDs)
	return args.Error(0)
}

func (m *MockRBACRepository) UserPermissions(ctx context.Context, userID uuid.UUID) ([]model.Permission, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Permission), args.Error(1)
}

func (m *MockRBACRepository) UserHasPermission(ctx context.Context, userID uuid.UUID, permissionName string) (bool, error) {
	args := m.Called(ctx, userID, permissionName)
	return args.Bool(0), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uuid.UUID, username string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, username, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uuid.UUID, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uuid.UUID), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// MockActivityService is a mock implementation of ActivityService.
type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) Log(ctx context.Context, entry ActivityEntry) {
	m.Called(ctx, entry)
}

func (m *MockActivityService) List(ctx context.Context, userID uuid.UUID, canReadAll bool, page, limit int) ([]model.ActivityLog, int64, error) {
	args := m.Called(ctx, userID, canReadAll, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.ActivityLog), args.Get(1).(int64), args.Error(2)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		email         string
		setupMock     func(*MockUserRepository, *MockRBACRepository, *MockTokenStore, *MockActivityService)
		expectedError error
	}{
		{
			name:     "successful registration",
			username: "alice",
			email:    "alice@example.com",
			setupMock: func(mUser *MockUserRepository, mRBAC *MockRBACRepository, mToken *MockTokenStore, mActivity *MockActivityService) {
				mUser.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				mUser.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
				mUser.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				defaultRole := &model.Role{ID: uuid.New(), Name: "user", IsSystem: true}
				mRBAC.On("FindRoleByName", mock.Anything, "user").Return(defaultRole, nil)
				mRBAC.On("ReplaceUserRoles", mock.Anything, mock.Anything, []uuid.UUID{defaultRole.ID}).Return(nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, "alice", auth.RefreshTokenExpiry).Return(nil)
				mActivity.On("Log", mock.Anything, mock.Anything).Return()
			},
			expectedError: nil,
		},
		{
			name:     "username already exists",
			username: "taken",
			email:    "new@example.com",
			setupMock: func(mUser *MockUserRepository, mRBAC *MockRBACRepository, mToken *MockTokenStore, mActivity *MockActivityService) {
				mUser.On("FindByUsername", mock.Anything, "taken").Return(&model.User{Username: "taken"}, nil)
			},
			expectedError: ErrUsernameTaken,
		},
		{
			name:     "email already exists",
			username: "bob",
			email:    "taken@example.com",
			setupMock: func(mUser *MockUserRepository, mRBAC *MockRBACRepository, mToken *MockTokenStore, mActivity *MockActivityService) {
				mUser.On("FindByUsername", mock.Anything, "bob").Return(nil, gorm.ErrRecordNotFound)
				mUser.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{Email: "taken@example.com"}, nil)
			},
			expectedError: ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			mockRBACRepo := new(MockRBACRepository)
			mockTokenStore := new(MockTokenStore)
			mockActivity := new(MockActivityService)
			tt.setupMock(mockUserRepo, mockRBACRepo, mockTokenStore, mockActivity)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockUserRepo, mockRBACRepo, jwtService, mockTokenStore, mockActivity)

			accessToken, refreshToken, user, err := service.Register(context.Background(), tt.username, tt.email, "password123", "Display Name")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.NotNil(t, user)
				assert.Equal(t, tt.username, user.Username)
				assert.Equal(t, model.UserStatusActive, user.Status)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, "password123", user.PasswordHash)
			}

			mockUserRepo.AssertExpectations(t)
			mockRBACRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcryptCost)

	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository, *MockTokenStore, *MockActivityService)
		expectedError error
	}{
		{
			name:     "successful login",
			username: "alice",
			password: "password123",
			setupMock: func(mUser *MockUserRepository, mToken *MockTokenStore, mActivity *MockActivityService) {
				mUser.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
					ID:           uuid.New(),
					Username:     "alice",
					PasswordHash: string(hashedPassword),
					Status:       model.UserStatusActive,
				}, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, "alice", auth.RefreshTokenExpiry).Return(nil)
				mActivity.On("Log", mock.Anything, mock.MatchedBy(func(e ActivityEntry) bool {
					return e.ActionType == model.ActionLogin && e.Description == "user logged in"
				})).Return()
			},
			expectedError: nil,
		},
		{
			name:     "unknown username",
			username: "ghost",
			password: "password123",
			setupMock: func(mUser *MockUserRepository, mToken *MockTokenStore, mActivity *MockActivityService) {
				mUser.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "wrong",
			setupMock: func(mUser *MockUserRepository, mToken *MockTokenStore, mActivity *MockActivityService) {
				mUser.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
					ID:           uuid.New(),
					Username:     "alice",
					PasswordHash: string(hashedPassword),
					Status:       model.UserStatusActive,
				}, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			// A suspended account fails with the same error the caller sees
			// for bad credentials; only the audit record carries the cause.
			name:     "suspended account",
			username: "suspended",
			password: "password123",
			setupMock: func(mUser *MockUserRepository, mToken *MockTokenStore, mActivity *MockActivityService) {
				mUser.On("FindByUsername", mock.Anything, "suspended").Return(&model.User{
					ID:           uuid.New(),
					Username:     "suspended",
					PasswordHash: string(hashedPassword),
					Status:       model.UserStatusSuspended,
				}, nil)
				mActivity.On("Log", mock.Anything, mock.MatchedBy(func(e ActivityEntry) bool {
					return e.ActionType == model.ActionLogin && e.Metadata["reason"] == "account suspended"
				})).Return()
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "deleted account",
			username: "gone",
			password: "password123",
			setupMock: func(mUser *MockUserRepository, mToken *MockTokenStore, mActivity *MockActivityService) {
				mUser.On("FindByUsername", mock.Anything, "gone").Return(&model.User{
					ID:           uuid.New(),
					Username:     "gone",
					PasswordHash: string(hashedPassword),
					Status:       model.UserStatusDeleted,
				}, nil)
				mActivity.On("Log", mock.Anything, mock.MatchedBy(func(e ActivityEntry) bool {
					return e.ActionType == model.ActionLogin && e.Metadata["reason"] == "account no longer exists"
				})).Return()
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			mockRBACRepo := new(MockRBACRepository)
			mockTokenStore := new(MockTokenStore)
			mockActivity := new(MockActivityService)
			tt.setupMock(mockUserRepo, mockTokenStore, mockActivity)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockUserRepo, mockRBACRepo, jwtService, mockTokenStore, mockActivity)

			accessToken, refreshToken, user, err := service.Login(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.NotNil(t, user)
			}

			mockUserRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
			mockActivity.AssertExpectations(t)
		})
	}
}

func TestAuthService_RefreshToken_InactiveUser(t *testing.T) {
	userID := uuid.New()
	jwtService := auth.NewJWTService("test-secret")
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(userID, "alice")
	assert.NoError(t, err)

	mockUserRepo := new(MockUserRepository)
	mockRBACRepo := new(MockRBACRepository)
	mockTokenStore := new(MockTokenStore)
	mockActivity := new(MockActivityService)

	mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(userID, "alice", nil)
	// The account was suspended after the refresh token was issued.
	mockUserRepo.On("FindByID", mock.Anything, userID).Return(&model.User{
		ID:       userID,
		Username: "alice",
		Status:   model.UserStatusSuspended,
	}, nil)

	service := NewAuthService(mockUserRepo, mockRBACRepo, jwtService, mockTokenStore, mockActivity)
	accessToken, err := service.RefreshToken(context.Background(), refreshToken)

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	assert.Empty(t, accessToken)
	mockUserRepo.AssertExpectations(t)
	mockTokenStore.AssertExpectations(t)
}
