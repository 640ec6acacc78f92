package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fintrack/internal/auth"
	"fintrack/internal/model"
	"fintrack/internal/repository"
)

const bcryptCost = 10

// defaultRoleName is assigned to every new registration.
const defaultRoleName = "user"

var (
	// ErrInvalidCredentials is the uniform failure returned for every
	// rejected login: wrong username, wrong password, suspended or deleted
	// account. The specific cause only reaches the server-side security
	// log, never the client.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrEmailTaken is returned when registering an existing email.
	ErrEmailTaken = errors.New("email already exists")
	// ErrInvalidRefreshToken is returned when refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// AuthService handles registration, credential checks and token lifecycle.
type AuthService interface {
	Register(ctx context.Context, username, email, password, displayName string) (accessToken, refreshToken string, user *model.User, err error)
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, user *model.User, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	userRepo   repository.UserRepository
	rbacRepo   repository.RBACRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	activity   ActivityService
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	rbacRepo repository.RBACRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	activity ActivityService,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		rbacRepo:   rbacRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
		activity:   activity,
	}
}

// Register creates a new active user with a hashed password, assigns the
// default role and logs them in.
func (s *authService) Register(ctx context.Context, username, email, password, displayName string) (string, string, *model.User, error) {
	if existing, err := s.userRepo.FindByUsername(ctx, username); err == nil && existing != nil {
		return "", "", nil, ErrUsernameTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", "", nil, fmt.Errorf("check username: %w", err)
	}
	if existing, err := s.userRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		return "", "", nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", "", nil, fmt.Errorf("check email: %w", err)
	}

	// bcrypt embeds a fresh random salt per hash; there is no shared salt.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", "", nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		DisplayName:  displayName,
		Status:       model.UserStatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", "", nil, fmt.Errorf("create user: %w", err)
	}

	if role, err := s.rbacRepo.FindRoleByName(ctx, defaultRoleName); err == nil {
		if err := s.rbacRepo.ReplaceUserRoles(ctx, user.ID, []uuid.UUID{role.ID}); err != nil {
			log.Printf("assign default role to %s failed: %v", user.Username, err)
		}
	}

	accessToken, refreshToken, err := s.issueTokens(ctx, user)
	if err != nil {
		return "", "", nil, err
	}

	s.activity.Log(ctx, ActivityEntry{
		UserID:       user.ID,
		ActionType:   model.ActionCreate,
		ResourceType: "user",
		ResourceID:   &user.ID,
		Description:  "user registered",
	})
	return accessToken, refreshToken, user, nil
}

// Login authenticates a user and returns access and refresh tokens. The
// account-status gate runs after the credential match so the audit trail can
// distinguish bad credentials from a suspended or deleted account, while the
// caller always sees the same 401.
func (s *authService) Login(ctx context.Context, username, password string) (string, string, *model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		log.Printf("login rejected for %q: unknown username", username)
		return "", "", nil, ErrInvalidCredentials
	}

	// bcrypt compare is constant-time over the hash contents.
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Printf("login rejected for %q: wrong password", username)
		return "", "", nil, ErrInvalidCredentials
	}

	switch user.Status {
	case model.UserStatusSuspended:
		log.Printf("login rejected for %q: account suspended", username)
		s.activity.Log(ctx, ActivityEntry{
			UserID:       user.ID,
			ActionType:   model.ActionLogin,
			ResourceType: "session",
			Description:  "login rejected",
			Metadata:     map[string]any{"reason": "account suspended"},
		})
		return "", "", nil, ErrInvalidCredentials
	case model.UserStatusDeleted:
		log.Printf("login rejected for %q: account no longer exists", username)
		s.activity.Log(ctx, ActivityEntry{
			UserID:       user.ID,
			ActionType:   model.ActionLogin,
			ResourceType: "session",
			Description:  "login rejected",
			Metadata:     map[string]any{"reason": "account no longer exists"},
		})
		return "", "", nil, ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.issueTokens(ctx, user)
	if err != nil {
		return "", "", nil, err
	}

	s.activity.Log(ctx, ActivityEntry{
		UserID:       user.ID,
		ActionType:   model.ActionLogin,
		ResourceType: "session",
		Description:  "user logged in",
	})
	return accessToken, refreshToken, user, nil
}

func (s *authService) issueTokens(ctx context.Context, user *model.User) (string, string, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return "", "", fmt.Errorf("generate access token: %w", err)
	}
	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Username)
	if err != nil {
		return "", "", fmt.Errorf("generate refresh token: %w", err)
	}
	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, user.Username, auth.RefreshTokenExpiry); err != nil {
		return "", "", fmt.Errorf("store refresh token: %w", err)
	}
	return accessToken, refreshToken, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}
	storedUserID, storedUsername, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}
	if storedUserID != claims.UserID || storedUsername != claims.Username {
		return "", ErrInvalidRefreshToken
	}

	// The status gate applies to refresh too: a suspended account must not
	// keep minting access tokens from an old refresh token.
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil || !user.IsActive() {
		return "", ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(claims.UserID, claims.Username)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout invalidates a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return ErrInvalidRefreshToken
	}
	if claims, err := s.jwtService.ValidateToken(refreshToken); err == nil {
		s.activity.Log(ctx, ActivityEntry{
			UserID:       claims.UserID,
			ActionType:   model.ActionLogout,
			ResourceType: "session",
			Description:  "user logged out",
		})
	}
	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}
