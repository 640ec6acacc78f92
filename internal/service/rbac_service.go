package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fintrack/internal/model"
	"fintrack/internal/repository"
)

var (
	// ErrRoleNotFound is returned when a referenced role does not exist.
	ErrRoleNotFound = errors.New("role not found")
	// ErrRoleNameTaken is returned when creating a role with a duplicate name.
	ErrRoleNameTaken = errors.New("role name already exists")
	// ErrSystemRole is returned when deleting a system role.
	ErrSystemRole = errors.New("system roles cannot be deleted")
	// ErrRoleInUse is returned when deleting a role that users still hold.
	ErrRoleInUse = errors.New("role is still assigned to users")
	// ErrPermissionNotFound is returned when a referenced permission does not exist.
	ErrPermissionNotFound = errors.New("permission not found")
)

// RoleWithPermissions pairs a role with its full permission set for admin
// display.
type RoleWithPermissions struct {
	Role        model.Role         `json:"role"`
	Permissions []model.Permission `json:"permissions"`
}

// RBACService resolves permissions and administers roles. Permission checks
// are fresh queries on every call; correctness over latency, since they gate
// security-sensitive routes.
type RBACService interface {
	HasPermission(ctx context.Context, userID uuid.UUID, permissionName string) (bool, error)
	GetUserPermissions(ctx context.Context, userID uuid.UUID) ([]model.Permission, error)
	GetUserRoles(ctx context.Context, userID uuid.UUID) ([]model.Role, error)
	GetRoleWithPermissions(ctx context.Context, roleID uuid.UUID) (*RoleWithPermissions, error)
	SetUserRoles(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID) error

	CreateRole(ctx context.Context, name, description string) (*model.Role, error)
	UpdateRole(ctx context.Context, roleID uuid.UUID, name, description string) (*model.Role, error)
	DeleteRole(ctx context.Context, roleID uuid.UUID) error
	ListRoles(ctx context.Context) ([]model.Role, error)
	SetRolePermissions(ctx context.Context, roleID uuid.UUID, permissionNames []string) error
	ListPermissions(ctx context.Context) ([]model.Permission, error)
}

type rbacService struct {
	repo repository.RBACRepository
}

// NewRBACService builds an RBACService.
func NewRBACService(repo repository.RBACRepository) RBACService {
	return &rbacService{repo: repo}
}

// HasPermission reports whether the user can reach permissionName through any
// held role. Unknown users and unknown permission names both resolve to
// false: an absent grant is indistinguishable from a nonexistent permission,
// which keeps the posture default-deny.
func (s *rbacService) HasPermission(ctx context.Context, userID uuid.UUID, permissionName string) (bool, error) {
	if userID == uuid.Nil || permissionName == "" {
		return false, nil
	}
	return s.repo.UserHasPermission(ctx, userID, permissionName)
}

func (s *rbacService) GetUserPermissions(ctx context.Context, userID uuid.UUID) ([]model.Permission, error) {
	return s.repo.UserPermissions(ctx, userID)
}

func (s *rbacService) GetUserRoles(ctx context.Context, userID uuid.UUID) ([]model.Role, error) {
	return s.repo.UserRoles(ctx, userID)
}

func (s *rbacService) GetRoleWithPermissions(ctx context.Context, roleID uuid.UUID) (*RoleWithPermissions, error) {
	role, err := s.repo.FindRoleByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	perms, err := s.repo.RolePermissions(ctx, roleID)
	if err != nil {
		return nil, err
	}
	return &RoleWithPermissions{Role: *role, Permissions: perms}, nil
}

// SetUserRoles replaces the user's role set atomically. Every supplied role
// id is verified up front so a bad id surfaces as a validation error rather
// than an opaque foreign-key failure; the transaction inside the repository
// still guards against races.
func (s *rbacService) SetUserRoles(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID) error {
	for _, rid := range roleIDs {
		if _, err := s.repo.FindRoleByID(ctx, rid); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrRoleNotFound, rid)
			}
			return err
		}
	}
	return s.repo.ReplaceUserRoles(ctx, userID, roleIDs)
}

func (s *rbacService) CreateRole(ctx context.Context, name, description string) (*model.Role, error) {
	if existing, err := s.repo.FindRoleByName(ctx, name); err == nil && existing != nil {
		return nil, ErrRoleNameTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role := &model.Role{Name: name, Description: description}
	if err := s.repo.CreateRole(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *rbacService) UpdateRole(ctx context.Context, roleID uuid.UUID, name, description string) (*model.Role, error) {
	role, err := s.repo.FindRoleByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	if name != role.Name {
		if existing, err := s.repo.FindRoleByName(ctx, name); err == nil && existing != nil {
			return nil, ErrRoleNameTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	role.Name = name
	role.Description = description
	if err := s.repo.UpdateRole(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *rbacService) DeleteRole(ctx context.Context, roleID uuid.UUID) error {
	role, err := s.repo.FindRoleByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoleNotFound
		}
		return err
	}
	if role.IsSystem {
		return ErrSystemRole
	}
	holders, err := s.repo.CountUsersWithRole(ctx, roleID)
	if err != nil {
		return err
	}
	if holders > 0 {
		return ErrRoleInUse
	}
	return s.repo.DeleteRole(ctx, roleID)
}

func (s *rbacService) ListRoles(ctx context.Context) ([]model.Role, error) {
	return s.repo.ListRoles(ctx)
}

// SetRolePermissions replaces a role's permission set. Permission names are
// resolved to ids first so an unknown name fails the whole call.
func (s *rbacService) SetRolePermissions(ctx context.Context, roleID uuid.UUID, permissionNames []string) error {
	if _, err := s.repo.FindRoleByID(ctx, roleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoleNotFound
		}
		return err
	}
	ids := make([]uuid.UUID, 0, len(permissionNames))
	for _, name := range permissionNames {
		perm, err := s.repo.FindPermissionByName(ctx, name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrPermissionNotFound, name)
			}
			return err
		}
		ids = append(ids, perm.ID)
	}
	return s.repo.ReplaceRolePermissions(ctx, roleID, ids)
}

func (s *rbacService) ListPermissions(ctx context.Context) ([]model.Permission, error) {
	return s.repo.ListPermissions(ctx)
}
