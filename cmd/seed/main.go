package main

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fintrack/internal/config"
	"fintrack/internal/db"
	"fintrack/internal/model"
	"fintrack/internal/repository"
)

// Seeds the permission catalog, system roles, default categories and the
// initial administrator. Safe to run repeatedly; existing rows are kept.
func main() {
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.Permission{},
		&model.UserRole{},
		&model.RolePermission{},
		&model.Category{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	ctx := context.Background()
	rbacRepo := repository.NewRBACRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)

	permIDs, err := seedPermissions(ctx, rbacRepo)
	if err != nil {
		log.Fatalf("seed permissions: %v", err)
	}
	adminRole, err := seedRoles(ctx, rbacRepo, permIDs)
	if err != nil {
		log.Fatalf("seed roles: %v", err)
	}
	if err := seedCategories(ctx, categoryRepo); err != nil {
		log.Fatalf("seed categories: %v", err)
	}
	if err := seedAdmin(ctx, cfg, userRepo, rbacRepo, adminRole); err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	log.Println("seed complete")
}

type permDef struct {
	resource, action, description string
}

var permissionCatalog = []permDef{
	{"admin", "read", "Access the admin surface"},
	{"users", "read", "View user accounts and their roles"},
	{"users", "write", "Change user status and role assignments"},
	{"roles", "read", "View roles and the permission catalog"},
	{"roles", "write", "Create, edit and delete roles"},
	{"reports", "read", "View the moderation queue"},
	{"reports", "write", "Resolve reports and record moderation actions"},
	{"settings", "read", "View system settings"},
	{"settings", "write", "Change system settings"},
	{"announcements", "write", "Publish and retract announcements"},
	{"activity", "read-all", "View the full activity log across users"},
}

func seedPermissions(ctx context.Context, repo repository.RBACRepository) (map[string]model.Permission, error) {
	byName := make(map[string]model.Permission, len(permissionCatalog))
	for _, def := range permissionCatalog {
		name := def.resource + ":" + def.action
		existing, err := repo.FindPermissionByName(ctx, name)
		if err == nil {
			byName[name] = *existing
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		perm := &model.Permission{
			Resource:    def.resource,
			Action:      def.action,
			Description: def.description,
		}
		if err := repo.CreatePermission(ctx, perm); err != nil {
			return nil, err
		}
		byName[name] = *perm
		log.Printf("created permission %s", name)
	}
	return byName, nil
}

// seedRoles ensures the two system roles exist. "admin" is granted the full
// catalog; "user" is the default assigned at registration and carries no
// admin grants, so a fresh account gets nothing beyond its own data.
func seedRoles(ctx context.Context, repo repository.RBACRepository, perms map[string]model.Permission) (*model.Role, error) {
	if _, err := ensureRole(ctx, repo, "user", "Default role for registered users"); err != nil {
		return nil, err
	}

	adminRole, err := ensureRole(ctx, repo, "admin", "Full administrative access")
	if err != nil {
		return nil, err
	}
	permIDs := make([]uuid.UUID, 0, len(perms))
	for _, perm := range perms {
		permIDs = append(permIDs, perm.ID)
	}
	if err := repo.ReplaceRolePermissions(ctx, adminRole.ID, permIDs); err != nil {
		return nil, err
	}
	return adminRole, nil
}

func ensureRole(ctx context.Context, repo repository.RBACRepository, name, description string) (*model.Role, error) {
	role, err := repo.FindRoleByName(ctx, name)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	role = &model.Role{Name: name, Description: description, IsSystem: true}
	if err := repo.CreateRole(ctx, role); err != nil {
		return nil, err
	}
	log.Printf("created role %s", name)
	return role, nil
}

func seedCategories(ctx context.Context, repo repository.CategoryRepository) error {
	existing, err := repo.ListDefaults(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	defaults := []model.Category{
		{Name: "Groceries", Type: model.CategoryExpense, Icon: "cart", Color: "#4caf50"},
		{Name: "Housing", Type: model.CategoryExpense, Icon: "home", Color: "#795548"},
		{Name: "Transport", Type: model.CategoryExpense, Icon: "bus", Color: "#2196f3"},
		{Name: "Dining", Type: model.CategoryExpense, Icon: "utensils", Color: "#ff9800"},
		{Name: "Health", Type: model.CategoryExpense, Icon: "heart", Color: "#e91e63"},
		{Name: "Entertainment", Type: model.CategoryExpense, Icon: "film", Color: "#9c27b0"},
		{Name: "Other", Type: model.CategoryExpense, Icon: "tag", Color: "#607d8b"},
		{Name: "Salary", Type: model.CategoryIncome, Icon: "wallet", Color: "#4caf50"},
		{Name: "Freelance", Type: model.CategoryIncome, Icon: "briefcase", Color: "#2196f3"},
		{Name: "Other income", Type: model.CategoryIncome, Icon: "tag", Color: "#607d8b"},
	}
	for i := range defaults {
		defaults[i].IsDefault = true
		if err := repo.Create(ctx, &defaults[i]); err != nil {
			return err
		}
	}
	log.Printf("created %d default categories", len(defaults))
	return nil
}

func seedAdmin(ctx context.Context, cfg *config.Config, users repository.UserRepository, rbac repository.RBACRepository, adminRole *model.Role) error {
	if _, err := users.FindByUsername(ctx, cfg.AdminUsername); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if cfg.AdminPassword == "" {
		return errors.New("ADMIN_PASSWORD must be set to create the initial administrator")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &model.User{
		Username:     cfg.AdminUsername,
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		DisplayName:  "Administrator",
		Status:       model.UserStatusActive,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	if err := rbac.ReplaceUserRoles(ctx, admin.ID, []uuid.UUID{adminRole.ID}); err != nil {
		return err
	}
	log.Printf("created administrator %s", admin.Username)
	return nil
}
