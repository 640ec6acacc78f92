package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"fintrack/docs"
	"fintrack/internal/auth"
	"fintrack/internal/cache"
	"fintrack/internal/config"
	"fintrack/internal/db"
	"fintrack/internal/handler"
	"fintrack/internal/model"
	"fintrack/internal/repository"
	"fintrack/internal/router"
	"fintrack/internal/service"
)

// @title FinTrack API
// @version 1.0
// @description Expense and budget tracking API with role-based access control, moderation tooling and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.Permission{},
		&model.UserRole{},
		&model.RolePermission{},
		&model.Category{},
		&model.Expense{},
		&model.Income{},
		&model.Budget{},
		&model.ActivityLog{},
		&model.ContentReport{},
		&model.UserNotification{},
		&model.Setting{},
		&model.Announcement{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	// Database-level guard keeping activity_logs append-only even for
	// sessions that bypass the application.
	if err := db.InstallActivityLogTrigger(gormDB); err != nil {
		log.Fatalf("activity log trigger: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	rbacRepo := repository.NewRBACRepository(gormDB)
	activityRepo := repository.NewActivityRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	expenseRepo := repository.NewExpenseRepository(gormDB)
	incomeRepo := repository.NewIncomeRepository(gormDB)
	budgetRepo := repository.NewBudgetRepository(gormDB)
	reportRepo := repository.NewReportRepository(gormDB)
	notificationRepo := repository.NewNotificationRepository(gormDB)
	settingRepo := repository.NewSettingRepository(gormDB)
	announcementRepo := repository.NewAnnouncementRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	activityService := service.NewActivityService(activityRepo)
	rbacService := service.NewRBACService(rbacRepo)
	authService := service.NewAuthService(userRepo, rbacRepo, jwtService, tokenStore, activityService)
	userService := service.NewUserService(userRepo, activityService)
	categoryService := service.NewCategoryService(categoryRepo, cacheClient)
	expenseService := service.NewExpenseService(expenseRepo, categoryRepo, activityService)
	incomeService := service.NewIncomeService(incomeRepo, categoryRepo, activityService)
	budgetService := service.NewBudgetService(budgetRepo, expenseRepo, activityService)
	notificationService := service.NewNotificationService(notificationRepo)
	moderationService := service.NewModerationService(reportRepo, notificationService, activityService)
	settingService := service.NewSettingService(settingRepo, activityService)
	announcementService := service.NewAnnouncementService(announcementRepo, activityService)

	// Initialize handlers
	handlers := router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		User:         handler.NewUserHandler(userService, rbacService),
		Expense:      handler.NewExpenseHandler(expenseService),
		Income:       handler.NewIncomeHandler(incomeService),
		Budget:       handler.NewBudgetHandler(budgetService),
		Category:     handler.NewCategoryHandler(categoryService),
		Notification: handler.NewNotificationHandler(notificationService),
		Report:       handler.NewReportHandler(moderationService),
		Activity:     handler.NewActivityHandler(activityService, rbacService),
		Announcement: handler.NewAnnouncementHandler(announcementService),
		AdminUser:    handler.NewAdminUserHandler(userService, rbacService),
		Role:         handler.NewRoleHandler(rbacService),
		Moderation:   handler.NewModerationHandler(moderationService),
		Setting:      handler.NewSettingHandler(settingService),
	}

	// Register routes
	router.Register(e, cfg, rbacService, handlers)

	// Swagger UI advertises the deployed host when one is configured.
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}
	log.Printf("swagger ui at http://%s/swagger/index.html", docs.SwaggerInfo.Host)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
