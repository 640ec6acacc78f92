package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"fintrack/internal/auth"
	"fintrack/internal/config"
	"fintrack/internal/handler"
	"fintrack/internal/model"
)

// Handlers bundles every route handler so Register keeps a manageable
// signature.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Expense      *handler.ExpenseHandler
	Income       *handler.IncomeHandler
	Budget       *handler.BudgetHandler
	Category     *handler.CategoryHandler
	Notification *handler.NotificationHandler
	Report       *handler.ReportHandler
	Activity     *handler.ActivityHandler
	Announcement *handler.AnnouncementHandler
	AdminUser    *handler.AdminUserHandler
	Role         *handler.RoleHandler
	Moderation   *handler.ModerationHandler
	Setting      *handler.SettingHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, rbac auth.PermissionChecker, h Handlers) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.POST("/auth/logout", h.Auth.Logout)
	api.GET("/announcements", h.Announcement.ListActive)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	secured.GET("/user", h.User.GetCurrentUser)
	secured.PUT("/user", h.User.UpdateProfile)

	// Expense routes
	secured.POST("/expenses", h.Expense.Create)
	secured.GET("/expenses", h.Expense.List)
	secured.GET("/expenses/:id", h.Expense.Get)
	secured.PUT("/expenses/:id", h.Expense.Update)
	secured.DELETE("/expenses/:id", h.Expense.Delete)

	// Income routes
	secured.POST("/incomes", h.Income.Create)
	secured.GET("/incomes", h.Income.List)
	secured.GET("/incomes/:id", h.Income.Get)
	secured.PUT("/incomes/:id", h.Income.Update)
	secured.DELETE("/incomes/:id", h.Income.Delete)

	// Budget routes
	secured.POST("/budgets", h.Budget.Create)
	secured.GET("/budgets", h.Budget.List)
	secured.PUT("/budgets/:id", h.Budget.Update)
	secured.DELETE("/budgets/:id", h.Budget.Delete)

	// Category routes
	secured.GET("/categories", h.Category.List)
	secured.POST("/categories", h.Category.Create)

	// Notification routes
	secured.GET("/user/notifications", h.Notification.List)
	secured.POST("/user/notifications/:id/read", h.Notification.MarkRead)
	secured.POST("/user/notifications/read-all", h.Notification.MarkAllRead)

	// Content reports and activity
	secured.POST("/reports", h.Report.Create)
	secured.GET("/activity-logs", h.Activity.List)

	// Admin routes: permission checks happen per route group so each grant
	// stays independently assignable to roles.
	admin := secured.Group("/admin", auth.RequirePermission(rbac, model.PermAdminRead))

	users := admin.Group("/users")
	users.GET("", h.AdminUser.ListUsers, auth.RequirePermission(rbac, model.PermUsersRead))
	users.GET("/:id", h.AdminUser.GetUser, auth.RequirePermission(rbac, model.PermUsersRead))
	users.PUT("/:id/status", h.AdminUser.SetStatus, auth.RequirePermission(rbac, model.PermUsersWrite))
	users.GET("/:id/roles", h.AdminUser.GetUserRoles, auth.RequirePermission(rbac, model.PermUsersRead))
	users.POST("/:id/roles", h.AdminUser.SetUserRoles, auth.RequirePermission(rbac, model.PermUsersWrite))

	roles := admin.Group("/roles", auth.RequirePermission(rbac, model.PermRolesRead))
	roles.GET("", h.Role.ListRoles)
	roles.GET("/:id", h.Role.GetRole)
	roles.POST("", h.Role.CreateRole, auth.RequirePermission(rbac, model.PermRolesWrite))
	roles.PUT("/:id", h.Role.UpdateRole, auth.RequirePermission(rbac, model.PermRolesWrite))
	roles.DELETE("/:id", h.Role.DeleteRole, auth.RequirePermission(rbac, model.PermRolesWrite))
	roles.PUT("/:id/permissions", h.Role.SetRolePermissions, auth.RequirePermission(rbac, model.PermRolesWrite))
	admin.GET("/permissions", h.Role.ListPermissions, auth.RequirePermission(rbac, model.PermRolesRead))

	reports := admin.Group("/reports", auth.RequirePermission(rbac, model.PermReportsRead))
	reports.GET("", h.Moderation.ListReports)
	reports.POST("/:id/resolve", h.Moderation.ResolveReport, auth.RequirePermission(rbac, model.PermReportsWrite))
	admin.POST("/moderation/:id/action", h.Moderation.RecordAction, auth.RequirePermission(rbac, model.PermReportsWrite))

	settings := admin.Group("/settings", auth.RequirePermission(rbac, model.PermSettingsRead))
	settings.GET("", h.Setting.List)
	settings.PUT("", h.Setting.Upsert, auth.RequirePermission(rbac, model.PermSettingsWrite))

	announcements := admin.Group("/announcements", auth.RequirePermission(rbac, model.PermAnnouncementsWrite))
	announcements.GET("", h.Announcement.ListAll)
	announcements.POST("", h.Announcement.Create)
	announcements.PUT("/:id", h.Announcement.Update)
	announcements.DELETE("/:id", h.Announcement.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
