package route

import (
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/controller"

	"github.com/gofiber/fiber/v2"
)

// RouteConfig handles route registration
type RouteConfig struct {
	App *fiber.App
}

// NewRouteConfig initializes the router
func NewRouteConfig(app *fiber.App) *RouteConfig {
	return &RouteConfig{app}
}

func (r *RouteConfig) WelcomeRoutes(welcomeController *controller.WelcomeController) {
	r.App.Get("/", welcomeController.Hello)
}

// RegisterAuthRoutes defines authentication routes. Login stays with the
// CRM backend.
func (r *RouteConfig) RegisterAuthRoutes(authController *controller.AuthController, authMiddleware fiber.Handler) {
	auth := r.App.Group("/api/auth")
	auth.Use(authMiddleware)
	{
		auth.Post("/logout", authController.Logout)
	}
}

// RegisterPermissionRoutes defines the role, user and edit-session routes.
func (r *RouteConfig) RegisterPermissionRoutes(permissionController *controller.PermissionController, authMiddleware fiber.Handler) {
	api := r.App.Group("/api")
	{
		api.Get("/roles", authMiddleware, permissionController.ListRoles)
		api.Get("/users-permissions", authMiddleware, permissionController.ListUsersPermissions)
		api.Get("/users/:id/permission-audits", authMiddleware, permissionController.ListAudits)
		api.Get("/permission-audits/:id", authMiddleware, permissionController.GetAudit)
	}

	sessions := api.Group("/permission-sessions")
	sessions.Use(authMiddleware)
	{
		sessions.Post("/", permissionController.Open)
		sessions.Get("/:id", permissionController.Get)
		sessions.Put("/:id/permissions", permissionController.Toggle)
		sessions.Put("/:id/permissions/bulk", permissionController.BulkSet)
		sessions.Put("/:id/groups/:resource", permissionController.SetGroup)
		sessions.Post("/:id/reload", permissionController.Reload)
		sessions.Post("/:id/save", permissionController.Save)
		sessions.Delete("/:id", permissionController.Discard)
	}
}
