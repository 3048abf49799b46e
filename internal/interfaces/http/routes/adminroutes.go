package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/boomerhub/boomerhub/internal/interfaces/http/handlers"
	"github.com/boomerhub/boomerhub/internal/interfaces/http/middleware"
	"github.com/boomerhub/boomerhub/internal/shared/authorization"
)

// AdminRouteConfig holds dependencies for admin-only routes.
type AdminRouteConfig struct {
	AdminUsageHandler  *handlers.AdminUsageHandler
	IdentityMiddleware *middleware.IdentityMiddleware
}

// SetupAdminRoutes configures admin-only routes.
func SetupAdminRoutes(api *gin.RouterGroup, cfg *AdminRouteConfig) {
	adminUsage := api.Group("/admin/usage")
	adminUsage.Use(cfg.IdentityMiddleware.RequireAuth(), authorization.RequireAdmin())
	{
		adminUsage.GET("/:identity", cfg.AdminUsageHandler.GetUsage)
		adminUsage.DELETE("/:identity", cfg.AdminUsageHandler.ResetUsage)
	}
}
