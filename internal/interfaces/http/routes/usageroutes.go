package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/boomerhub/boomerhub/internal/interfaces/http/handlers"
	"github.com/boomerhub/boomerhub/internal/interfaces/http/middleware"
)

// UsageRouteConfig holds dependencies for quota routes.
type UsageRouteConfig struct {
	UsageHandler       *handlers.UsageHandler
	IdentityMiddleware *middleware.IdentityMiddleware
}

// SetupUsageRoutes configures guest minting and per-identity quota routes.
func SetupUsageRoutes(api *gin.RouterGroup, cfg *UsageRouteConfig) {
	api.POST("/guests", cfg.UsageHandler.MintGuestID)

	usage := api.Group("/usage")
	{
		usage.GET("/limits", cfg.UsageHandler.GetLimits)

		usage.GET("", cfg.IdentityMiddleware.ResolveIdentity(), cfg.UsageHandler.CheckUsage)
		usage.POST("/record", cfg.IdentityMiddleware.ResolveIdentity(), cfg.UsageHandler.RecordUsage)
		usage.POST("/consume", cfg.IdentityMiddleware.ResolveIdentity(), cfg.UsageHandler.ConsumeUsage)
	}
}
