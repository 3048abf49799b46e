package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/boomerhub/boomerhub/internal/infrastructure/ratelimit"
	"github.com/boomerhub/boomerhub/internal/interfaces/http/handlers"
	"github.com/boomerhub/boomerhub/internal/interfaces/http/middleware"
	"github.com/boomerhub/boomerhub/internal/shared/logger"
)

// AIToolRouteConfig holds dependencies for AI tool routes.
type AIToolRouteConfig struct {
	AIToolHandler      *handlers.AIToolHandler
	IdentityMiddleware *middleware.IdentityMiddleware
	Limiter            ratelimit.Limiter // may be nil
	Logger             logger.Interface
}

// SetupAIToolRoutes configures AI tool routes. Runs resolve the caller first so
// the burst guard is keyed by identity rather than by address.
func SetupAIToolRoutes(api *gin.RouterGroup, cfg *AIToolRouteConfig) {
	tools := api.Group("/ai/tools")
	{
		tools.GET("", cfg.AIToolHandler.ListTools)

		chain := []gin.HandlerFunc{cfg.IdentityMiddleware.ResolveIdentity()}
		if cfg.Limiter != nil {
			chain = append(chain, middleware.RateLimit(cfg.Limiter, cfg.Logger))
		}
		chain = append(chain, cfg.AIToolHandler.RunTool)
		tools.POST("/:tool", chain...)
	}
}
