package http

import (
	"github.com/gin-gonic/gin"

	"github.com/boomerhub/boomerhub/internal/interfaces/http/middleware"
	"github.com/boomerhub/boomerhub/internal/interfaces/http/routes"
)

// Router represents the HTTP router configuration
type Router struct {
	*Container
}

// NewRouter creates a new HTTP router on top of a wired container
func NewRouter(c *Container) *Router {
	return &Router{Container: c}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.RequestLogger(r.log))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/health", r.healthHandler.Health)

	api := r.engine.Group("/api/v1")

	routes.SetupUsageRoutes(api, &routes.UsageRouteConfig{
		UsageHandler:       r.usageHandler,
		IdentityMiddleware: r.identityMiddleware,
	})

	routes.SetupAIToolRoutes(api, &routes.AIToolRouteConfig{
		AIToolHandler:      r.aiToolHandler,
		IdentityMiddleware: r.identityMiddleware,
		Limiter:            r.limiter,
		Logger:             r.log,
	})

	routes.SetupAdminRoutes(api, &routes.AdminRouteConfig{
		AdminUsageHandler:  r.adminUsageHandler,
		IdentityMiddleware: r.identityMiddleware,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
