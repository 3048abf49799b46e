package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/boomerhub/boomerhub/internal/shared/logger"
	"github.com/boomerhub/boomerhub/internal/shared/version"
)

// HealthChecker probes a backing dependency such as the database or Redis.
type HealthChecker func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]HealthChecker
	logger logger.Interface
}

func NewHealthHandler(checks map[string]HealthChecker, logger logger.Interface) *HealthHandler {
	if checks == nil {
		checks = map[string]HealthChecker{}
	}
	return &HealthHandler{checks: checks, logger: logger}
}

// Health handles GET /health. Any failing dependency turns the answer into a 503.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Warnw("health check failed", "dependency", name, "error", err)
			deps[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "up"
	}

	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}

	c.JSON(status, gin.H{
		"status":       state,
		"version":      version.Get().Version,
		"dependencies": deps,
	})
}
