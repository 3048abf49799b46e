package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	aitoolUsecases "github.com/boomerhub/boomerhub/internal/application/aitool/usecases"
	usageUsecases "github.com/boomerhub/boomerhub/internal/application/usage/usecases"
	"github.com/boomerhub/boomerhub/internal/domain/usage"
	"github.com/boomerhub/boomerhub/internal/infrastructure/auth"
	"github.com/boomerhub/boomerhub/internal/infrastructure/cache"
	"github.com/boomerhub/boomerhub/internal/infrastructure/config"
	"github.com/boomerhub/boomerhub/internal/infrastructure/llm"
	"github.com/boomerhub/boomerhub/internal/infrastructure/ratelimit"
	"github.com/boomerhub/boomerhub/internal/infrastructure/repository"
	"github.com/boomerhub/boomerhub/internal/interfaces/http/handlers"
	"github.com/boomerhub/boomerhub/internal/interfaces/http/middleware"
	sharedConfig "github.com/boomerhub/boomerhub/internal/shared/config"
	"github.com/boomerhub/boomerhub/internal/shared/logger"
)

// Container holds the infrastructure, use cases, handlers and background
// components of the service. It wires everything together and provides
// Start/Shutdown for the parts that own goroutines.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	redis  *redis.Client
	cfg    *config.Config
	log    logger.Interface

	// Quota
	store   usage.Store
	tracker *usage.Tracker

	// Burst guard; memLimiter is set only for the in-process backend
	limiter    ratelimit.Limiter
	memLimiter *ratelimit.MemoryLimiter

	jwtSvc    *auth.JWTService
	generator llm.Generator

	// Use cases
	checkUsageUC   *usageUsecases.CheckUsageUseCase
	recordUsageUC  *usageUsecases.RecordUsageUseCase
	consumeUsageUC *usageUsecases.ConsumeUsageUseCase
	resetUsageUC   *usageUsecases.ResetUsageUseCase
	runToolUC      *aitoolUsecases.RunToolUseCase

	// Handlers and middlewares
	usageHandler       *handlers.UsageHandler
	aiToolHandler      *handlers.AIToolHandler
	adminUsageHandler  *handlers.AdminUsageHandler
	healthHandler      *handlers.HealthHandler
	identityMiddleware *middleware.IdentityMiddleware
}

// Deps are the externally owned connections handed to the container. DB is
// required for the database usage backend and Redis for the redis usage or
// rate limit backends.
type Deps struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Generator llm.Generator
}

// NewContainer creates a new Container with all dependencies wired together.
func NewContainer(ctx context.Context, cfg *config.Config, deps Deps, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     deps.DB,
		redis:  deps.Redis,
		cfg:    cfg,
		log:    log,
	}

	if err := c.initQuota(); err != nil {
		return nil, err
	}
	if err := c.initRateLimit(); err != nil {
		return nil, err
	}
	if err := c.initAuth(); err != nil {
		return nil, err
	}

	c.generator = deps.Generator
	if c.generator == nil {
		generator, err := llm.NewGenerator(ctx, cfg.LLM, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM generator: %w", err)
		}
		c.generator = generator
	}

	c.initUseCases()
	c.initHandlers()

	return c, nil
}

func (c *Container) initQuota() error {
	switch c.cfg.Usage.Backend {
	case sharedConfig.UsageBackendDatabase, "":
		if c.db == nil {
			return fmt.Errorf("usage backend %q requires a database connection", sharedConfig.UsageBackendDatabase)
		}
		c.store = repository.NewUsageRecordRepository(c.db, c.log)
	case sharedConfig.UsageBackendRedis:
		if c.redis == nil {
			return fmt.Errorf("usage backend %q requires a redis connection", sharedConfig.UsageBackendRedis)
		}
		c.store = cache.NewRedisUsageStore(c.redis, c.log)
	case sharedConfig.UsageBackendMemory:
		c.log.Warnw("using in-process usage store, counts are lost on restart")
		c.store = usage.NewMemoryStore()
	default:
		return fmt.Errorf("unknown usage backend %q", c.cfg.Usage.Backend)
	}

	limits, err := usage.NewLimits(c.cfg.Usage.Preset, c.cfg.Usage.GuestLimit, c.cfg.Usage.UserLimit)
	if err != nil {
		return fmt.Errorf("invalid usage limits: %w", err)
	}

	tracker, err := usage.NewTracker(c.store, limits)
	if err != nil {
		return fmt.Errorf("failed to create usage tracker: %w", err)
	}
	c.tracker = tracker

	c.log.Infow("usage tracker initialized",
		"backend", c.cfg.Usage.Backend,
		"guest_limit", limits.Guest,
		"user_limit", limits.User,
	)
	return nil
}

func (c *Container) initRateLimit() error {
	rl := c.cfg.RateLimit
	if !rl.Enabled {
		c.log.Infow("AI tool rate limiting disabled")
		return nil
	}

	// A day-long window would act as a second daily cap and cut off quota the
	// tracker still reports as available.
	if rl.Window >= 24*time.Hour {
		caps := c.tracker.Limits()
		if highest := max(caps.Guest, caps.User); rl.Limit < highest {
			return fmt.Errorf("rate limit %d per %s is below the daily usage cap %d: shorten ratelimit.window or raise ratelimit.limit",
				rl.Limit, rl.Window, highest)
		}
	}

	switch rl.Backend {
	case "memory", "":
		limiter, err := ratelimit.NewMemoryLimiter(rl.Limit, rl.Window, c.log)
		if err != nil {
			return fmt.Errorf("failed to create rate limiter: %w", err)
		}
		c.memLimiter = limiter
		c.limiter = limiter
	case "redis":
		if c.redis == nil {
			return fmt.Errorf("rate limit backend %q requires a redis connection", rl.Backend)
		}
		limiter, err := ratelimit.NewRedisLimiter(c.redis, rl.Limit, rl.Window)
		if err != nil {
			return fmt.Errorf("failed to create rate limiter: %w", err)
		}
		c.limiter = limiter
	default:
		return fmt.Errorf("unknown rate limit backend %q", rl.Backend)
	}

	c.log.Infow("AI tool rate limiting enabled", "backend", rl.Backend, "limit", rl.Limit, "window", rl.Window.String())
	return nil
}

func (c *Container) initAuth() error {
	jwtSvc, err := auth.NewJWTService(c.cfg.Auth.JWT.Secret, c.cfg.Auth.JWT.Issuer, c.cfg.Auth.JWT.AccessExpMinutes)
	if err != nil {
		return fmt.Errorf("failed to create JWT service: %w", err)
	}
	c.jwtSvc = jwtSvc
	c.identityMiddleware = middleware.NewIdentityMiddleware(jwtSvc, c.cfg.Usage.StrictGuestIDs, c.log)
	return nil
}

func (c *Container) initUseCases() {
	resolver := usageUsecases.NewIdentityResolver(c.cfg.Usage.StrictGuestIDs)

	c.checkUsageUC = usageUsecases.NewCheckUsageUseCase(c.tracker, resolver, c.log)
	c.recordUsageUC = usageUsecases.NewRecordUsageUseCase(c.tracker, resolver, c.log)
	c.consumeUsageUC = usageUsecases.NewConsumeUsageUseCase(c.tracker, resolver, c.log)
	c.resetUsageUC = usageUsecases.NewResetUsageUseCase(c.tracker, resolver, c.log)
	c.runToolUC = aitoolUsecases.NewRunToolUseCase(c.consumeUsageUC, c.generator, c.log)
}

func (c *Container) initHandlers() {
	c.usageHandler = handlers.NewUsageHandler(c.checkUsageUC, c.recordUsageUC, c.consumeUsageUC, c.tracker.Limits(), c.log)
	c.aiToolHandler = handlers.NewAIToolHandler(c.runToolUC, c.log)
	c.adminUsageHandler = handlers.NewAdminUsageHandler(c.checkUsageUC, c.resetUsageUC, c.log)

	checks := map[string]handlers.HealthChecker{}
	if c.db != nil {
		checks["database"] = func(ctx context.Context) error {
			sqlDB, err := c.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	if c.redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return c.redis.Ping(ctx).Err()
		}
	}
	c.healthHandler = handlers.NewHealthHandler(checks, c.log)
}

// Start launches background components such as the rate limiter sweep.
func (c *Container) Start(ctx context.Context) error {
	if c.memLimiter != nil {
		if err := c.memLimiter.Start(ctx); err != nil {
			return fmt.Errorf("failed to start rate limiter sweep: %w", err)
		}
	}
	return nil
}

// Shutdown stops background components. Connections passed in Deps are owned
// by the caller and stay open.
func (c *Container) Shutdown() {
	if c.memLimiter != nil {
		if err := c.memLimiter.Stop(); err != nil {
			c.log.Errorw("failed to stop rate limiter sweep", "error", err)
		}
	}
}

// JWTService exposes the token service, used by CLI token issuance.
func (c *Container) JWTService() *auth.JWTService {
	return c.jwtSvc
}

// CheckUsageUseCase exposes the check use case to operator commands.
func (c *Container) CheckUsageUseCase() *usageUsecases.CheckUsageUseCase {
	return c.checkUsageUC
}

// RecordUsageUseCase exposes the record use case to operator commands.
func (c *Container) RecordUsageUseCase() *usageUsecases.RecordUsageUseCase {
	return c.recordUsageUC
}

// ResetUsageUseCase exposes the reset use case to operator commands.
func (c *Container) ResetUsageUseCase() *usageUsecases.ResetUsageUseCase {
	return c.resetUsageUC
}
