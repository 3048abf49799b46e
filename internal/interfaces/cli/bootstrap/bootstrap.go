// Package bootstrap holds the startup steps shared by CLI commands.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/boomerhub/boomerhub/internal/infrastructure/config"
	"github.com/boomerhub/boomerhub/internal/infrastructure/database"
	sharedConfig "github.com/boomerhub/boomerhub/internal/shared/config"
	"github.com/boomerhub/boomerhub/internal/shared/biztime"
	"github.com/boomerhub/boomerhub/internal/shared/constants"
	"github.com/boomerhub/boomerhub/internal/shared/logger"
)

// Flags are the persistent flags every command accepts.
type Flags struct {
	Env        string
	ConfigPath string
}

// ResolveEnv lets the ENV variable override the --env flag.
func (f *Flags) ResolveEnv() string {
	if envVar := os.Getenv("ENV"); envVar != "" {
		f.Env = envVar
	}
	return f.Env
}

// Init loads configuration, initializes the logger and sets the business timezone.
func Init(flags *Flags) (*config.Config, logger.Interface, error) {
	env := flags.ResolveEnv()

	cfg, err := config.Load(env, flags.ConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = MapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode == "debug"); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Business timezone decides when a user's daily window rolls over
	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

// NeedsDatabase reports whether the configured usage backend reads usage_records.
func NeedsDatabase(cfg *config.Config) bool {
	return cfg.Usage.Backend == "" || cfg.Usage.Backend == sharedConfig.UsageBackendDatabase
}

// NeedsRedis reports whether any configured backend talks to Redis.
func NeedsRedis(cfg *config.Config) bool {
	return cfg.Usage.Backend == sharedConfig.UsageBackendRedis ||
		(cfg.RateLimit.Enabled && cfg.RateLimit.Backend == "redis")
}

// OpenDatabase initializes the process-wide database handle.
func OpenDatabase(cfg *config.Config) error {
	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	return nil
}

// OpenRedis connects to Redis and verifies the connection.
func OpenRedis(ctx context.Context, cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Redis.GetAddr(), err)
	}

	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())
	return client, nil
}

// MapEnvToGinMode translates an environment name into a gin mode.
func MapEnvToGinMode(environment string) string {
	switch environment {
	case constants.EnvProduction, "prod", "release":
		return "release"
	case constants.EnvTest, "testing":
		return "test"
	default:
		return "debug"
	}
}
