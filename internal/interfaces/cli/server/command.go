package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/boomerhub/boomerhub/internal/infrastructure/config"
	"github.com/boomerhub/boomerhub/internal/infrastructure/database"
	"github.com/boomerhub/boomerhub/internal/infrastructure/migration"
	httpRouter "github.com/boomerhub/boomerhub/internal/interfaces/http"
	"github.com/boomerhub/boomerhub/internal/interfaces/cli/bootstrap"
	"github.com/boomerhub/boomerhub/internal/shared/constants"
	"github.com/boomerhub/boomerhub/internal/shared/goroutine"
	"github.com/boomerhub/boomerhub/internal/shared/logger"
	"github.com/boomerhub/boomerhub/internal/shared/version"
)

var (
	flags              bootstrap.Flags
	autoMigrate        bool
	migrationStrategy  string
	skipMigrationCheck bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the BoomerHub usage quota HTTP server with specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&flags.Env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Automatically run database migrations on startup (not recommended for production)")
	cmd.Flags().StringVar(&migrationStrategy, "migration-strategy", migration.StrategyGoose, "Migration strategy used by --auto-migrate (goose, golang-migrate, auto)")
	cmd.Flags().BoolVar(&skipMigrationCheck, "skip-migration-check", false, "Skip migration status check on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.Init(&flags)
	if err != nil {
		return err
	}

	log.Infow("starting server",
		"environment", flags.Env,
		"version", version.Get().Version,
		"usage_backend", cfg.Usage.Backend,
		"auto_migrate", autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deps := httpRouter.Deps{}

	if bootstrap.NeedsDatabase(cfg) {
		if err := bootstrap.OpenDatabase(cfg); err != nil {
			return err
		}
		defer func() {
			if err := database.Close(); err != nil {
				log.Errorw("failed to close database", "error", err)
			}
		}()

		if err := handleMigrations(cfg, log); err != nil {
			return fmt.Errorf("migration handling failed: %w", err)
		}
		deps.DB = database.Get()
	}

	if bootstrap.NeedsRedis(cfg) {
		client, err := bootstrap.OpenRedis(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer closeRedis(client, log)
		deps.Redis = client
	}

	container, err := httpRouter.NewContainer(ctx, cfg, deps, log)
	if err != nil {
		return fmt.Errorf("failed to wire application: %w", err)
	}
	if err := container.Start(ctx); err != nil {
		return err
	}
	defer container.Shutdown()

	router := httpRouter.NewRouter(container)
	router.SetupRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // AI tool calls wait on the model
		IdleTimeout:  60 * time.Second,
	}

	log.Infow("server starting",
		"address", cfg.Server.GetAddr(),
		"mode", cfg.Server.Mode)

	serveErr := goroutine.Run(log, "http-server", func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-serveErr:
		if ok {
			log.Errorw("failed to start server", "error", err)
			return err
		}
		return nil
	case sig := <-quit:
		log.Infow("shutting down server...", "signal", sig.String())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func handleMigrations(cfg *config.Config, log logger.Interface) error {
	if autoMigrate {
		if flags.Env == constants.EnvProduction {
			log.Warnw("auto-migration is enabled in production environment - this is not recommended!")
		}

		strategy, err := migration.NewStrategy(migrationStrategy, cfg.Database.Driver, log)
		if err != nil {
			return err
		}

		log.Infow("running auto-migration", "strategy", strategy.GetName())
		if err := migration.NewManager(strategy, log).Migrate(database.Get()); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		log.Infow("auto-migration completed successfully")
		return nil
	}

	if skipMigrationCheck {
		log.Infow("skipping migration check")
		return nil
	}

	strategy, err := migration.NewGooseStrategy(cfg.Database.Driver, log)
	if err != nil {
		log.Warnw("failed to prepare migration status check", "error", err)
		return nil
	}
	current, err := strategy.GetVersion(database.Get())
	if err != nil {
		log.Warnw("failed to check migration status", "error", err)
		return nil
	}
	if current == 0 {
		log.Warnw("database schema is not migrated, run 'boomerhub migrate up' or start with --auto-migrate")
	}
	log.Infow("current migration version", "version", current)

	return nil
}

func closeRedis(client *redis.Client, log logger.Interface) {
	if err := client.Close(); err != nil {
		log.Errorw("failed to close Redis connection", "error", err)
	}
}
