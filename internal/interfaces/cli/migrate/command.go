package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boomerhub/boomerhub/internal/infrastructure/config"
	"github.com/boomerhub/boomerhub/internal/infrastructure/database"
	"github.com/boomerhub/boomerhub/internal/infrastructure/migration"
	"github.com/boomerhub/boomerhub/internal/interfaces/cli/bootstrap"
	"github.com/boomerhub/boomerhub/internal/shared/logger"
)

// scriptsDir is where `migrate create` writes new goose scripts in a source checkout.
const scriptsDir = "./internal/infrastructure/migration/scripts/goose"

var (
	flags        bootstrap.Flags
	strategyName string
	name         string
	steps        int
	forceVersion int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage the usage_records schema: run migrations, roll back, check status and create new migration files.`,
	}

	cmd.PersistentFlags().StringVarP(&flags.Env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.PersistentFlags().StringVarP(&strategyName, "strategy", "s", migration.StrategyGoose, "Migration strategy (goose, golang-migrate, auto)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
		newForceCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the database schema up to date.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version and status of the database.`,
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create a new goose SQL migration file with the specified name.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newForceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "force",
		Short: "Force the golang-migrate version",
		Long:  `Set the golang-migrate schema version without running scripts, clearing a dirty state. MySQL only.`,
		RunE:  runForce,
	}

	cmd.Flags().IntVar(&forceVersion, "version", 0, "Version to force (required)")
	_ = cmd.MarkFlagRequired("version")

	return cmd
}

func initEnv() (*config.Config, *migration.Manager, logger.Interface, error) {
	cfg, log, err := bootstrap.Init(&flags)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := bootstrap.OpenDatabase(cfg); err != nil {
		return nil, nil, nil, err
	}

	strategy, err := migration.NewStrategy(strategyName, cfg.Database.Driver, log)
	if err != nil {
		_ = database.Close()
		return nil, nil, nil, err
	}

	return cfg, migration.NewManager(strategy, log), log, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	_, manager, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running up migrations", "environment", flags.Env, "strategy", manager.GetStrategy().GetName())

	if err := manager.Migrate(database.Get()); err != nil {
		return err
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	_, manager, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running down migrations", "environment", flags.Env, "steps", steps)

	if err := manager.Rollback(database.Get(), steps); err != nil {
		log.Errorw("down migration failed", "error", err)
		return fmt.Errorf("down migration failed: %w", err)
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	_, manager, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("checking migration status", "environment", flags.Env)

	version, err := manager.Version(database.Get())
	if err != nil {
		log.Errorw("failed to get migration version", "error", err)
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nMigration Status:\n")
	fmt.Fprintf(out, "  Environment:     %s\n", flags.Env)
	fmt.Fprintf(out, "  Strategy:        %s\n", manager.GetStrategy().GetName())
	fmt.Fprintf(out, "  Current Version: %d\n", version)

	if gooseStrategy, ok := manager.GetStrategy().(*migration.GooseStrategy); ok {
		if err := gooseStrategy.Status(database.Get()); err != nil {
			log.Errorw("failed to get detailed status", "error", err)
			return fmt.Errorf("failed to get detailed status: %w", err)
		}
	}

	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.Init(&flags)
	if err != nil {
		return err
	}

	strategy, err := migration.NewGooseStrategy(cfg.Database.Driver, log)
	if err != nil {
		return err
	}

	log.Infow("creating new migration", "name", name, "dir", scriptsDir)

	if err := strategy.Create(scriptsDir, name); err != nil {
		log.Errorw("failed to create migration", "error", err)
		return fmt.Errorf("failed to create migration: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Migration '%s' created in %s\n", name, scriptsDir)
	return nil
}

func runForce(cmd *cobra.Command, args []string) error {
	_, manager, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	migrator, ok := manager.GetStrategy().(*migration.GolangMigrateStrategy)
	if !ok {
		return fmt.Errorf("force is only supported with --strategy %s", migration.StrategyGolangMigrate)
	}

	log.Warnw("forcing migration version", "version", forceVersion)
	if err := migrator.Force(database.Get(), forceVersion); err != nil {
		return fmt.Errorf("failed to force version: %w", err)
	}

	log.Infow("migration version forced", "version", forceVersion)
	return nil
}
