package migration

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/boomerhub/boomerhub/internal/shared/logger"
)

// Strategy names accepted by NewStrategy
const (
	StrategyGoose         = "goose"
	StrategyGolangMigrate = "golang-migrate"
	StrategyAutoMigrate   = "auto"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewStrategy picks a strategy by name. goose is the default because it supports every driver.
func NewStrategy(name, driver string, log logger.Interface) (Strategy, error) {
	switch strings.ToLower(name) {
	case StrategyGoose, "":
		return NewGooseStrategy(driver, log)
	case StrategyGolangMigrate:
		if driver == "sqlite" {
			return nil, fmt.Errorf("%s supports mysql only", StrategyGolangMigrate)
		}
		return NewGolangMigrateStrategy(log), nil
	case StrategyAutoMigrate:
		return NewGormAutoMigrateStrategy(log), nil
	default:
		return nil, fmt.Errorf("unknown migration strategy %q", name)
	}
}

// NewManager creates a new migration manager with a specific strategy
func NewManager(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log.With("component", "migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db); err != nil {
		m.logger.Errorw("migration failed",
			"strategy", m.strategy.GetName(),
			"error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

// Rollback reverts steps migrations
func (m *Manager) Rollback(db *gorm.DB, steps int) error {
	if steps < 1 {
		return fmt.Errorf("steps must be at least 1")
	}
	if err := m.strategy.MigrateDown(db, steps); err != nil {
		return fmt.Errorf("rollback failed with strategy %s: %w", m.strategy.GetName(), err)
	}
	return nil
}

// Version returns the schema version reported by the strategy
func (m *Manager) Version(db *gorm.DB) (int64, error) {
	return m.strategy.GetVersion(db)
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}

// GetStrategyInfo returns information about the current strategy
func (m *Manager) GetStrategyInfo() map[string]interface{} {
	return map[string]interface{}{
		"name":        m.strategy.GetName(),
		"description": getStrategyDescription(m.strategy.GetName()),
	}
}

func getStrategyDescription(strategyName string) string {
	switch strategyName {
	case "goose":
		return "goose - Embedded SQL scripts for MySQL and SQLite"
	case "golang_migrate":
		return "golang-migrate - Embedded up/down SQL scripts for MySQL"
	case "gorm_auto_migrate":
		return "GORM AutoMigrate - Automatic schema migration based on struct definitions"
	default:
		return "Unknown migration strategy"
	}
}
