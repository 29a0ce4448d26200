package migration

import (
	"fmt"

	"gorm.io/gorm"

	"keymint/internal/infrastructure/config"
	"keymint/internal/shared/constants"
	"keymint/internal/shared/logger"
)

// Manager handles database migrations with configurable strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager creates a migration manager with the strategy selected from
// configuration. An explicit strategy name wins; otherwise the environment
// decides: AutoMigrate for development, SQL files everywhere else.
func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		strategy: selectStrategy(cfg),
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

// NewManagerWithStrategy creates a migration manager with an explicit strategy
func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

func selectStrategy(cfg *config.Config) Strategy {
	switch cfg.Migration.Strategy {
	case "gorm_auto_migrate":
		return NewGormAutoMigrateStrategy()
	case "golang_migrate":
		return NewGolangMigrateStrategy(cfg.Migration.ScriptsPath)
	case "goose":
		return NewGooseStrategy(cfg.Migration.ScriptsPath)
	}

	if cfg.Server.Environment == constants.EnvDevelopment {
		return NewGormAutoMigrateStrategy()
	}
	return NewGolangMigrateStrategy(cfg.Migration.ScriptsPath)
}

// Run executes migrations using the configured strategy
func (m *Manager) Run(db *gorm.DB) error {
	m.logger.Infow("running database migrations", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db); err != nil {
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}
	return nil
}

// Strategy returns the active migration strategy
func (m *Manager) Strategy() Strategy {
	return m.strategy
}
