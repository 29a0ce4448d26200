package migration

import (
	"fmt"

	"gorm.io/gorm"

	"keymint/internal/infrastructure/persistence/models"
	"keymint/internal/shared/logger"
)

// GormAutoMigrateStrategy implements migration using GORM AutoMigrate
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

// NewGormAutoMigrateStrategy creates a new GORM AutoMigrate strategy
func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.automigrate"),
	}
}

// Migrate executes GORM AutoMigrate over the given models, defaulting to the
// full model set when none are passed.
func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, migrateModels ...interface{}) error {
	if len(migrateModels) == 0 {
		migrateModels = AllModels()
	}

	s.logger.Infow("starting GORM AutoMigrate", "models_count", len(migrateModels))

	if err := db.AutoMigrate(migrateModels...); err != nil {
		s.logger.Errorw("auto migration failed", "error", err)
		return fmt.Errorf("failed to auto migrate: %w", err)
	}

	s.logger.Infow("auto migration completed successfully")
	return nil
}

// GetName returns the strategy name
func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

// AllModels returns every persistence model in dependency order.
func AllModels() []interface{} {
	return []interface{}{
		&models.BrandModel{},
		&models.ProductModel{},
		&models.LicenseKeyModel{},
		&models.LicenseModel{},
		&models.ActivationModel{},
	}
}
