package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"keymint/internal/domain/license"
	"keymint/internal/infrastructure/persistence/mappers"
	"keymint/internal/infrastructure/persistence/models"
	"keymint/internal/shared/db"
	"keymint/internal/shared/logger"
	"keymint/internal/shared/utils"
)

type LicenseKeyRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.LicenseKeyMapper
	logger logger.Interface
}

func NewLicenseKeyRepository(db *gorm.DB, logger logger.Interface) license.KeyRepository {
	return &LicenseKeyRepositoryImpl{
		db:     db,
		mapper: mappers.NewLicenseKeyMapper(),
		logger: logger,
	}
}

func (r *LicenseKeyRepositoryImpl) Create(ctx context.Context, keyEntity *license.LicenseKey) error {
	model, err := r.mapper.ToModel(keyEntity)
	if err != nil {
		r.logger.Errorw("failed to map license key entity to model", "error", err)
		return fmt.Errorf("failed to map license key entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		// Unique-violation races are resolved by the caller, keep the raw
		// driver error recognizable.
		return err
	}

	if err := keyEntity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set license key ID: %w", err)
	}

	r.logger.Infow("license key created successfully",
		"id", model.ID,
		"brand_id", model.BrandID,
		"key", utils.MaskLicenseKey(model.Key),
	)
	return nil
}

func (r *LicenseKeyRepositoryImpl) GetByID(ctx context.Context, id uint) (*license.LicenseKey, error) {
	var model models.LicenseKeyModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get license key by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get license key: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *LicenseKeyRepositoryImpl) GetByKey(ctx context.Context, key string) (*license.LicenseKey, error) {
	var model models.LicenseKeyModel

	if err := db.GetTxFromContext(ctx, r.db).Where("`key` = ?", key).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get license key by key", "error", err)
		return nil, fmt.Errorf("failed to get license key: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *LicenseKeyRepositoryImpl) GetByBrandAndKey(ctx context.Context, brandID uint, key string) (*license.LicenseKey, error) {
	var model models.LicenseKeyModel

	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.BrandScoped(brandID)).
		Where("`key` = ?", key).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get license key by brand and key", "brand_id", brandID, "error", err)
		return nil, fmt.Errorf("failed to get license key: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *LicenseKeyRepositoryImpl) GetByBrandAndEmail(ctx context.Context, brandID uint, customerEmail string) (*license.LicenseKey, error) {
	var model models.LicenseKeyModel

	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.BrandScoped(brandID)).
		Where("customer_email = ?", customerEmail).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get license key by brand and email", "brand_id", brandID, "error", err)
		return nil, fmt.Errorf("failed to get license key: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// ListByCustomerEmail deliberately skips the brand scope: it backs the
// read-only cross-brand customer lookup and must never feed a mutation.
func (r *LicenseKeyRepositoryImpl) ListByCustomerEmail(ctx context.Context, customerEmail string) ([]*license.LicenseKey, error) {
	var keyModels []*models.LicenseKeyModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("customer_email = ?", customerEmail).
		Order("id").
		Find(&keyModels).Error
	if err != nil {
		r.logger.Errorw("failed to list license keys by email", "email", utils.MaskEmail(customerEmail), "error", err)
		return nil, fmt.Errorf("failed to list license keys: %w", err)
	}

	return r.mapper.ToEntities(keyModels)
}

func (r *LicenseKeyRepositoryImpl) KeyExists(ctx context.Context, key string) (bool, error) {
	var count int64

	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.LicenseKeyModel{}).
		Where("`key` = ?", key).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to check license key existence", "error", err)
		return false, fmt.Errorf("failed to check license key existence: %w", err)
	}

	return count > 0, nil
}

func (r *LicenseKeyRepositoryImpl) Update(ctx context.Context, keyEntity *license.LicenseKey) error {
	model, err := r.mapper.ToModel(keyEntity)
	if err != nil {
		r.logger.Errorw("failed to map license key entity to model", "error", err)
		return fmt.Errorf("failed to map license key entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Save(model).Error; err != nil {
		r.logger.Errorw("failed to update license key", "id", model.ID, "error", err)
		return fmt.Errorf("failed to update license key: %w", err)
	}

	return nil
}
