package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"keymint/internal/domain/license"
	"keymint/internal/infrastructure/persistence/mappers"
	"keymint/internal/infrastructure/persistence/models"
	"keymint/internal/shared/db"
	"keymint/internal/shared/logger"
)

type LicenseRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.LicenseMapper
	logger logger.Interface
}

func NewLicenseRepository(db *gorm.DB, logger logger.Interface) license.Repository {
	return &LicenseRepositoryImpl{
		db:     db,
		mapper: mappers.NewLicenseMapper(),
		logger: logger,
	}
}

func (r *LicenseRepositoryImpl) Create(ctx context.Context, licenseEntity *license.License) error {
	model, err := r.mapper.ToModel(licenseEntity)
	if err != nil {
		r.logger.Errorw("failed to map license entity to model", "error", err)
		return fmt.Errorf("failed to map license entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create license in database", "error", err)
		return fmt.Errorf("failed to create license: %w", err)
	}

	if err := licenseEntity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set license ID: %w", err)
	}

	r.logger.Infow("license created successfully",
		"id", model.ID,
		"license_key_id", model.LicenseKeyID,
		"product_id", model.ProductID,
	)
	return nil
}

func (r *LicenseRepositoryImpl) GetByID(ctx context.Context, id uint) (*license.License, error) {
	var model models.LicenseModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get license by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get license: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *LicenseRepositoryImpl) GetByLID(ctx context.Context, lid string) (*license.License, error) {
	var model models.LicenseModel

	if err := db.GetTxFromContext(ctx, r.db).Where("lid = ?", lid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get license by LID", "lid", lid, "error", err)
		return nil, fmt.Errorf("failed to get license: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// GetByIDForUpdate takes a FOR UPDATE row lock on the license so the
// surrounding transaction serializes seat-count reads against concurrent
// activations. Must run inside a transaction context.
func (r *LicenseRepositoryImpl) GetByIDForUpdate(ctx context.Context, id uint) (*license.License, error) {
	var model models.LicenseModel

	err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to lock license by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to lock license: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *LicenseRepositoryImpl) GetByKeyAndProduct(ctx context.Context, licenseKeyID, productID uint) (*license.License, error) {
	var model models.LicenseModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("license_key_id = ? AND product_id = ?", licenseKeyID, productID).
		Order("id DESC").
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get license by key and product",
			"license_key_id", licenseKeyID, "product_id", productID, "error", err)
		return nil, fmt.Errorf("failed to get license: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *LicenseRepositoryImpl) ListByLicenseKey(ctx context.Context, licenseKeyID uint) ([]*license.License, error) {
	var licenseModels []*models.LicenseModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("license_key_id = ?", licenseKeyID).
		Order("id").
		Find(&licenseModels).Error
	if err != nil {
		r.logger.Errorw("failed to list licenses by key", "license_key_id", licenseKeyID, "error", err)
		return nil, fmt.Errorf("failed to list licenses: %w", err)
	}

	return r.mapper.ToEntities(licenseModels)
}

func (r *LicenseRepositoryImpl) Update(ctx context.Context, licenseEntity *license.License) error {
	model, err := r.mapper.ToModel(licenseEntity)
	if err != nil {
		r.logger.Errorw("failed to map license entity to model", "error", err)
		return fmt.Errorf("failed to map license entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Save(model).Error; err != nil {
		r.logger.Errorw("failed to update license", "id", model.ID, "error", err)
		return fmt.Errorf("failed to update license: %w", err)
	}

	return nil
}
