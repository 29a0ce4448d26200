package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"keymint/internal/domain/brand"
	"keymint/internal/infrastructure/persistence/mappers"
	"keymint/internal/infrastructure/persistence/models"
	"keymint/internal/shared/db"
	"keymint/internal/shared/logger"
)

type BrandRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.BrandMapper
	logger logger.Interface
}

func NewBrandRepository(db *gorm.DB, logger logger.Interface) brand.Repository {
	return &BrandRepositoryImpl{
		db:     db,
		mapper: mappers.NewBrandMapper(),
		logger: logger,
	}
}

func (r *BrandRepositoryImpl) Create(ctx context.Context, brandEntity *brand.Brand) error {
	model, err := r.mapper.ToModel(brandEntity)
	if err != nil {
		r.logger.Errorw("failed to map brand entity to model", "error", err)
		return fmt.Errorf("failed to map brand entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create brand in database", "error", err)
		return fmt.Errorf("failed to create brand: %w", err)
	}

	if err := brandEntity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set brand ID: %w", err)
	}

	r.logger.Infow("brand created successfully", "id", model.ID, "name", model.Name)
	return nil
}

func (r *BrandRepositoryImpl) GetByID(ctx context.Context, id uint) (*brand.Brand, error) {
	var model models.BrandModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get brand by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *BrandRepositoryImpl) GetByAPIKey(ctx context.Context, apiKey string) (*brand.Brand, error) {
	var model models.BrandModel

	if err := db.GetTxFromContext(ctx, r.db).Where("api_key = ?", apiKey).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get brand by API key", "error", err)
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *BrandRepositoryImpl) GetByName(ctx context.Context, name string) (*brand.Brand, error) {
	var model models.BrandModel

	if err := db.GetTxFromContext(ctx, r.db).Where("name = ?", name).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get brand by name", "name", name, "error", err)
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *BrandRepositoryImpl) List(ctx context.Context) ([]*brand.Brand, error) {
	var brandModels []*models.BrandModel

	if err := db.GetTxFromContext(ctx, r.db).Order("name").Find(&brandModels).Error; err != nil {
		r.logger.Errorw("failed to list brands", "error", err)
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}

	return r.mapper.ToEntities(brandModels)
}

func (r *BrandRepositoryImpl) Update(ctx context.Context, brandEntity *brand.Brand) error {
	model, err := r.mapper.ToModel(brandEntity)
	if err != nil {
		r.logger.Errorw("failed to map brand entity to model", "error", err)
		return fmt.Errorf("failed to map brand entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Save(model).Error; err != nil {
		r.logger.Errorw("failed to update brand", "id", model.ID, "error", err)
		return fmt.Errorf("failed to update brand: %w", err)
	}

	return nil
}

func (r *BrandRepositoryImpl) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.BrandModel{}, id).Error; err != nil {
		r.logger.Errorw("failed to delete brand", "id", id, "error", err)
		return fmt.Errorf("failed to delete brand: %w", err)
	}

	r.logger.Infow("brand deleted successfully", "id", id)
	return nil
}
