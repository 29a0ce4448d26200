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

type ProductRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ProductMapper
	logger logger.Interface
}

func NewProductRepository(db *gorm.DB, logger logger.Interface) brand.ProductRepository {
	return &ProductRepositoryImpl{
		db:     db,
		mapper: mappers.NewProductMapper(),
		logger: logger,
	}
}

func (r *ProductRepositoryImpl) Create(ctx context.Context, productEntity *brand.Product) error {
	model, err := r.mapper.ToModel(productEntity)
	if err != nil {
		r.logger.Errorw("failed to map product entity to model", "error", err)
		return fmt.Errorf("failed to map product entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create product in database", "error", err)
		return fmt.Errorf("failed to create product: %w", err)
	}

	if err := productEntity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set product ID: %w", err)
	}

	r.logger.Infow("product created successfully", "id", model.ID, "brand_id", model.BrandID, "slug", model.Slug)
	return nil
}

func (r *ProductRepositoryImpl) GetByID(ctx context.Context, id uint) (*brand.Product, error) {
	var model models.ProductModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get product by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// GetByBrandAndSlug is the brand-scoped product lookup used on every
// provisioning and activation path.
func (r *ProductRepositoryImpl) GetByBrandAndSlug(ctx context.Context, brandID uint, slug string) (*brand.Product, error) {
	var model models.ProductModel

	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.BrandScoped(brandID)).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get product by brand and slug", "brand_id", brandID, "slug", slug, "error", err)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *ProductRepositoryImpl) ListByBrand(ctx context.Context, brandID uint) ([]*brand.Product, error) {
	var productModels []*models.ProductModel

	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.BrandScoped(brandID)).
		Order("slug").
		Find(&productModels).Error
	if err != nil {
		r.logger.Errorw("failed to list products by brand", "brand_id", brandID, "error", err)
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return r.mapper.ToEntities(productModels)
}

func (r *ProductRepositoryImpl) ListByIDs(ctx context.Context, ids []uint) ([]*brand.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var productModels []*models.ProductModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Find(&productModels).Error; err != nil {
		r.logger.Errorw("failed to list products by IDs", "error", err)
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return r.mapper.ToEntities(productModels)
}

func (r *ProductRepositoryImpl) Update(ctx context.Context, productEntity *brand.Product) error {
	model, err := r.mapper.ToModel(productEntity)
	if err != nil {
		r.logger.Errorw("failed to map product entity to model", "error", err)
		return fmt.Errorf("failed to map product entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Save(model).Error; err != nil {
		r.logger.Errorw("failed to update product", "id", model.ID, "error", err)
		return fmt.Errorf("failed to update product: %w", err)
	}

	return nil
}

func (r *ProductRepositoryImpl) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.ProductModel{}, id).Error; err != nil {
		r.logger.Errorw("failed to delete product", "id", id, "error", err)
		return fmt.Errorf("failed to delete product: %w", err)
	}

	r.logger.Infow("product deleted successfully", "id", id)
	return nil
}
