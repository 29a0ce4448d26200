package usecases

import (
	"context"
	"fmt"
	"time"

	"keymint/internal/application/licensing/dto"
	"keymint/internal/domain/brand"
	"keymint/internal/domain/license"
	"keymint/internal/shared/errors"
	"keymint/internal/shared/logger"
)

type AddProductCommand struct {
	BrandID    uint
	LicenseKey string
	Slug       string
	ExpiresAt  *time.Time
	MaxSeats   *int
}

type AddProductUseCase struct {
	keyRepo     license.KeyRepository
	licenseRepo license.Repository
	productRepo brand.ProductRepository
	logger      logger.Interface
}

func NewAddProductUseCase(
	keyRepo license.KeyRepository,
	licenseRepo license.Repository,
	productRepo brand.ProductRepository,
	logger logger.Interface,
) *AddProductUseCase {
	return &AddProductUseCase{
		keyRepo:     keyRepo,
		licenseRepo: licenseRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Execute grants an additional product license under an existing key. The
// key lookup is brand-scoped, so another brand's key behaves as nonexistent.
func (uc *AddProductUseCase) Execute(ctx context.Context, cmd AddProductCommand) (*dto.LicenseDTO, error) {
	key, err := uc.keyRepo.GetByBrandAndKey(ctx, cmd.BrandID, cmd.LicenseKey)
	if err != nil {
		uc.logger.Errorw("failed to get license key", "error", err, "brand_id", cmd.BrandID)
		return nil, fmt.Errorf("failed to get license key: %w", err)
	}
	if key == nil {
		return nil, errors.NewNotFoundError("license key not found")
	}

	product, err := uc.productRepo.GetByBrandAndSlug(ctx, cmd.BrandID, cmd.Slug)
	if err != nil {
		uc.logger.Errorw("failed to get product", "error", err, "brand_id", cmd.BrandID, "slug", cmd.Slug)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product not found: %s", cmd.Slug))
	}

	now := time.Now().UTC()
	existing, err := uc.licenseRepo.GetByKeyAndProduct(ctx, key.ID(), product.ID())
	if err != nil {
		uc.logger.Errorw("failed to get license", "error", err, "license_key_id", key.ID(), "product_id", product.ID())
		return nil, fmt.Errorf("failed to get license: %w", err)
	}
	if existing != nil && existing.IsUsable(now) {
		return nil, errors.NewConflictError(fmt.Sprintf("product already licensed under this key: %s", cmd.Slug))
	}

	lic, err := license.NewLicense(key.ID(), product.ID(), cmd.ExpiresAt, cmd.MaxSeats)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.licenseRepo.Create(ctx, lic); err != nil {
		uc.logger.Errorw("failed to create license", "error", err, "license_key_id", key.ID(), "product_id", product.ID())
		return nil, fmt.Errorf("failed to create license: %w", err)
	}

	uc.logger.Infow("product license added", "brand_id", cmd.BrandID, "slug", cmd.Slug, "license_id", lic.ID())
	return dto.ToLicenseDTO(lic, product, 0, now), nil
}
