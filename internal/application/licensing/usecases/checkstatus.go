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

type CheckStatusCommand struct {
	LicenseKey string
}

type CheckStatusUseCase struct {
	keyRepo        license.KeyRepository
	licenseRepo    license.Repository
	productRepo    brand.ProductRepository
	activationRepo license.ActivationRepository
	brandRepo      brand.Repository
	logger         logger.Interface
}

func NewCheckStatusUseCase(
	keyRepo license.KeyRepository,
	licenseRepo license.Repository,
	productRepo brand.ProductRepository,
	activationRepo license.ActivationRepository,
	brandRepo brand.Repository,
	logger logger.Interface,
) *CheckStatusUseCase {
	return &CheckStatusUseCase{
		keyRepo:        keyRepo,
		licenseRepo:    licenseRepo,
		productRepo:    productRepo,
		activationRepo: activationRepo,
		brandRepo:      brandRepo,
		logger:         logger,
	}
}

// Execute returns the full entitlement snapshot of a key. Seat counts are
// computed from the live activation rows at read time, not cached.
func (uc *CheckStatusUseCase) Execute(ctx context.Context, cmd CheckStatusCommand) (*dto.KeySnapshotDTO, error) {
	key, err := uc.keyRepo.GetByKey(ctx, cmd.LicenseKey)
	if err != nil {
		uc.logger.Errorw("failed to get license key", "error", err)
		return nil, fmt.Errorf("failed to get license key: %w", err)
	}
	if key == nil {
		return nil, errors.NewNotFoundError("license key not found")
	}

	owner, err := uc.brandRepo.GetByID(ctx, key.BrandID())
	if err != nil {
		uc.logger.Errorw("failed to get brand", "error", err, "brand_id", key.BrandID())
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}

	brandName := ""
	if owner != nil {
		brandName = owner.Name()
	}

	licenses, err := uc.buildLicenseSnapshots(ctx, key.ID())
	if err != nil {
		return nil, err
	}

	return &dto.KeySnapshotDTO{
		Key:           key.Key(),
		CustomerEmail: key.CustomerEmail(),
		Brand:         brandName,
		Licenses:      licenses,
	}, nil
}

func (uc *CheckStatusUseCase) buildLicenseSnapshots(ctx context.Context, licenseKeyID uint) ([]*dto.LicenseDTO, error) {
	licenses, err := uc.licenseRepo.ListByLicenseKey(ctx, licenseKeyID)
	if err != nil {
		uc.logger.Errorw("failed to list licenses", "error", err, "license_key_id", licenseKeyID)
		return nil, fmt.Errorf("failed to list licenses: %w", err)
	}

	now := time.Now().UTC()
	dtos := make([]*dto.LicenseDTO, 0, len(licenses))
	for _, lic := range licenses {
		product, err := uc.productRepo.GetByID(ctx, lic.ProductID())
		if err != nil {
			uc.logger.Errorw("failed to get product", "error", err, "product_id", lic.ProductID())
			return nil, fmt.Errorf("failed to get product: %w", err)
		}

		activeSeats, err := uc.activationRepo.CountActiveByLicense(ctx, lic.ID())
		if err != nil {
			uc.logger.Errorw("failed to count activations", "error", err, "license_id", lic.ID())
			return nil, fmt.Errorf("failed to count activations: %w", err)
		}

		dtos = append(dtos, dto.ToLicenseDTO(lic, product, activeSeats, now))
	}
	return dtos, nil
}
