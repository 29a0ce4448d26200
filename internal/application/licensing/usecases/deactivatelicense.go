package usecases

import (
	"context"
	"fmt"

	"keymint/internal/application/licensing/dto"
	"keymint/internal/domain/brand"
	"keymint/internal/domain/license"
	"keymint/internal/shared/errors"
	"keymint/internal/shared/logger"
)

type DeactivateLicenseCommand struct {
	LicenseKey  string
	ProductSlug string
	InstanceID  string
}

type DeactivateLicenseUseCase struct {
	keyRepo        license.KeyRepository
	licenseRepo    license.Repository
	productRepo    brand.ProductRepository
	activationRepo license.ActivationRepository
	txManager      TransactionManager
	logger         logger.Interface
}

func NewDeactivateLicenseUseCase(
	keyRepo license.KeyRepository,
	licenseRepo license.Repository,
	productRepo brand.ProductRepository,
	activationRepo license.ActivationRepository,
	txManager TransactionManager,
	logger logger.Interface,
) *DeactivateLicenseUseCase {
	return &DeactivateLicenseUseCase{
		keyRepo:        keyRepo,
		licenseRepo:    licenseRepo,
		productRepo:    productRepo,
		activationRepo: activationRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// Execute frees the seat held by an instance. Unlike activate, this is not
// idempotent: deactivating an instance with no live activation is an error,
// so the caller learns the destructive intent did not apply.
func (uc *DeactivateLicenseUseCase) Execute(ctx context.Context, cmd DeactivateLicenseCommand) (*dto.ActivationDTO, error) {
	if cmd.InstanceID == "" {
		return nil, errors.NewValidationError("instance ID is required")
	}

	key, err := uc.keyRepo.GetByKey(ctx, cmd.LicenseKey)
	if err != nil {
		uc.logger.Errorw("failed to get license key", "error", err)
		return nil, fmt.Errorf("failed to get license key: %w", err)
	}
	if key == nil {
		return nil, errors.NewNotFoundError("license key not found")
	}

	product, err := uc.productRepo.GetByBrandAndSlug(ctx, key.BrandID(), cmd.ProductSlug)
	if err != nil {
		uc.logger.Errorw("failed to get product", "error", err, "slug", cmd.ProductSlug)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product not found: %s", cmd.ProductSlug))
	}

	lic, err := uc.licenseRepo.GetByKeyAndProduct(ctx, key.ID(), product.ID())
	if err != nil {
		uc.logger.Errorw("failed to get license", "error", err, "license_key_id", key.ID(), "product_id", product.ID())
		return nil, fmt.Errorf("failed to get license: %w", err)
	}
	if lic == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("no license for product: %s", cmd.ProductSlug))
	}

	var result *dto.ActivationDTO
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		locked, err := uc.licenseRepo.GetByIDForUpdate(txCtx, lic.ID())
		if err != nil {
			uc.logger.Errorw("failed to lock license", "error", err, "license_id", lic.ID())
			return fmt.Errorf("failed to lock license: %w", err)
		}
		if locked == nil {
			return errors.NewNotFoundError("license not found")
		}

		activation, err := uc.activationRepo.GetByLicenseAndInstance(txCtx, locked.ID(), cmd.InstanceID)
		if err != nil {
			uc.logger.Errorw("failed to get activation", "error", err, "license_id", locked.ID())
			return fmt.Errorf("failed to get activation: %w", err)
		}
		if activation == nil || !activation.IsActive() {
			return errors.NewActivationNotFoundError(cmd.InstanceID)
		}

		if err := activation.Deactivate(); err != nil {
			return fmt.Errorf("failed to deactivate activation: %w", err)
		}
		if err := uc.activationRepo.Update(txCtx, activation); err != nil {
			uc.logger.Errorw("failed to update activation", "error", err, "activation_id", activation.ID())
			return fmt.Errorf("failed to update activation: %w", err)
		}

		activeSeats, err := uc.activationRepo.CountActiveByLicense(txCtx, locked.ID())
		if err != nil {
			uc.logger.Errorw("failed to count activations", "error", err, "license_id", locked.ID())
			return fmt.Errorf("failed to count activations: %w", err)
		}

		result = dto.ToActivationDTO(activation, locked.RemainingSeats(activeSeats), locked.MaxSeats() == nil)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("license deactivated",
		"product_slug", cmd.ProductSlug,
		"license_id", lic.LID(),
	)
	return result, nil
}
