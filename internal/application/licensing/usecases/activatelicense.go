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

type ActivateLicenseCommand struct {
	LicenseKey  string
	ProductSlug string
	InstanceID  string
}

type ActivateLicenseUseCase struct {
	keyRepo        license.KeyRepository
	licenseRepo    license.Repository
	productRepo    brand.ProductRepository
	activationRepo license.ActivationRepository
	txManager      TransactionManager
	logger         logger.Interface
}

func NewActivateLicenseUseCase(
	keyRepo license.KeyRepository,
	licenseRepo license.Repository,
	productRepo brand.ProductRepository,
	activationRepo license.ActivationRepository,
	txManager TransactionManager,
	logger logger.Interface,
) *ActivateLicenseUseCase {
	return &ActivateLicenseUseCase{
		keyRepo:        keyRepo,
		licenseRepo:    licenseRepo,
		productRepo:    productRepo,
		activationRepo: activationRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// Execute activates a license seat for an instance. Re-activating an
// already-active instance is idempotent and returns the existing row. The
// seat-count check and the activation write run under a row lock on the
// license, so two concurrent activations cannot both take the last seat.
func (uc *ActivateLicenseUseCase) Execute(ctx context.Context, cmd ActivateLicenseCommand) (*dto.ActivationDTO, error) {
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

	now := time.Now().UTC()
	if !lic.IsUsable(now) {
		return nil, errors.NewLicenseNotValidError(lic.InvalidityReason(now))
	}

	var result *dto.ActivationDTO
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		// Lock the license row: the seat count read and the activation
		// write below must be one atomic unit.
		locked, err := uc.licenseRepo.GetByIDForUpdate(txCtx, lic.ID())
		if err != nil {
			uc.logger.Errorw("failed to lock license", "error", err, "license_id", lic.ID())
			return fmt.Errorf("failed to lock license: %w", err)
		}
		if locked == nil {
			return errors.NewNotFoundError("license not found")
		}
		if !locked.IsUsable(now) {
			return errors.NewLicenseNotValidError(locked.InvalidityReason(now))
		}

		existing, err := uc.activationRepo.GetByLicenseAndInstance(txCtx, locked.ID(), cmd.InstanceID)
		if err != nil {
			uc.logger.Errorw("failed to get activation", "error", err, "license_id", locked.ID())
			return fmt.Errorf("failed to get activation: %w", err)
		}

		activeSeats, err := uc.activationRepo.CountActiveByLicense(txCtx, locked.ID())
		if err != nil {
			uc.logger.Errorw("failed to count activations", "error", err, "license_id", locked.ID())
			return fmt.Errorf("failed to count activations: %w", err)
		}

		if existing != nil && existing.IsActive() {
			// Idempotent: a repeated activate returns the live row without
			// consuming another seat.
			result = dto.ToActivationDTO(existing, locked.RemainingSeats(activeSeats), locked.MaxSeats() == nil)
			return nil
		}

		// Any new consumption, fresh row or revival, counts against the cap.
		if locked.MaxSeats() != nil && activeSeats >= *locked.MaxSeats() {
			return errors.NewSeatLimitExceededError(*locked.MaxSeats())
		}

		var activation *license.Activation
		if existing != nil {
			if err := existing.Revive(); err != nil {
				return fmt.Errorf("failed to revive activation: %w", err)
			}
			if err := uc.activationRepo.Update(txCtx, existing); err != nil {
				uc.logger.Errorw("failed to update activation", "error", err, "activation_id", existing.ID())
				return fmt.Errorf("failed to update activation: %w", err)
			}
			activation = existing
		} else {
			activation, err = license.NewActivation(locked.ID(), cmd.InstanceID)
			if err != nil {
				return errors.NewValidationError(err.Error())
			}
			if err := uc.activationRepo.Create(txCtx, activation); err != nil {
				uc.logger.Errorw("failed to create activation", "error", err, "license_id", locked.ID())
				return fmt.Errorf("failed to create activation: %w", err)
			}
		}

		result = dto.ToActivationDTO(activation, locked.RemainingSeats(activeSeats+1), locked.MaxSeats() == nil)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("license activated",
		"product_slug", cmd.ProductSlug,
		"license_id", lic.LID(),
	)
	return result, nil
}
