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

const (
	ActionSuspend = "suspend"
	ActionResume  = "resume"
	ActionCancel  = "cancel"
	ActionRenew   = "renew"
)

type ChangeLifecycleCommand struct {
	BrandID      uint
	LicenseID    string // public license ID (lic_...)
	Action       string
	NewExpiresAt *time.Time // required for renew
}

type ChangeLifecycleUseCase struct {
	licenseRepo    license.Repository
	keyRepo        license.KeyRepository
	productRepo    brand.ProductRepository
	activationRepo license.ActivationRepository
	logger         logger.Interface
}

func NewChangeLifecycleUseCase(
	licenseRepo license.Repository,
	keyRepo license.KeyRepository,
	productRepo brand.ProductRepository,
	activationRepo license.ActivationRepository,
	logger logger.Interface,
) *ChangeLifecycleUseCase {
	return &ChangeLifecycleUseCase{
		licenseRepo:    licenseRepo,
		keyRepo:        keyRepo,
		productRepo:    productRepo,
		activationRepo: activationRepo,
		logger:         logger,
	}
}

// Execute applies a lifecycle action to a license after verifying the
// calling brand owns it. Licenses are addressed by public ID here, so a
// foreign brand's guess must fail closed with Forbidden rather than leak
// via NotFound-vs-Forbidden timing.
func (uc *ChangeLifecycleUseCase) Execute(ctx context.Context, cmd ChangeLifecycleCommand) (*dto.LicenseDTO, error) {
	lic, err := uc.licenseRepo.GetByLID(ctx, cmd.LicenseID)
	if err != nil {
		uc.logger.Errorw("failed to get license", "error", err, "license_id", cmd.LicenseID)
		return nil, fmt.Errorf("failed to get license: %w", err)
	}
	if lic == nil {
		return nil, errors.NewNotFoundError("license not found")
	}

	key, err := uc.keyRepo.GetByID(ctx, lic.LicenseKeyID())
	if err != nil {
		uc.logger.Errorw("failed to get license key", "error", err, "license_key_id", lic.LicenseKeyID())
		return nil, fmt.Errorf("failed to get license key: %w", err)
	}
	if key == nil || key.BrandID() != cmd.BrandID {
		uc.logger.Warnw("cross-brand lifecycle attempt rejected", "brand_id", cmd.BrandID, "license_id", cmd.LicenseID)
		return nil, errors.NewForbiddenError("license does not belong to this brand")
	}

	now := time.Now().UTC()
	switch cmd.Action {
	case ActionSuspend:
		err = lic.Suspend()
	case ActionResume:
		err = lic.Resume()
	case ActionCancel:
		err = lic.Cancel()
	case ActionRenew:
		if cmd.NewExpiresAt == nil {
			return nil, errors.NewValidationError("renew requires a new expiration")
		}
		err = lic.Renew(*cmd.NewExpiresAt, now)
	default:
		return nil, errors.NewValidationError(fmt.Sprintf("unknown lifecycle action: %s", cmd.Action))
	}
	if err != nil {
		return nil, err
	}

	if err := uc.licenseRepo.Update(ctx, lic); err != nil {
		uc.logger.Errorw("failed to update license", "error", err, "license_id", lic.ID())
		return nil, fmt.Errorf("failed to update license: %w", err)
	}

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

	uc.logger.Infow("license lifecycle changed",
		"brand_id", cmd.BrandID,
		"license_id", cmd.LicenseID,
		"action", cmd.Action,
		"status", lic.Status().String(),
	)
	return dto.ToLicenseDTO(lic, product, activeSeats, now), nil
}
