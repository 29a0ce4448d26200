package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"keymint/internal/application/licensing/dto"
	"keymint/internal/domain/brand"
	"keymint/internal/domain/license"
	"keymint/internal/shared/errors"
	"keymint/internal/shared/logger"
)

var validate = validator.New()

type ProductRequest struct {
	Slug      string
	ExpiresAt *time.Time
	MaxSeats  *int
}

type ProvisionLicenseCommand struct {
	BrandID       uint
	CustomerEmail string
	Products      []ProductRequest
}

type ProvisionLicenseUseCase struct {
	keyRepo        license.KeyRepository
	licenseRepo    license.Repository
	productRepo    brand.ProductRepository
	brandRepo      brand.Repository
	activationRepo license.ActivationRepository
	keyGen         KeyGenerator
	txManager      TransactionManager
	logger         logger.Interface
}

func NewProvisionLicenseUseCase(
	keyRepo license.KeyRepository,
	licenseRepo license.Repository,
	productRepo brand.ProductRepository,
	brandRepo brand.Repository,
	activationRepo license.ActivationRepository,
	keyGen KeyGenerator,
	txManager TransactionManager,
	logger logger.Interface,
) *ProvisionLicenseUseCase {
	return &ProvisionLicenseUseCase{
		keyRepo:        keyRepo,
		licenseRepo:    licenseRepo,
		productRepo:    productRepo,
		brandRepo:      brandRepo,
		activationRepo: activationRepo,
		keyGen:         keyGen,
		txManager:      txManager,
		logger:         logger,
	}
}

// Execute provisions licenses for a customer purchase. The customer's key is
// created on first purchase and reused afterwards; repurchasing a product
// with a live license extends it in place. All writes happen in one
// transaction: an unknown product slug aborts the whole call.
func (uc *ProvisionLicenseUseCase) Execute(ctx context.Context, cmd ProvisionLicenseCommand) (*dto.ProvisionResultDTO, error) {
	email := strings.TrimSpace(strings.ToLower(cmd.CustomerEmail))
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, errors.NewValidationError("invalid customer email", email)
	}
	if len(cmd.Products) == 0 {
		return nil, errors.NewValidationError("at least one product is required")
	}

	owner, err := uc.brandRepo.GetByID(ctx, cmd.BrandID)
	if err != nil {
		uc.logger.Errorw("failed to get brand", "error", err, "brand_id", cmd.BrandID)
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}
	if owner == nil {
		return nil, errors.NewNotFoundError("brand not found")
	}

	// Resolve every product up front so a single unknown slug fails the
	// request before any write.
	products := make([]*brand.Product, 0, len(cmd.Products))
	for _, req := range cmd.Products {
		product, err := uc.productRepo.GetByBrandAndSlug(ctx, cmd.BrandID, req.Slug)
		if err != nil {
			uc.logger.Errorw("failed to get product", "error", err, "brand_id", cmd.BrandID, "slug", req.Slug)
			return nil, fmt.Errorf("failed to get product: %w", err)
		}
		if product == nil {
			return nil, errors.NewNotFoundError(fmt.Sprintf("product not found: %s", req.Slug))
		}
		products = append(products, product)
	}

	var result *dto.ProvisionResultDTO
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		key, created, err := uc.getOrCreateKey(txCtx, cmd.BrandID, email)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		licenseDTOs := make([]*dto.LicenseDTO, 0, len(cmd.Products))
		for i, req := range cmd.Products {
			product := products[i]

			lic, err := uc.licenseRepo.GetByKeyAndProduct(txCtx, key.ID(), product.ID())
			if err != nil {
				uc.logger.Errorw("failed to get license", "error", err, "license_key_id", key.ID(), "product_id", product.ID())
				return fmt.Errorf("failed to get license: %w", err)
			}

			if lic != nil && lic.IsUsable(now) {
				// Repurchase of a live product license extends it in place.
				if err := lic.ExtendTo(req.ExpiresAt, req.MaxSeats); err != nil {
					return err
				}
				if err := uc.licenseRepo.Update(txCtx, lic); err != nil {
					uc.logger.Errorw("failed to update license", "error", err, "license_id", lic.ID())
					return fmt.Errorf("failed to update license: %w", err)
				}
			} else {
				lic, err = license.NewLicense(key.ID(), product.ID(), req.ExpiresAt, req.MaxSeats)
				if err != nil {
					return errors.NewValidationError(err.Error())
				}
				if err := uc.licenseRepo.Create(txCtx, lic); err != nil {
					uc.logger.Errorw("failed to create license", "error", err, "license_key_id", key.ID(), "product_id", product.ID())
					return fmt.Errorf("failed to create license: %w", err)
				}
			}

			activeSeats, err := uc.activationRepo.CountActiveByLicense(txCtx, lic.ID())
			if err != nil {
				uc.logger.Errorw("failed to count activations", "error", err, "license_id", lic.ID())
				return fmt.Errorf("failed to count activations: %w", err)
			}

			licenseDTOs = append(licenseDTOs, dto.ToLicenseDTO(lic, product, activeSeats, now))
		}

		result = &dto.ProvisionResultDTO{
			LicenseKey: dto.ToLicenseKeyDTO(key, owner.Name()),
			Created:    created,
			Licenses:   licenseDTOs,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("licenses provisioned",
		"brand_id", cmd.BrandID,
		"created", result.Created,
		"products", len(result.Licenses),
	)
	return result, nil
}

// getOrCreateKey returns the customer's existing key for the brand or mints
// a new one. A concurrent first purchase for the same customer can race on
// the (brand, email) unique constraint; the loser re-reads the winner's row
// once.
func (uc *ProvisionLicenseUseCase) getOrCreateKey(ctx context.Context, brandID uint, email string) (*license.LicenseKey, bool, error) {
	key, err := uc.keyRepo.GetByBrandAndEmail(ctx, brandID, email)
	if err != nil {
		uc.logger.Errorw("failed to get license key", "error", err, "brand_id", brandID)
		return nil, false, fmt.Errorf("failed to get license key: %w", err)
	}
	if key != nil {
		return key, false, nil
	}

	keyString, err := uc.keyGen.Generate(ctx, uc.keyRepo.KeyExists)
	if err != nil {
		uc.logger.Errorw("failed to generate license key string", "error", err, "brand_id", brandID)
		return nil, false, err
	}

	key, err = license.NewLicenseKey(brandID, keyString, email)
	if err != nil {
		return nil, false, errors.NewValidationError(err.Error())
	}

	if err := uc.keyRepo.Create(ctx, key); err != nil {
		if !errors.IsDuplicateError(err) {
			uc.logger.Errorw("failed to create license key", "error", err, "brand_id", brandID)
			return nil, false, fmt.Errorf("failed to create license key: %w", err)
		}

		// Lost the creation race: the other writer's key is authoritative.
		existing, readErr := uc.keyRepo.GetByBrandAndEmail(ctx, brandID, email)
		if readErr != nil {
			uc.logger.Errorw("failed to re-read license key after conflict", "error", readErr, "brand_id", brandID)
			return nil, false, fmt.Errorf("failed to re-read license key: %w", readErr)
		}
		if existing == nil {
			return nil, false, errors.NewConflictError("license key creation conflict")
		}
		return existing, false, nil
	}

	return key, true, nil
}
