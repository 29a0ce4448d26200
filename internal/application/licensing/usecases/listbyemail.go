package usecases

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"keymint/internal/application/licensing/dto"
	"keymint/internal/domain/brand"
	"keymint/internal/domain/license"
	"keymint/internal/shared/errors"
	"keymint/internal/shared/logger"
	"keymint/internal/shared/utils"
)

type ListByEmailCommand struct {
	CustomerEmail string
}

type ListByEmailUseCase struct {
	keyRepo        license.KeyRepository
	licenseRepo    license.Repository
	productRepo    brand.ProductRepository
	activationRepo license.ActivationRepository
	brandRepo      brand.Repository
	logger         logger.Interface
}

func NewListByEmailUseCase(
	keyRepo license.KeyRepository,
	licenseRepo license.Repository,
	productRepo brand.ProductRepository,
	activationRepo license.ActivationRepository,
	brandRepo brand.Repository,
	logger logger.Interface,
) *ListByEmailUseCase {
	return &ListByEmailUseCase{
		keyRepo:        keyRepo,
		licenseRepo:    licenseRepo,
		productRepo:    productRepo,
		activationRepo: activationRepo,
		brandRepo:      brandRepo,
		logger:         logger,
	}
}

// Execute looks up every key a customer holds across all brands, grouped per
// brand. This is the single deliberate cross-brand read path; it never
// exposes internal identifiers and never feeds a mutation.
func (uc *ListByEmailUseCase) Execute(ctx context.Context, cmd ListByEmailCommand) (*dto.CustomerKeysDTO, error) {
	email := strings.TrimSpace(strings.ToLower(cmd.CustomerEmail))
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, errors.NewValidationError("invalid customer email", email)
	}

	keys, err := uc.keyRepo.ListByCustomerEmail(ctx, email)
	if err != nil {
		uc.logger.Errorw("failed to list license keys", "error", err, "email", utils.MaskEmail(email))
		return nil, fmt.Errorf("failed to list license keys: %w", err)
	}

	now := time.Now().UTC()
	groups := make(map[string]*dto.BrandKeyGroupDTO)
	for _, key := range keys {
		owner, err := uc.brandRepo.GetByID(ctx, key.BrandID())
		if err != nil {
			uc.logger.Errorw("failed to get brand", "error", err, "brand_id", key.BrandID())
			return nil, fmt.Errorf("failed to get brand: %w", err)
		}

		brandName := ""
		if owner != nil {
			brandName = owner.Name()
		}

		snapshot, err := uc.buildKeySnapshot(ctx, key, brandName, now)
		if err != nil {
			return nil, err
		}

		group, ok := groups[brandName]
		if !ok {
			group = &dto.BrandKeyGroupDTO{Brand: brandName}
			groups[brandName] = group
		}
		group.Keys = append(group.Keys, snapshot)
	}

	brandNames := make([]string, 0, len(groups))
	for name := range groups {
		brandNames = append(brandNames, name)
	}
	sort.Strings(brandNames)

	result := &dto.CustomerKeysDTO{
		CustomerEmail: email,
		Brands:        make([]*dto.BrandKeyGroupDTO, 0, len(groups)),
	}
	for _, name := range brandNames {
		result.Brands = append(result.Brands, groups[name])
	}

	uc.logger.Infow("cross-brand lookup served", "email", utils.MaskEmail(email), "keys", len(keys))
	return result, nil
}

func (uc *ListByEmailUseCase) buildKeySnapshot(ctx context.Context, key *license.LicenseKey, brandName string, now time.Time) (*dto.KeySnapshotDTO, error) {
	licenses, err := uc.licenseRepo.ListByLicenseKey(ctx, key.ID())
	if err != nil {
		uc.logger.Errorw("failed to list licenses", "error", err, "license_key_id", key.ID())
		return nil, fmt.Errorf("failed to list licenses: %w", err)
	}

	licenseDTOs := make([]*dto.LicenseDTO, 0, len(licenses))
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

		licenseDTOs = append(licenseDTOs, dto.ToLicenseDTO(lic, product, activeSeats, now))
	}

	return &dto.KeySnapshotDTO{
		Key:           key.Key(),
		CustomerEmail: key.CustomerEmail(),
		Brand:         brandName,
		Licenses:      licenseDTOs,
	}, nil
}
