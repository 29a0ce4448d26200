package handlers

import (
	"context"

	licdto "keymint/internal/application/licensing/dto"
	"keymint/internal/application/licensing/usecases"
)

// Use case interfaces for BrandLicenseHandler

type provisionLicenseUseCase interface {
	Execute(ctx context.Context, cmd usecases.ProvisionLicenseCommand) (*licdto.ProvisionResultDTO, error)
}

type addProductUseCase interface {
	Execute(ctx context.Context, cmd usecases.AddProductCommand) (*licdto.LicenseDTO, error)
}

type changeLifecycleUseCase interface {
	Execute(ctx context.Context, cmd usecases.ChangeLifecycleCommand) (*licdto.LicenseDTO, error)
}

type listByEmailUseCase interface {
	Execute(ctx context.Context, cmd usecases.ListByEmailCommand) (*licdto.CustomerKeysDTO, error)
}

// Use case interfaces for ProductLicenseHandler

type activateLicenseUseCase interface {
	Execute(ctx context.Context, cmd usecases.ActivateLicenseCommand) (*licdto.ActivationDTO, error)
}

type deactivateLicenseUseCase interface {
	Execute(ctx context.Context, cmd usecases.DeactivateLicenseCommand) (*licdto.ActivationDTO, error)
}

type checkStatusUseCase interface {
	Execute(ctx context.Context, cmd usecases.CheckStatusCommand) (*licdto.KeySnapshotDTO, error)
}
