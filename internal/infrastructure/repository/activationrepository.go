package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"keymint/internal/domain/license"
	"keymint/internal/infrastructure/persistence/mappers"
	"keymint/internal/infrastructure/persistence/models"
	"keymint/internal/shared/db"
	"keymint/internal/shared/logger"
)

type ActivationRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ActivationMapper
	logger logger.Interface
}

func NewActivationRepository(db *gorm.DB, logger logger.Interface) license.ActivationRepository {
	return &ActivationRepositoryImpl{
		db:     db,
		mapper: mappers.NewActivationMapper(),
		logger: logger,
	}
}

func (r *ActivationRepositoryImpl) Create(ctx context.Context, activationEntity *license.Activation) error {
	model, err := r.mapper.ToModel(activationEntity)
	if err != nil {
		r.logger.Errorw("failed to map activation entity to model", "error", err)
		return fmt.Errorf("failed to map activation entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create activation in database", "error", err)
		return fmt.Errorf("failed to create activation: %w", err)
	}

	if err := activationEntity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set activation ID: %w", err)
	}

	r.logger.Infow("activation created successfully",
		"id", model.ID,
		"license_id", model.LicenseID,
		"instance_id", model.InstanceID,
	)
	return nil
}

func (r *ActivationRepositoryImpl) GetByID(ctx context.Context, id uint) (*license.Activation, error) {
	var model models.ActivationModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get activation by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get activation: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *ActivationRepositoryImpl) GetByLicenseAndInstance(ctx context.Context, licenseID uint, instanceID string) (*license.Activation, error) {
	var model models.ActivationModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("license_id = ? AND instance_id = ?", licenseID, instanceID).
		Order("id DESC").
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get activation by license and instance",
			"license_id", licenseID, "instance_id", instanceID, "error", err)
		return nil, fmt.Errorf("failed to get activation: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *ActivationRepositoryImpl) CountActiveByLicense(ctx context.Context, licenseID uint) (int, error) {
	var count int64

	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ActivationModel{}).
		Where("license_id = ? AND is_active = ?", licenseID, true).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count active activations", "license_id", licenseID, "error", err)
		return 0, fmt.Errorf("failed to count activations: %w", err)
	}

	return int(count), nil
}

func (r *ActivationRepositoryImpl) ListByLicense(ctx context.Context, licenseID uint) ([]*license.Activation, error) {
	var activationModels []*models.ActivationModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("license_id = ?", licenseID).
		Order("id").
		Find(&activationModels).Error
	if err != nil {
		r.logger.Errorw("failed to list activations by license", "license_id", licenseID, "error", err)
		return nil, fmt.Errorf("failed to list activations: %w", err)
	}

	return r.mapper.ToEntities(activationModels)
}

func (r *ActivationRepositoryImpl) Update(ctx context.Context, activationEntity *license.Activation) error {
	model, err := r.mapper.ToModel(activationEntity)
	if err != nil {
		r.logger.Errorw("failed to map activation entity to model", "error", err)
		return fmt.Errorf("failed to map activation entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Save(model).Error; err != nil {
		r.logger.Errorw("failed to update activation", "id", model.ID, "error", err)
		return fmt.Errorf("failed to update activation: %w", err)
	}

	return nil
}
