package mappers

import (
	"fmt"

	"github.com/google/uuid"

	"keymint/internal/domain/license"
	"keymint/internal/infrastructure/persistence/models"
	"keymint/internal/shared/mapper"
)

type ActivationMapper interface {
	ToEntity(model *models.ActivationModel) (*license.Activation, error)
	ToModel(entity *license.Activation) (*models.ActivationModel, error)
	ToEntities(models []*models.ActivationModel) ([]*license.Activation, error)
}

type ActivationMapperImpl struct{}

func NewActivationMapper() ActivationMapper {
	return &ActivationMapperImpl{}
}

func (m *ActivationMapperImpl) ToEntity(model *models.ActivationModel) (*license.Activation, error) {
	if model == nil {
		return nil, nil
	}

	token, err := uuid.Parse(model.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to parse activation token: %w", err)
	}

	return license.ReconstructActivation(
		model.ID,
		model.AID,
		token,
		model.LicenseID,
		model.InstanceID,
		model.IsActive,
		model.ActivatedAt,
		model.DeactivatedAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *ActivationMapperImpl) ToModel(entity *license.Activation) (*models.ActivationModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.ActivationModel{
		ID:            entity.ID(),
		AID:           entity.AID(),
		Token:         entity.Token().String(),
		LicenseID:     entity.LicenseID(),
		InstanceID:    entity.InstanceID(),
		IsActive:      entity.IsActive(),
		ActivatedAt:   entity.ActivatedAt(),
		DeactivatedAt: entity.DeactivatedAt(),
		CreatedAt:     entity.CreatedAt(),
		UpdatedAt:     entity.UpdatedAt(),
	}, nil
}

func (m *ActivationMapperImpl) ToEntities(activationModels []*models.ActivationModel) ([]*license.Activation, error) {
	return mapper.MapSlicePtrWithID(
		activationModels,
		m.ToEntity,
		func(model *models.ActivationModel) uint { return model.ID },
	)
}
