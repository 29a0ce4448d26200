package mappers

import (
	"encoding/json"
	"fmt"

	"keymint/internal/domain/license"
	vo "keymint/internal/domain/license/valueobjects"
	"keymint/internal/infrastructure/persistence/models"
	"keymint/internal/shared/mapper"
)

type LicenseMapper interface {
	ToEntity(model *models.LicenseModel) (*license.License, error)
	ToModel(entity *license.License) (*models.LicenseModel, error)
	ToEntities(models []*models.LicenseModel) ([]*license.License, error)
}

type LicenseMapperImpl struct{}

func NewLicenseMapper() LicenseMapper {
	return &LicenseMapperImpl{}
}

func (m *LicenseMapperImpl) ToEntity(model *models.LicenseModel) (*license.License, error) {
	if model == nil {
		return nil, nil
	}

	status, err := vo.NewLicenseStatus(model.Status)
	if err != nil {
		return nil, err
	}

	var metadata map[string]any
	if model.Metadata != nil {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	return license.ReconstructLicense(
		model.ID,
		model.LID,
		model.LicenseKeyID,
		model.ProductID,
		status,
		model.ExpiresAt,
		model.MaxSeats,
		metadata,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *LicenseMapperImpl) ToModel(entity *license.License) (*models.LicenseModel, error) {
	if entity == nil {
		return nil, nil
	}

	model := &models.LicenseModel{
		ID:           entity.ID(),
		LID:          entity.LID(),
		LicenseKeyID: entity.LicenseKeyID(),
		ProductID:    entity.ProductID(),
		Status:       entity.Status().String(),
		ExpiresAt:    entity.ExpiresAt(),
		MaxSeats:     entity.MaxSeats(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}

	if entity.Metadata() != nil {
		data, err := json.Marshal(entity.Metadata())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}
		model.Metadata = data
	}

	return model, nil
}

func (m *LicenseMapperImpl) ToEntities(licenseModels []*models.LicenseModel) ([]*license.License, error) {
	return mapper.MapSlicePtrWithID(
		licenseModels,
		m.ToEntity,
		func(model *models.LicenseModel) uint { return model.ID },
	)
}
