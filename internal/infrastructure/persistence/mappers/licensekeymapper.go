package mappers

import (
	"keymint/internal/domain/license"
	"keymint/internal/infrastructure/persistence/models"
	"keymint/internal/shared/mapper"
)

type LicenseKeyMapper interface {
	ToEntity(model *models.LicenseKeyModel) (*license.LicenseKey, error)
	ToModel(entity *license.LicenseKey) (*models.LicenseKeyModel, error)
	ToEntities(models []*models.LicenseKeyModel) ([]*license.LicenseKey, error)
}

type LicenseKeyMapperImpl struct{}

func NewLicenseKeyMapper() LicenseKeyMapper {
	return &LicenseKeyMapperImpl{}
}

func (m *LicenseKeyMapperImpl) ToEntity(model *models.LicenseKeyModel) (*license.LicenseKey, error) {
	if model == nil {
		return nil, nil
	}

	return license.ReconstructLicenseKey(
		model.ID,
		model.LKID,
		model.BrandID,
		model.Key,
		model.CustomerEmail,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *LicenseKeyMapperImpl) ToModel(entity *license.LicenseKey) (*models.LicenseKeyModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.LicenseKeyModel{
		ID:            entity.ID(),
		LKID:          entity.LKID(),
		BrandID:       entity.BrandID(),
		Key:           entity.Key(),
		CustomerEmail: entity.CustomerEmail(),
		CreatedAt:     entity.CreatedAt(),
		UpdatedAt:     entity.UpdatedAt(),
	}, nil
}

func (m *LicenseKeyMapperImpl) ToEntities(keyModels []*models.LicenseKeyModel) ([]*license.LicenseKey, error) {
	return mapper.MapSlicePtrWithID(
		keyModels,
		m.ToEntity,
		func(model *models.LicenseKeyModel) uint { return model.ID },
	)
}
