package mappers

import (
	"keymint/internal/domain/brand"
	"keymint/internal/infrastructure/persistence/models"
	"keymint/internal/shared/mapper"
)

type BrandMapper interface {
	ToEntity(model *models.BrandModel) (*brand.Brand, error)
	ToModel(entity *brand.Brand) (*models.BrandModel, error)
	ToEntities(models []*models.BrandModel) ([]*brand.Brand, error)
}

type BrandMapperImpl struct{}

func NewBrandMapper() BrandMapper {
	return &BrandMapperImpl{}
}

func (m *BrandMapperImpl) ToEntity(model *models.BrandModel) (*brand.Brand, error) {
	if model == nil {
		return nil, nil
	}

	return brand.ReconstructBrand(
		model.ID,
		model.BID,
		model.Name,
		model.APIKey,
		model.IsActive,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *BrandMapperImpl) ToModel(entity *brand.Brand) (*models.BrandModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.BrandModel{
		ID:        entity.ID(),
		BID:       entity.BID(),
		Name:      entity.Name(),
		APIKey:    entity.APIKey(),
		IsActive:  entity.IsActive(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}, nil
}

func (m *BrandMapperImpl) ToEntities(brandModels []*models.BrandModel) ([]*brand.Brand, error) {
	return mapper.MapSlicePtrWithID(
		brandModels,
		m.ToEntity,
		func(model *models.BrandModel) uint { return model.ID },
	)
}
