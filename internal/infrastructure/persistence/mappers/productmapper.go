package mappers

import (
	"keymint/internal/domain/brand"
	"keymint/internal/infrastructure/persistence/models"
	"keymint/internal/shared/mapper"
)

type ProductMapper interface {
	ToEntity(model *models.ProductModel) (*brand.Product, error)
	ToModel(entity *brand.Product) (*models.ProductModel, error)
	ToEntities(models []*models.ProductModel) ([]*brand.Product, error)
}

type ProductMapperImpl struct{}

func NewProductMapper() ProductMapper {
	return &ProductMapperImpl{}
}

func (m *ProductMapperImpl) ToEntity(model *models.ProductModel) (*brand.Product, error) {
	if model == nil {
		return nil, nil
	}

	return brand.ReconstructProduct(
		model.ID,
		model.PID,
		model.BrandID,
		model.Name,
		model.Slug,
		model.IsActive,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *ProductMapperImpl) ToModel(entity *brand.Product) (*models.ProductModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.ProductModel{
		ID:        entity.ID(),
		PID:       entity.PID(),
		BrandID:   entity.BrandID(),
		Name:      entity.Name(),
		Slug:      entity.Slug(),
		IsActive:  entity.IsActive(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}, nil
}

func (m *ProductMapperImpl) ToEntities(productModels []*models.ProductModel) ([]*brand.Product, error) {
	return mapper.MapSlicePtrWithID(
		productModels,
		m.ToEntity,
		func(model *models.ProductModel) uint { return model.ID },
	)
}
