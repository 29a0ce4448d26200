package brand

import "context"

// Repository defines the interface for brand persistence.
type Repository interface {
	Create(ctx context.Context, b *Brand) error
	GetByID(ctx context.Context, id uint) (*Brand, error)
	GetByAPIKey(ctx context.Context, apiKey string) (*Brand, error)
	GetByName(ctx context.Context, name string) (*Brand, error)
	List(ctx context.Context) ([]*Brand, error)
	Update(ctx context.Context, b *Brand) error
	Delete(ctx context.Context, id uint) error
}

// ProductRepository defines the interface for product persistence.
type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id uint) (*Product, error)
	GetByBrandAndSlug(ctx context.Context, brandID uint, slug string) (*Product, error)
	ListByBrand(ctx context.Context, brandID uint) ([]*Product, error)
	ListByIDs(ctx context.Context, ids []uint) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uint) error
}
