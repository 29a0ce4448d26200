// Package seeds loads demo brands and products for local development.
package seeds

import (
	"context"
	"fmt"

	"keymint/internal/domain/brand"
	"keymint/internal/shared/logger"
	"keymint/internal/shared/utils"
)

type demoProduct struct {
	name string
	slug string
}

type demoBrand struct {
	name     string
	products []demoProduct
}

var demoBrands = []demoBrand{
	{
		name: "Rank Math",
		products: []demoProduct{
			{name: "Rank Math Pro", slug: "rank-math-pro"},
			{name: "Content AI", slug: "content-ai"},
		},
	},
	{
		name: "WP Rocket",
		products: []demoProduct{
			{name: "WP Rocket", slug: "wp-rocket"},
		},
	},
	{
		name: "Imagify",
		products: []demoProduct{
			{name: "Imagify", slug: "imagify"},
		},
	},
}

// Seeder inserts the demo data set, skipping anything already present.
type Seeder struct {
	brandRepo   brand.Repository
	productRepo brand.ProductRepository
	logger      logger.Interface
}

// NewSeeder creates a demo data seeder
func NewSeeder(brandRepo brand.Repository, productRepo brand.ProductRepository) *Seeder {
	return &Seeder{
		brandRepo:   brandRepo,
		productRepo: productRepo,
		logger:      logger.NewLogger().With("component", "seeds"),
	}
}

// Run seeds the demo brands and their products. Existing rows are left
// untouched, so repeated startups are safe.
func (s *Seeder) Run(ctx context.Context) error {
	for _, db := range demoBrands {
		b, err := s.ensureBrand(ctx, db.name)
		if err != nil {
			return err
		}

		for _, dp := range db.products {
			if err := s.ensureProduct(ctx, b, dp); err != nil {
				return err
			}
		}
	}

	s.logger.Infow("demo data seeded", "brands", len(demoBrands))
	return nil
}

func (s *Seeder) ensureBrand(ctx context.Context, name string) (*brand.Brand, error) {
	existing, err := s.brandRepo.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up brand %s: %w", name, err)
	}
	if existing != nil {
		return existing, nil
	}

	b, err := brand.NewBrand(name)
	if err != nil {
		return nil, fmt.Errorf("failed to build brand %s: %w", name, err)
	}
	if err := s.brandRepo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to create brand %s: %w", name, err)
	}

	s.logger.Infow("seeded brand",
		"brand", b.Name(),
		"bid", b.BID(),
		"api_key", utils.MaskLicenseKey(b.APIKey()),
	)
	return b, nil
}

func (s *Seeder) ensureProduct(ctx context.Context, b *brand.Brand, dp demoProduct) error {
	existing, err := s.productRepo.GetByBrandAndSlug(ctx, b.ID(), dp.slug)
	if err != nil {
		return fmt.Errorf("failed to look up product %s: %w", dp.slug, err)
	}
	if existing != nil {
		return nil
	}

	p, err := brand.NewProduct(b.ID(), dp.name, dp.slug)
	if err != nil {
		return fmt.Errorf("failed to build product %s: %w", dp.slug, err)
	}
	if err := s.productRepo.Create(ctx, p); err != nil {
		return fmt.Errorf("failed to create product %s: %w", dp.slug, err)
	}

	s.logger.Infow("seeded product", "brand", b.Name(), "slug", p.Slug())
	return nil
}
