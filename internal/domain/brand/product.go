package brand

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"keymint/internal/shared/id"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Product represents a licensable product owned by a brand. Products are
// identified within their brand by slug; licenses always reference a product
// of the same brand as their license key.
type Product struct {
	id        uint
	pid       string
	brandID   uint
	name      string
	slug      string
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
}

// NewProduct creates a new product under the given brand.
func NewProduct(brandID uint, name, slug string) (*Product, error) {
	name = strings.TrimSpace(name)
	slug = strings.TrimSpace(strings.ToLower(slug))

	if brandID == 0 {
		return nil, fmt.Errorf("brand ID cannot be zero")
	}
	if name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if !slugPattern.MatchString(slug) {
		return nil, fmt.Errorf("invalid product slug: %s", slug)
	}

	pid, err := id.GenerateWithPrefix(id.PrefixProduct, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate product ID: %w", err)
	}

	now := time.Now().UTC()
	return &Product{
		pid:       pid,
		brandID:   brandID,
		name:      name,
		slug:      slug,
		isActive:  true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructProduct reconstructs a product from persistence.
func ReconstructProduct(
	productID uint,
	pid string,
	brandID uint,
	name, slug string,
	isActive bool,
	createdAt, updatedAt time.Time,
) (*Product, error) {
	if productID == 0 {
		return nil, fmt.Errorf("product ID cannot be zero")
	}
	if brandID == 0 {
		return nil, fmt.Errorf("brand ID cannot be zero")
	}
	if name == "" {
		return nil, fmt.Errorf("product name is required")
	}

	return &Product{
		id:        productID,
		pid:       pid,
		brandID:   brandID,
		name:      name,
		slug:      slug,
		isActive:  isActive,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (p *Product) ID() uint             { return p.id }
func (p *Product) PID() string          { return p.pid }
func (p *Product) BrandID() uint        { return p.brandID }
func (p *Product) Name() string         { return p.name }
func (p *Product) Slug() string         { return p.slug }
func (p *Product) IsActive() bool       { return p.isActive }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }

// SetID sets the product ID (only for persistence layer use)
func (p *Product) SetID(productID uint) error {
	if p.id != 0 {
		return fmt.Errorf("product ID is already set")
	}
	if productID == 0 {
		return fmt.Errorf("product ID cannot be zero")
	}
	p.id = productID
	return nil
}

// Rename changes the product display name. The slug is immutable once set,
// clients embed it in activation requests.
func (p *Product) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("product name is required")
	}
	p.name = name
	p.updatedAt = time.Now().UTC()
	return nil
}

// Deactivate disables the product for new license grants.
func (p *Product) Deactivate() {
	if !p.isActive {
		return
	}
	p.isActive = false
	p.updatedAt = time.Now().UTC()
}

// Activate re-enables the product.
func (p *Product) Activate() {
	if p.isActive {
		return
	}
	p.isActive = true
	p.updatedAt = time.Now().UTC()
}
