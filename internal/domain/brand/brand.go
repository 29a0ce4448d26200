// Package brand holds the brand and product aggregates. A brand is the
// isolation boundary of the service: every license key and license belongs
// to exactly one brand, and brand-authenticated operations never see rows
// owned by another brand.
package brand

import (
	"fmt"
	"strings"
	"time"

	"keymint/internal/shared/id"
)

// Brand represents a tenant owning products and license keys.
type Brand struct {
	id        uint
	bid       string
	name      string
	apiKey    string
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
}

// NewBrand creates a new brand with a freshly generated public ID and API key.
func NewBrand(name string) (*Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("brand name is required")
	}

	bid, err := id.GenerateWithPrefix(id.PrefixBrand, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate brand ID: %w", err)
	}

	apiKey, err := id.Generate(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate API key: %w", err)
	}

	now := time.Now().UTC()
	return &Brand{
		bid:       bid,
		name:      name,
		apiKey:    apiKey,
		isActive:  true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructBrand reconstructs a brand from persistence.
func ReconstructBrand(
	brandID uint,
	bid, name, apiKey string,
	isActive bool,
	createdAt, updatedAt time.Time,
) (*Brand, error) {
	if brandID == 0 {
		return nil, fmt.Errorf("brand ID cannot be zero")
	}
	if name == "" {
		return nil, fmt.Errorf("brand name is required")
	}

	return &Brand{
		id:        brandID,
		bid:       bid,
		name:      name,
		apiKey:    apiKey,
		isActive:  isActive,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (b *Brand) ID() uint              { return b.id }
func (b *Brand) BID() string           { return b.bid }
func (b *Brand) Name() string          { return b.name }
func (b *Brand) APIKey() string        { return b.apiKey }
func (b *Brand) IsActive() bool        { return b.isActive }
func (b *Brand) CreatedAt() time.Time  { return b.createdAt }
func (b *Brand) UpdatedAt() time.Time  { return b.updatedAt }

// SetID sets the brand ID (only for persistence layer use)
func (b *Brand) SetID(brandID uint) error {
	if b.id != 0 {
		return fmt.Errorf("brand ID is already set")
	}
	if brandID == 0 {
		return fmt.Errorf("brand ID cannot be zero")
	}
	b.id = brandID
	return nil
}

// Deactivate disables the brand. Deactivated brands fail API-key
// authentication; their stored data is untouched.
func (b *Brand) Deactivate() {
	if !b.isActive {
		return
	}
	b.isActive = false
	b.updatedAt = time.Now().UTC()
}

// Activate re-enables the brand.
func (b *Brand) Activate() {
	if b.isActive {
		return
	}
	b.isActive = true
	b.updatedAt = time.Now().UTC()
}
