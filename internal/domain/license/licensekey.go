// Package license holds the license key aggregate: the customer-facing key
// string, the per-product licenses hanging off it, and their seat
// activations.
package license

import (
	"fmt"
	"strings"
	"time"

	"keymint/internal/shared/id"
)

// LicenseKey is the customer-facing key a brand issues to one customer.
// A key is unique per (brand, customer email) and carries one license per
// granted product.
type LicenseKey struct {
	id            uint
	lkid          string
	brandID       uint
	key           string
	customerEmail string
	createdAt     time.Time
	updatedAt     time.Time
}

// NewLicenseKey creates a license key for a brand's customer. The key string
// itself is generated by the caller so collision checks can run against
// storage.
func NewLicenseKey(brandID uint, key, customerEmail string) (*LicenseKey, error) {
	customerEmail = strings.TrimSpace(strings.ToLower(customerEmail))

	if brandID == 0 {
		return nil, fmt.Errorf("brand ID cannot be zero")
	}
	if key == "" {
		return nil, fmt.Errorf("license key string is required")
	}
	if customerEmail == "" {
		return nil, fmt.Errorf("customer email is required")
	}

	lkid, err := id.GenerateWithPrefix(id.PrefixLicenseKey, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate license key ID: %w", err)
	}

	now := time.Now().UTC()
	return &LicenseKey{
		lkid:          lkid,
		brandID:       brandID,
		key:           key,
		customerEmail: customerEmail,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ReconstructLicenseKey reconstructs a license key from persistence.
func ReconstructLicenseKey(
	keyID uint,
	lkid string,
	brandID uint,
	key, customerEmail string,
	createdAt, updatedAt time.Time,
) (*LicenseKey, error) {
	if keyID == 0 {
		return nil, fmt.Errorf("license key ID cannot be zero")
	}
	if brandID == 0 {
		return nil, fmt.Errorf("brand ID cannot be zero")
	}
	if key == "" {
		return nil, fmt.Errorf("license key string is required")
	}

	return &LicenseKey{
		id:            keyID,
		lkid:          lkid,
		brandID:       brandID,
		key:           key,
		customerEmail: customerEmail,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

func (k *LicenseKey) ID() uint              { return k.id }
func (k *LicenseKey) LKID() string          { return k.lkid }
func (k *LicenseKey) BrandID() uint         { return k.brandID }
func (k *LicenseKey) Key() string           { return k.key }
func (k *LicenseKey) CustomerEmail() string { return k.customerEmail }
func (k *LicenseKey) CreatedAt() time.Time  { return k.createdAt }
func (k *LicenseKey) UpdatedAt() time.Time  { return k.updatedAt }

// SetID sets the license key ID (only for persistence layer use)
func (k *LicenseKey) SetID(keyID uint) error {
	if k.id != 0 {
		return fmt.Errorf("license key ID is already set")
	}
	if keyID == 0 {
		return fmt.Errorf("license key ID cannot be zero")
	}
	k.id = keyID
	return nil
}
