package license

import "context"

// KeyRepository defines the interface for license key persistence.
type KeyRepository interface {
	Create(ctx context.Context, k *LicenseKey) error
	GetByID(ctx context.Context, id uint) (*LicenseKey, error)
	GetByKey(ctx context.Context, key string) (*LicenseKey, error)
	// GetByBrandAndKey scopes the key lookup to one brand.
	GetByBrandAndKey(ctx context.Context, brandID uint, key string) (*LicenseKey, error)
	GetByBrandAndEmail(ctx context.Context, brandID uint, customerEmail string) (*LicenseKey, error)
	// ListByCustomerEmail is the deliberate cross-brand read path: it returns
	// keys across all brands for one customer and must never be used to
	// scope a mutation.
	ListByCustomerEmail(ctx context.Context, customerEmail string) ([]*LicenseKey, error)
	KeyExists(ctx context.Context, key string) (bool, error)
	Update(ctx context.Context, k *LicenseKey) error
}

// Repository defines the interface for license persistence.
type Repository interface {
	Create(ctx context.Context, l *License) error
	GetByID(ctx context.Context, id uint) (*License, error)
	GetByLID(ctx context.Context, lid string) (*License, error)
	// GetByIDForUpdate fetches the license holding a row lock for the
	// remainder of the surrounding transaction. Seat allocation serializes
	// on this lock.
	GetByIDForUpdate(ctx context.Context, id uint) (*License, error)
	GetByKeyAndProduct(ctx context.Context, licenseKeyID, productID uint) (*License, error)
	ListByLicenseKey(ctx context.Context, licenseKeyID uint) ([]*License, error)
	Update(ctx context.Context, l *License) error
}

// ActivationRepository defines the interface for activation persistence.
type ActivationRepository interface {
	Create(ctx context.Context, a *Activation) error
	GetByID(ctx context.Context, id uint) (*Activation, error)
	// GetByLicenseAndInstance returns the newest activation row for the
	// pair regardless of is_active, or nil when none exists.
	GetByLicenseAndInstance(ctx context.Context, licenseID uint, instanceID string) (*Activation, error)
	CountActiveByLicense(ctx context.Context, licenseID uint) (int, error)
	ListByLicense(ctx context.Context, licenseID uint) ([]*Activation, error)
	Update(ctx context.Context, a *Activation) error
}
