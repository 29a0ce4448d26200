// Package dto carries the presentation-layer shapes of the licensing
// context. Seat counts are always computed at conversion time from the
// latest activation state, never read from stored columns.
package dto

import "time"

type LicenseKeyDTO struct {
	ID            string    `json:"id"`
	Key           string    `json:"key"`
	CustomerEmail string    `json:"customer_email"`
	Brand         string    `json:"brand,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type LicenseDTO struct {
	ID             string         `json:"id"`
	ProductSlug    string         `json:"product_slug"`
	ProductName    string         `json:"product_name,omitempty"`
	Status         string         `json:"status"`
	Usable         bool           `json:"usable"`
	Reason         string         `json:"reason,omitempty"`
	ExpiresAt      *time.Time     `json:"expires_at,omitempty"`
	MaxSeats       *int           `json:"max_seats,omitempty"`
	ActiveSeats    int            `json:"active_seats"`
	RemainingSeats *int           `json:"remaining_seats,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type ActivationDTO struct {
	ID             string     `json:"id"`
	Token          string     `json:"token"`
	InstanceID     string     `json:"instance_id"`
	IsActive       bool       `json:"is_active"`
	ActivatedAt    time.Time  `json:"activated_at"`
	DeactivatedAt  *time.Time `json:"deactivated_at,omitempty"`
	RemainingSeats *int       `json:"remaining_seats,omitempty"`
	Unlimited      bool       `json:"unlimited"`
}

// KeySnapshotDTO is the full entitlement picture of one license key.
type KeySnapshotDTO struct {
	Key           string        `json:"key"`
	CustomerEmail string        `json:"customer_email"`
	Brand         string        `json:"brand"`
	Licenses      []*LicenseDTO `json:"licenses"`
}

// ProvisionResultDTO reports the outcome of a provisioning call.
type ProvisionResultDTO struct {
	LicenseKey *LicenseKeyDTO `json:"license_key"`
	Created    bool           `json:"created"`
	Licenses   []*LicenseDTO  `json:"licenses"`
}

// CustomerKeysDTO groups a customer's keys per brand for the cross-brand
// lookup. Read-only by construction: it carries no internal identifiers a
// caller could feed back into a mutation.
type CustomerKeysDTO struct {
	CustomerEmail string              `json:"customer_email"`
	Brands        []*BrandKeyGroupDTO `json:"brands"`
}

type BrandKeyGroupDTO struct {
	Brand string            `json:"brand"`
	Keys  []*KeySnapshotDTO `json:"keys"`
}
