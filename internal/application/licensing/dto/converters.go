package dto

import (
	"time"

	"keymint/internal/domain/brand"
	"keymint/internal/domain/license"
)

// ToLicenseKeyDTO converts a license key entity to its DTO. brandName may be
// empty when the caller does not expose brand attribution.
func ToLicenseKeyDTO(k *license.LicenseKey, brandName string) *LicenseKeyDTO {
	if k == nil {
		return nil
	}

	return &LicenseKeyDTO{
		ID:            k.LKID(),
		Key:           k.Key(),
		CustomerEmail: k.CustomerEmail(),
		Brand:         brandName,
		CreatedAt:     k.CreatedAt(),
	}
}

// ToLicenseDTO converts a license entity plus its read-time seat usage to a
// DTO. activeSeats is counted by the caller inside the same read.
func ToLicenseDTO(l *license.License, product *brand.Product, activeSeats int, now time.Time) *LicenseDTO {
	if l == nil {
		return nil
	}

	dto := &LicenseDTO{
		ID:             l.LID(),
		Status:         l.Status().String(),
		Usable:         l.IsUsable(now),
		Reason:         l.InvalidityReason(now),
		ExpiresAt:      l.ExpiresAt(),
		MaxSeats:       l.MaxSeats(),
		ActiveSeats:    activeSeats,
		RemainingSeats: l.RemainingSeats(activeSeats),
		Metadata:       l.Metadata(),
		CreatedAt:      l.CreatedAt(),
		UpdatedAt:      l.UpdatedAt(),
	}
	if product != nil {
		dto.ProductSlug = product.Slug()
		dto.ProductName = product.Name()
	}
	return dto
}

// ToActivationDTO converts an activation entity to its DTO. remainingSeats
// is nil for unlimited licenses; unlimited distinguishes "no cap" from
// "zero left".
func ToActivationDTO(a *license.Activation, remainingSeats *int, unlimited bool) *ActivationDTO {
	if a == nil {
		return nil
	}

	return &ActivationDTO{
		ID:             a.AID(),
		Token:          a.Token().String(),
		InstanceID:     a.InstanceID(),
		IsActive:       a.IsActive(),
		ActivatedAt:    a.ActivatedAt(),
		DeactivatedAt:  a.DeactivatedAt(),
		RemainingSeats: remainingSeats,
		Unlimited:      unlimited,
	}
}

