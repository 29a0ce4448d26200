package license

import (
	"fmt"
	"time"

	"keymint/internal/domain/license/valueobjects"
	"keymint/internal/shared/errors"
	"keymint/internal/shared/id"
)

// License is one product entitlement under a LicenseKey. Status and
// expiration are independent axes: the stored status never flips on expiry,
// expiration is derived at read time.
type License struct {
	id           uint
	lid          string
	licenseKeyID uint
	productID    uint
	status       valueobjects.LicenseStatus
	expiresAt    *time.Time // nil means perpetual
	maxSeats     *int       // nil means unlimited
	metadata     map[string]any
	createdAt    time.Time
	updatedAt    time.Time
}

// NewLicense creates an active license for a product under a license key.
func NewLicense(licenseKeyID, productID uint, expiresAt *time.Time, maxSeats *int) (*License, error) {
	if licenseKeyID == 0 {
		return nil, fmt.Errorf("license key ID cannot be zero")
	}
	if productID == 0 {
		return nil, fmt.Errorf("product ID cannot be zero")
	}
	if maxSeats != nil && *maxSeats < 1 {
		return nil, fmt.Errorf("max seats must be at least 1")
	}

	lid, err := id.GenerateWithPrefix(id.PrefixLicense, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate license ID: %w", err)
	}

	now := time.Now().UTC()
	return &License{
		lid:          lid,
		licenseKeyID: licenseKeyID,
		productID:    productID,
		status:       valueobjects.StatusActive,
		expiresAt:    expiresAt,
		maxSeats:     maxSeats,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructLicense reconstructs a license from persistence.
func ReconstructLicense(
	licenseID uint,
	lid string,
	licenseKeyID, productID uint,
	status valueobjects.LicenseStatus,
	expiresAt *time.Time,
	maxSeats *int,
	metadata map[string]any,
	createdAt, updatedAt time.Time,
) (*License, error) {
	if licenseID == 0 {
		return nil, fmt.Errorf("license ID cannot be zero")
	}
	if licenseKeyID == 0 {
		return nil, fmt.Errorf("license key ID cannot be zero")
	}
	if productID == 0 {
		return nil, fmt.Errorf("product ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid license status: %s", status)
	}

	return &License{
		id:           licenseID,
		lid:          lid,
		licenseKeyID: licenseKeyID,
		productID:    productID,
		status:       status,
		expiresAt:    expiresAt,
		maxSeats:     maxSeats,
		metadata:     metadata,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (l *License) ID() uint                              { return l.id }
func (l *License) LID() string                           { return l.lid }
func (l *License) LicenseKeyID() uint                    { return l.licenseKeyID }
func (l *License) ProductID() uint                       { return l.productID }
func (l *License) Status() valueobjects.LicenseStatus    { return l.status }
func (l *License) ExpiresAt() *time.Time                 { return l.expiresAt }
func (l *License) MaxSeats() *int                        { return l.maxSeats }
func (l *License) Metadata() map[string]any              { return l.metadata }
func (l *License) CreatedAt() time.Time                  { return l.createdAt }
func (l *License) UpdatedAt() time.Time                  { return l.updatedAt }

// SetID sets the license ID (only for persistence layer use)
func (l *License) SetID(licenseID uint) error {
	if l.id != 0 {
		return fmt.Errorf("license ID is already set")
	}
	if licenseID == 0 {
		return fmt.Errorf("license ID cannot be zero")
	}
	l.id = licenseID
	return nil
}

// IsExpired reports whether the license's expiration has passed at the given
// instant. A nil expiration never expires.
func (l *License) IsExpired(now time.Time) bool {
	return l.expiresAt != nil && !l.expiresAt.After(now)
}

// IsUsable reports whether the license grants entitlement at the given
// instant: status active and not expired.
func (l *License) IsUsable(now time.Time) bool {
	return l.status == valueobjects.StatusActive && !l.IsExpired(now)
}

// InvalidityReason returns why the license is not usable at the given
// instant, or "" when it is usable. Suspension and cancellation take
// precedence over expiry in the reported reason.
func (l *License) InvalidityReason(now time.Time) string {
	switch l.status {
	case valueobjects.StatusSuspended:
		return "suspended"
	case valueobjects.StatusCancelled:
		return "cancelled"
	}
	if l.IsExpired(now) {
		return "expired"
	}
	return ""
}

func (l *License) transitionTo(target valueobjects.LicenseStatus, action string) error {
	if !l.status.CanTransitionTo(target) {
		return errors.NewInvalidTransitionError(l.status.String(), action)
	}
	l.status = target
	l.updatedAt = time.Now().UTC()
	return nil
}

// Suspend moves the license to suspended. Only valid from active.
func (l *License) Suspend() error {
	return l.transitionTo(valueobjects.StatusSuspended, "suspend")
}

// Resume moves the license back to active. Only valid from suspended.
// Resuming does not touch expiration: a resumed-but-expired license stays
// unusable until renewed.
func (l *License) Resume() error {
	return l.transitionTo(valueobjects.StatusActive, "resume")
}

// Cancel moves the license to the terminal cancelled state.
func (l *License) Cancel() error {
	return l.transitionTo(valueobjects.StatusCancelled, "cancel")
}

// Renew replaces the expiration with a later one. The new expiration must be
// strictly after the current expiration, or after now if the license has
// already expired. Renew never changes status: a suspended license stays
// suspended until explicitly resumed. Cancelled licenses cannot be renewed.
func (l *License) Renew(newExpiresAt time.Time, now time.Time) error {
	if l.status == valueobjects.StatusCancelled {
		return errors.NewInvalidTransitionError(l.status.String(), "renew")
	}

	floor := now
	if l.expiresAt != nil && l.expiresAt.After(now) {
		floor = *l.expiresAt
	}
	if !newExpiresAt.After(floor) {
		return errors.NewInvalidExpirationError(
			fmt.Sprintf("new expiration %s must be after %s", newExpiresAt.Format(time.RFC3339), floor.Format(time.RFC3339)),
		)
	}

	exp := newExpiresAt.UTC()
	l.expiresAt = &exp
	l.updatedAt = time.Now().UTC()
	return nil
}

// ExtendTo applies a repurchase of an already-active product: expiration and
// seat cap are updated in place instead of inserting a duplicate license.
// A requested expiration at or before the current one is rejected.
func (l *License) ExtendTo(newExpiresAt *time.Time, maxSeats *int) error {
	if newExpiresAt != nil {
		if l.expiresAt != nil && !newExpiresAt.After(*l.expiresAt) {
			return errors.NewInvalidExpirationError(
				fmt.Sprintf("requested expiration %s does not extend current expiration %s",
					newExpiresAt.Format(time.RFC3339), l.expiresAt.Format(time.RFC3339)),
			)
		}
		exp := newExpiresAt.UTC()
		l.expiresAt = &exp
	} else {
		// Repurchase without an expiration makes the license perpetual.
		l.expiresAt = nil
	}

	if maxSeats != nil && *maxSeats < 1 {
		return fmt.Errorf("max seats must be at least 1")
	}
	l.maxSeats = maxSeats
	l.updatedAt = time.Now().UTC()
	return nil
}

// SetMetadata replaces the free-form metadata attached to the license.
func (l *License) SetMetadata(metadata map[string]any) {
	l.metadata = metadata
	l.updatedAt = time.Now().UTC()
}

// RemainingSeats returns max_seats minus activeSeats, floored at zero.
// Returns nil for unlimited licenses.
func (l *License) RemainingSeats(activeSeats int) *int {
	if l.maxSeats == nil {
		return nil
	}
	remaining := *l.maxSeats - activeSeats
	if remaining < 0 {
		remaining = 0
	}
	return &remaining
}
