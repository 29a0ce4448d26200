package license

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"keymint/internal/shared/id"
)

// Activation records that a license is in use by a specific instance (site
// URL or machine identifier). Activations are never deleted; deactivation
// flips is_active and stamps deactivated_at, keeping the history.
type Activation struct {
	id            uint
	aid           string
	token         uuid.UUID
	licenseID     uint
	instanceID    string
	isActive      bool
	activatedAt   time.Time
	deactivatedAt *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

// NewActivation creates an active activation binding a license to an
// instance.
func NewActivation(licenseID uint, instanceID string) (*Activation, error) {
	instanceID = strings.TrimSpace(instanceID)

	if licenseID == 0 {
		return nil, fmt.Errorf("license ID cannot be zero")
	}
	if instanceID == "" {
		return nil, fmt.Errorf("instance ID is required")
	}

	aid, err := id.GenerateWithPrefix(id.PrefixActivation, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate activation ID: %w", err)
	}

	now := time.Now().UTC()
	return &Activation{
		aid:         aid,
		token:       uuid.New(),
		licenseID:   licenseID,
		instanceID:  instanceID,
		isActive:    true,
		activatedAt: now,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructActivation reconstructs an activation from persistence.
func ReconstructActivation(
	activationID uint,
	aid string,
	token uuid.UUID,
	licenseID uint,
	instanceID string,
	isActive bool,
	activatedAt time.Time,
	deactivatedAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Activation, error) {
	if activationID == 0 {
		return nil, fmt.Errorf("activation ID cannot be zero")
	}
	if licenseID == 0 {
		return nil, fmt.Errorf("license ID cannot be zero")
	}
	if instanceID == "" {
		return nil, fmt.Errorf("instance ID is required")
	}

	return &Activation{
		id:            activationID,
		aid:           aid,
		token:         token,
		licenseID:     licenseID,
		instanceID:    instanceID,
		isActive:      isActive,
		activatedAt:   activatedAt,
		deactivatedAt: deactivatedAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

func (a *Activation) ID() uint                  { return a.id }
func (a *Activation) AID() string               { return a.aid }
func (a *Activation) Token() uuid.UUID          { return a.token }
func (a *Activation) LicenseID() uint           { return a.licenseID }
func (a *Activation) InstanceID() string        { return a.instanceID }
func (a *Activation) IsActive() bool            { return a.isActive }
func (a *Activation) ActivatedAt() time.Time    { return a.activatedAt }
func (a *Activation) DeactivatedAt() *time.Time { return a.deactivatedAt }
func (a *Activation) CreatedAt() time.Time      { return a.createdAt }
func (a *Activation) UpdatedAt() time.Time      { return a.updatedAt }

// SetID sets the activation ID (only for persistence layer use)
func (a *Activation) SetID(activationID uint) error {
	if a.id != 0 {
		return fmt.Errorf("activation ID is already set")
	}
	if activationID == 0 {
		return fmt.Errorf("activation ID cannot be zero")
	}
	a.id = activationID
	return nil
}

// Deactivate flips the activation inactive, stamping deactivated_at.
func (a *Activation) Deactivate() error {
	if !a.isActive {
		return fmt.Errorf("activation is already inactive")
	}
	now := time.Now().UTC()
	a.isActive = false
	a.deactivatedAt = &now
	a.updatedAt = now
	return nil
}

// Revive flips a previously-deactivated activation back to active, stamping
// a fresh activated_at. The caller holds the seat-count lock.
func (a *Activation) Revive() error {
	if a.isActive {
		return fmt.Errorf("activation is already active")
	}
	now := time.Now().UTC()
	a.isActive = true
	a.activatedAt = now
	a.deactivatedAt = nil
	a.updatedAt = now
	return nil
}
