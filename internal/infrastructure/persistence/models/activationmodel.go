package models

import (
	"time"

	"keymint/internal/shared/constants"
)

// ActivationModel represents the database persistence model for activations.
// One row per (license, instance): deactivation flips IsActive and a later
// reactivation revives the same row, so the unique index doubles as the
// at-most-one-active-row-per-instance invariant.
type ActivationModel struct {
	ID            uint      `gorm:"primarykey"`
	AID           string    `gorm:"column:aid;uniqueIndex;not null;size:50;comment:public ID: act_xxx"`
	Token         string    `gorm:"uniqueIndex;not null;size:36;comment:activation token handed to the instance"`
	LicenseID     uint      `gorm:"not null;uniqueIndex:idx_license_instance,priority:1"`
	InstanceID    string    `gorm:"not null;size:255;uniqueIndex:idx_license_instance,priority:2"`
	IsActive      bool      `gorm:"not null;default:true;index:idx_active"`
	ActivatedAt   time.Time `gorm:"not null"`
	DeactivatedAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for GORM
func (ActivationModel) TableName() string {
	return constants.TableActivations
}
