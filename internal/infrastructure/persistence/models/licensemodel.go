package models

import (
	"time"

	"gorm.io/datatypes"

	"keymint/internal/shared/constants"
)

// LicenseModel represents the database persistence model for licenses.
// No uniqueness on (license_key_id, product_id): a cancelled or expired
// license stays as history next to its active replacement.
type LicenseModel struct {
	ID           uint   `gorm:"primarykey"`
	LID          string `gorm:"column:lid;uniqueIndex;not null;size:50;comment:public ID: lic_xxx"`
	LicenseKeyID uint   `gorm:"not null;index:idx_license_key"`
	ProductID    uint   `gorm:"not null;index:idx_product"`
	Status       string `gorm:"not null;size:20;index:idx_status"`
	ExpiresAt    *time.Time
	MaxSeats     *int
	Metadata     datatypes.JSON
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (LicenseModel) TableName() string {
	return constants.TableLicenses
}
