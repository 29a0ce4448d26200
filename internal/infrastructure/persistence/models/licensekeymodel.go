package models

import (
	"time"

	"keymint/internal/shared/constants"
)

// LicenseKeyModel represents the database persistence model for license keys.
// The (brand_id, customer_email) unique index is the authoritative guard
// against two concurrent first purchases minting two keys for one customer.
type LicenseKeyModel struct {
	ID            uint   `gorm:"primarykey"`
	LKID          string `gorm:"column:lkid;uniqueIndex;not null;size:50;comment:public ID: lk_xxx"`
	BrandID       uint   `gorm:"not null;uniqueIndex:idx_brand_customer,priority:1"`
	Key           string `gorm:"uniqueIndex;not null;size:25"`
	CustomerEmail string `gorm:"not null;size:255;uniqueIndex:idx_brand_customer,priority:2;index:idx_customer_email"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for GORM
func (LicenseKeyModel) TableName() string {
	return constants.TableLicenseKeys
}
