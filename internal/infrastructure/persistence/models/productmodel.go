package models

import (
	"time"

	"gorm.io/gorm"

	"keymint/internal/shared/constants"
)

// ProductModel represents the database persistence model for products
type ProductModel struct {
	ID        uint   `gorm:"primarykey"`
	PID       string `gorm:"column:pid;uniqueIndex;not null;size:50;comment:public ID: prd_xxx"`
	BrandID   uint   `gorm:"not null;uniqueIndex:idx_brand_slug,priority:1"`
	Name      string `gorm:"not null;size:100"`
	Slug      string `gorm:"not null;size:100;uniqueIndex:idx_brand_slug,priority:2"`
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (ProductModel) TableName() string {
	return constants.TableProducts
}
