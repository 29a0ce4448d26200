package models

import (
	"time"

	"gorm.io/gorm"

	"keymint/internal/shared/constants"
)

// BrandModel represents the database persistence model for brands
// This is the anti-corruption layer between domain and database
type BrandModel struct {
	ID        uint   `gorm:"primarykey"`
	BID       string `gorm:"column:bid;uniqueIndex;not null;size:50;comment:public ID: brd_xxx"`
	Name      string `gorm:"uniqueIndex;not null;size:100"`
	APIKey    string `gorm:"uniqueIndex;not null;size:64"`
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (BrandModel) TableName() string {
	return constants.TableBrands
}
