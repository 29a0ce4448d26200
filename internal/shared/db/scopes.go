package db

import (
	"gorm.io/gorm"
)

// NotDeleted is a GORM scope that filters out soft-deleted records.
// Use this scope when querying with Model().Where().Count() or similar
// patterns that may not automatically apply soft delete filtering.
func NotDeleted() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("deleted_at IS NULL")
	}
}

// BrandScoped filters rows to those owned by the given brand. Every
// brand-authenticated query goes through this scope; the only sanctioned
// exception is the cross-brand email lookup, which deliberately does not
// use it.
func BrandScoped(brandID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("brand_id = ?", brandID)
	}
}
