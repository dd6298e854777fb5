package specification

import (
	"gorm.io/gorm"
)

// ByCategory filters products by catalog category.
type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

// MaxPrice keeps products at or under the ceiling (inclusive).
type MaxPrice struct {
	Ceiling float64
}

func (s MaxPrice) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("price <= ?", s.Ceiling)
}

// ChefSpecialOnly keeps curated products.
type ChefSpecialOnly struct{}

func (s ChefSpecialOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chef_special = true")
}
