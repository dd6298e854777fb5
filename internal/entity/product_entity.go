package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is the catalog item as the core sees it: read-only, owned and
// mutated exclusively by the admin/catalog collaborator.
type Product struct {
	Id              uuid.UUID
	Name            string
	Category        string
	Description     string
	Ingredients     []string
	Price           float64
	Calories        int
	PrepTime        string
	DietaryTags     []string
	MoodTags        []string
	Allergens       []string
	PopularityScore int
	ChefSpecial     bool // curated flag
	LimitedTime     bool
	SpiceLevel      int
	ImageURL        string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

// HasDietaryTag reports whether the product carries the canonical tag.
func (p *Product) HasDietaryTag(tag string) bool {
	for _, t := range p.DietaryTags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasMoodTag reports whether the product carries the canonical mood tag.
func (p *Product) HasMoodTag(tag string) bool {
	for _, t := range p.MoodTags {
		if t == tag {
			return true
		}
	}
	return false
}
