package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Product struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name            string         `gorm:"type:varchar(255);not null"`
	Category        string         `gorm:"type:varchar(100);index"`
	Description     string         `gorm:"type:text"`
	Ingredients     datatypes.JSON `gorm:"type:jsonb"`
	Price           float64        `gorm:"not null;index"`
	Calories        int
	PrepTime        string         `gorm:"type:varchar(50)"`
	DietaryTags     datatypes.JSON `gorm:"type:jsonb"`
	MoodTags        datatypes.JSON `gorm:"type:jsonb"`
	Allergens       datatypes.JSON `gorm:"type:jsonb"`
	PopularityScore int            `gorm:"default:50"`
	ChefSpecial     bool           `gorm:"default:false"`
	LimitedTime     bool           `gorm:"default:false"`
	SpiceLevel      int            `gorm:"default:0"`
	ImageURL        string         `gorm:"type:text"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}
