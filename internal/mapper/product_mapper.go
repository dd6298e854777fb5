package mapper

import (
	"encoding/json"
	"time"

	"foodiebot-be/internal/entity"
	"foodiebot-be/internal/model"

	"gorm.io/datatypes"
)

type ProductMapper struct{}

func NewProductMapper() *ProductMapper {
	return &ProductMapper{}
}

func (m *ProductMapper) ToEntity(p *model.Product) *entity.Product {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.Product{
		Id:              p.Id,
		Name:            p.Name,
		Category:        p.Category,
		Description:     p.Description,
		Ingredients:     jsonToStrings(p.Ingredients),
		Price:           p.Price,
		Calories:        p.Calories,
		PrepTime:        p.PrepTime,
		DietaryTags:     jsonToStrings(p.DietaryTags),
		MoodTags:        jsonToStrings(p.MoodTags),
		Allergens:       jsonToStrings(p.Allergens),
		PopularityScore: p.PopularityScore,
		ChefSpecial:     p.ChefSpecial,
		LimitedTime:     p.LimitedTime,
		SpiceLevel:      p.SpiceLevel,
		ImageURL:        p.ImageURL,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *ProductMapper) ToEntities(products []*model.Product) []*entity.Product {
	out := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		out = append(out, m.ToEntity(p))
	}
	return out
}

func (m *ProductMapper) ToModel(p *entity.Product) *model.Product {
	if p == nil {
		return nil
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.Product{
		Id:              p.Id,
		Name:            p.Name,
		Category:        p.Category,
		Description:     p.Description,
		Ingredients:     stringsToJSON(p.Ingredients),
		Price:           p.Price,
		Calories:        p.Calories,
		PrepTime:        p.PrepTime,
		DietaryTags:     stringsToJSON(p.DietaryTags),
		MoodTags:        stringsToJSON(p.MoodTags),
		Allergens:       stringsToJSON(p.Allergens),
		PopularityScore: p.PopularityScore,
		ChefSpecial:     p.ChefSpecial,
		LimitedTime:     p.LimitedTime,
		SpiceLevel:      p.SpiceLevel,
		ImageURL:        p.ImageURL,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func jsonToStrings(data datatypes.JSON) []string {
	if len(data) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		// Column holds something that is not a string array; treat as empty.
		return nil
	}
	return out
}

func stringsToJSON(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(data)
}
