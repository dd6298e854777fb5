package dto

type RecommendRequest struct {
	Mood          string   `json:"mood,omitempty"`
	BudgetCeiling *float64 `json:"budget_ceiling,omitempty" validate:"omitempty,gt=0"`
	DietaryTags   []string `json:"dietary_tags,omitempty"`
	Nutrient      string   `json:"nutrient,omitempty"`
	Mode          string   `json:"mode,omitempty"`
	Limit         int      `json:"limit,omitempty" validate:"omitempty,gte=1,lte=50"`
}

type RecommendResponse struct {
	Products []ScoredProductDTO `json:"products"`
}
