package dto

type ChatTurnRequest struct {
	SessionId string `json:"session_id,omitempty"` // empty starts a new session
	Message   string `json:"message" validate:"required"`
	Mode      string `json:"mode,omitempty"` // "preference" | "collaborative" | "blended"
}

type IntentDTO struct {
	Mood          string   `json:"mood,omitempty"`
	BudgetCeiling *float64 `json:"budget_ceiling,omitempty"`
	DietaryTags   []string `json:"dietary_tags,omitempty"`
	Nutrient      string   `json:"nutrient,omitempty"`
	Query         string   `json:"query,omitempty"`
	ResetFilters  bool     `json:"reset_filters,omitempty"`
	Source        string   `json:"source"`
}

type SubScoresDTO struct {
	Preference     float64 `json:"preference"`
	BudgetFit      float64 `json:"budget_fit"`
	Dietary        float64 `json:"dietary"`
	Collaborative  float64 `json:"collaborative"`
	CuratedBonus   float64 `json:"curated_bonus"`
	NoveltyPenalty float64 `json:"novelty_penalty"`
}

type ScoredProductDTO struct {
	ProductId   string       `json:"product_id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Price       float64      `json:"price"`
	DietaryTags []string     `json:"dietary_tags,omitempty"`
	MoodTags    []string     `json:"mood_tags,omitempty"`
	ChefSpecial bool         `json:"chef_special"`
	Total       float64      `json:"total_score"`
	SubScores   SubScoresDTO `json:"sub_scores"`
	Rank        int          `json:"rank"`
}

type ChatTurnResponse struct {
	SessionId       string             `json:"session_id"`
	Intent          IntentDTO          `json:"intent"`
	Reply           string             `json:"reply"`
	EngagementScore int                `json:"engagement_score"`
	Products        []ScoredProductDTO `json:"products"`
}

type RecordChoiceRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	ProductId string `json:"product_id" validate:"required,uuid"`
}
