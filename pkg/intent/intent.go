package intent

import "context"

// Source tells downstream logic which extraction path produced the intent.
type Source string

const (
	SourceRule     Source = "rule"
	SourceExternal Source = "external"
	SourceNone     Source = "none"
)

// Intent is the structured result of a single utterance.
// Slot fields are zero-valued when the utterance did not mention them.
type Intent struct {
	Mood          string   `json:"mood,omitempty"`
	BudgetCeiling *float64 `json:"budget_ceiling,omitempty"` // inclusive upper bound
	DietaryTags   []string `json:"dietary_tags,omitempty"`   // must-have, not preference
	Nutrient      string   `json:"nutrient,omitempty"`       // "protein" | "low_carb" | "low_calorie"
	Query         string   `json:"query,omitempty"`          // remaining free text
	ResetFilters  bool     `json:"reset_filters,omitempty"`

	// Engagement markers (do not filter products, only move the session score)
	Question    bool `json:"question,omitempty"`
	Enthusiasm  bool `json:"enthusiasm,omitempty"`
	OrderIntent bool `json:"order_intent,omitempty"`

	Source Source `json:"source"`
}

// HasSlots reports whether any product-filtering slot was extracted.
func (i Intent) HasSlots() bool {
	return i.Mood != "" || i.BudgetCeiling != nil || len(i.DietaryTags) > 0 ||
		i.Nutrient != "" || i.ResetFilters
}

// PriorContext is the slice of session state the extractor is allowed to see.
// Kept minimal so the extractor stays a pure function of (utterance, prior).
type PriorContext struct {
	Mood          string
	BudgetCeiling *float64
	DietaryTags   []string
}

// Parser is the optional external extraction backend (e.g. an LLM).
// It is never load-bearing: callers must fall back to the rule-based
// result whenever Parse errors or the context times out.
type Parser interface {
	Parse(ctx context.Context, text string) (Intent, error)
}
