package store

import (
	"time"

	"foodiebot-be/pkg/intent"
)

// Turn is one conversational exchange as seen by the context store.
type Turn struct {
	Intent intent.Intent `json:"intent"`
	At     time.Time     `json:"at"`
}

// Session is the per-user conversational state. It is a value type: every
// mutation goes through the pure functions below, and only the session
// manager persists the result. No other component writes to it.
type Session struct {
	ID    string `json:"id"`
	Turns []Turn `json:"turns"`

	// Merged slot values (latest non-empty wins, dietary accumulates)
	Mood          string   `json:"mood,omitempty"`
	BudgetCeiling *float64 `json:"budget_ceiling,omitempty"`
	DietaryTags   []string `json:"dietary_tags,omitempty"`
	Nutrient      string   `json:"nutrient,omitempty"`
	Query         string   `json:"query,omitempty"`

	// EngagementScore gauges conversation health; it never ranks products.
	EngagementScore int `json:"engagement_score"`

	// LastShown holds the product ids of the previous turn's results, for
	// novelty avoidance on the next one.
	LastShown []string `json:"last_shown,omitempty"`
}

// Engagement factors per extracted signal, and the clamp range.
const (
	EngagementMin = 0
	EngagementMax = 100

	engagementMood       = 20
	engagementDietary    = 10 // per tag
	engagementBudget     = 5
	engagementQuestion   = 10
	engagementEnthusiasm = 8
	engagementOrder      = 30
	engagementNutrient   = 12
	engagementSpecific   = 15 // two or more filter slots in one turn
)

// NewSession creates an empty context for the given id.
func NewSession(id string) *Session {
	return &Session{ID: id}
}

// Prior exposes the slice of merged state the intent extractor may consult.
func (s *Session) Prior() intent.PriorContext {
	return intent.PriorContext{
		Mood:          s.Mood,
		BudgetCeiling: s.BudgetCeiling,
		DietaryTags:   s.DietaryTags,
	}
}

// Merge folds a new intent into the session per the slot policy:
// mood and budget ceiling replace when the new turn states them, dietary
// tags accumulate as a union unless the turn carries an explicit reset,
// and the free-text query is always the most recent one. The receiver is
// not modified; a merged copy is returned.
func Merge(s *Session, in intent.Intent, now time.Time) *Session {
	out := clone(s)

	if in.ResetFilters {
		out.Mood = ""
		out.BudgetCeiling = nil
		out.DietaryTags = nil
		out.Nutrient = ""
	}

	if in.Mood != "" {
		out.Mood = in.Mood
	}
	if in.BudgetCeiling != nil {
		ceiling := *in.BudgetCeiling
		out.BudgetCeiling = &ceiling
	}
	if in.ResetFilters {
		out.DietaryTags = append([]string(nil), in.DietaryTags...)
	} else {
		for _, tag := range in.DietaryTags {
			out.DietaryTags = unionTag(out.DietaryTags, tag)
		}
	}
	if in.Nutrient != "" {
		out.Nutrient = in.Nutrient
	}
	if in.Query != "" {
		out.Query = in.Query
	}

	out.Turns = append(out.Turns, Turn{Intent: in, At: now})
	out.EngagementScore = clampEngagement(out.EngagementScore + engagementDelta(in))
	return out
}

// WithOutcome records the result of scoring a turn: the shown set replaces
// the previous one, and the engagement score moves by the configured
// increments depending on whether the turn produced any results.
func WithOutcome(s *Session, shownIds []string, resultCount, nonEmptyInc, emptyDec int) *Session {
	out := clone(s)
	out.LastShown = append([]string(nil), shownIds...)
	if resultCount > 0 {
		out.EngagementScore = clampEngagement(out.EngagementScore + nonEmptyInc)
	} else {
		out.EngagementScore = clampEngagement(out.EngagementScore - emptyDec)
	}
	return out
}

func engagementDelta(in intent.Intent) int {
	delta := 0
	if in.Mood != "" {
		delta += engagementMood
	}
	delta += engagementDietary * len(in.DietaryTags)
	if in.BudgetCeiling != nil {
		delta += engagementBudget
	}
	if in.Nutrient != "" {
		delta += engagementNutrient
	}
	if in.Question {
		delta += engagementQuestion
	}
	if in.Enthusiasm {
		delta += engagementEnthusiasm
	}
	if in.OrderIntent {
		delta += engagementOrder
	}
	if slotKinds(in) >= 2 {
		delta += engagementSpecific
	}
	return delta
}

func slotKinds(in intent.Intent) int {
	kinds := 0
	if in.Mood != "" {
		kinds++
	}
	if in.BudgetCeiling != nil {
		kinds++
	}
	if len(in.DietaryTags) > 0 {
		kinds++
	}
	if in.Nutrient != "" {
		kinds++
	}
	return kinds
}

func clampEngagement(v int) int {
	if v < EngagementMin {
		return EngagementMin
	}
	if v > EngagementMax {
		return EngagementMax
	}
	return v
}

func unionTag(tags []string, tag string) []string {
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	return append(tags, tag)
}

func clone(s *Session) *Session {
	out := *s
	out.Turns = append([]Turn(nil), s.Turns...)
	out.DietaryTags = append([]string(nil), s.DietaryTags...)
	out.LastShown = append([]string(nil), s.LastShown...)
	if s.BudgetCeiling != nil {
		ceiling := *s.BudgetCeiling
		out.BudgetCeiling = &ceiling
	}
	return &out
}
