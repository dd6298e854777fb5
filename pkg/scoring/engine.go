package scoring

import (
	"sort"

	"foodiebot-be/internal/entity"
	"foodiebot-be/pkg/store"

	"github.com/google/uuid"
)

// Mode selects which signals participate in the total score.
type Mode string

const (
	ModePreference    Mode = "preference"    // collaborative weight zeroed
	ModeCollaborative Mode = "collaborative" // preference/budget weights zeroed
	ModeBlended       Mode = "blended"       // all signals active
)

// ParseMode maps request input to a Mode, defaulting to blended.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModePreference, ModeCollaborative, ModeBlended:
		return Mode(s)
	default:
		return ModeBlended
	}
}

// AffinitySource is the read side of the collaborative signal. Lookups for
// unknown ids must return 0 (cold start is neutral, never negative).
type AffinitySource interface {
	Affinity(productID uuid.UUID) float64
}

// SubScores are the explainable components of a total score. Each one is
// bounded: the first four live in [0,1], CuratedBonus in {0, bonus} and
// NoveltyPenalty in {0, penalty}.
type SubScores struct {
	Preference     float64 `json:"preference"`
	BudgetFit      float64 `json:"budget_fit"`
	Dietary        float64 `json:"dietary"`
	Collaborative  float64 `json:"collaborative"`
	CuratedBonus   float64 `json:"curated_bonus"`
	NoveltyPenalty float64 `json:"novelty_penalty"`
}

// ScoredProduct is ephemeral: recomputed per request, never persisted.
type ScoredProduct struct {
	Product *entity.Product `json:"product"`
	Total   float64         `json:"total"`
	Sub     SubScores       `json:"sub_scores"`
	Rank    int             `json:"rank"`
}

// Weights are configuration constants; the exclusion and monotonicity
// properties hold for any positive assignment.
type Weights struct {
	Preference     float64
	Budget         float64
	Collaborative  float64
	CuratedBonus   float64
	NoveltyPenalty float64
}

func DefaultWeights() Weights {
	return Weights{
		Preference:     0.5,
		Budget:         0.2,
		Collaborative:  0.3,
		CuratedBonus:   0.1,
		NoveltyPenalty: 0.15,
	}
}

type Engine struct {
	weights  Weights
	affinity AffinitySource
}

// NewEngine builds a scoring engine. affinity may be nil, in which case the
// collaborative sub-score is 0 for every product.
func NewEngine(weights Weights, affinity AffinitySource) *Engine {
	return &Engine{
		weights:  weights,
		affinity: affinity,
	}
}

// Score ranks the candidate set against the session context. An empty result
// after hard filtering is a legitimate outcome, not an error: the caller is
// expected to widen filters or apologize conversationally.
func (e *Engine) Score(products []*entity.Product, session *store.Session, mode Mode) []ScoredProduct {
	w := e.weightsFor(mode)

	lastShown := make(map[string]bool, len(session.LastShown))
	for _, id := range session.LastShown {
		lastShown[id] = true
	}

	scored := make([]ScoredProduct, 0, len(products))
	for _, p := range products {
		if p == nil || !passesHardFilter(p, session) {
			continue
		}

		sub := SubScores{
			Preference: preferenceScore(p, session),
			BudgetFit:  budgetFitScore(p, session),
			Dietary:    1.0, // hard filter already removed violations
		}
		if e.affinity != nil {
			sub.Collaborative = clamp01(e.affinity.Affinity(p.Id))
		}
		if p.ChefSpecial {
			sub.CuratedBonus = e.weights.CuratedBonus
		}
		if lastShown[p.Id.String()] {
			sub.NoveltyPenalty = e.weights.NoveltyPenalty
		}

		total := w.Preference*sub.Preference +
			w.Budget*sub.BudgetFit +
			w.Collaborative*sub.Collaborative +
			sub.CuratedBonus -
			sub.NoveltyPenalty

		scored = append(scored, ScoredProduct{Product: p, Total: total, Sub: sub})
	}

	// Deterministic order: total desc, then curated, then cheaper, then
	// stable insertion order.
	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		if a.Product.ChefSpecial != b.Product.ChefSpecial {
			return a.Product.ChefSpecial
		}
		if a.Product.Price != b.Product.Price {
			return a.Product.Price < b.Product.Price
		}
		return false
	})

	for i := range scored {
		scored[i].Rank = i + 1
	}
	return scored
}

// weightsFor zeroes the signals the mode excludes. The curated bonus and
// novelty penalty apply in every mode.
func (e *Engine) weightsFor(mode Mode) Weights {
	w := e.weights
	switch mode {
	case ModePreference:
		w.Collaborative = 0
	case ModeCollaborative:
		w.Preference = 0
		w.Budget = 0
	}
	return w
}

// passesHardFilter drops products violating a must-have dietary tag or
// exceeding the budget ceiling. Violations never appear in output,
// regardless of any other score.
func passesHardFilter(p *entity.Product, session *store.Session) bool {
	for _, tag := range session.DietaryTags {
		if !p.HasDietaryTag(tag) {
			return false
		}
	}
	if session.BudgetCeiling != nil && p.Price > *session.BudgetCeiling {
		return false
	}
	return true
}

// preferenceScore is the fraction of requested mood/nutrient tags the
// product satisfies; neutral 0.5 when the context requests nothing.
func preferenceScore(p *entity.Product, session *store.Session) float64 {
	requested, matched := 0, 0

	if session.Mood != "" {
		requested++
		if moodMatches(p, session.Mood) {
			matched++
		}
	}
	if session.Nutrient != "" {
		requested++
		if nutrientMatches(p, session.Nutrient) {
			matched++
		}
	}

	if requested == 0 {
		return 0.5
	}
	return float64(matched) / float64(requested)
}

func moodMatches(p *entity.Product, mood string) bool {
	if p.HasMoodTag(mood) {
		return true
	}
	return mood == "spicy" && p.SpiceLevel > 0
}

// Nutrient slots map to calorie thresholds the way the catalog encodes them.
func nutrientMatches(p *entity.Product, nutrient string) bool {
	switch nutrient {
	case "protein":
		return p.Calories >= 300
	case "low_carb":
		return p.Calories <= 400
	case "low_calorie":
		return p.Calories <= 250
	default:
		return false
	}
}

// budgetFitScore rewards cheaper-but-compliant items: 1.0 with no ceiling,
// otherwise 1 - price/ceiling, so an exact-ceiling match scores 0 without
// being excluded.
func budgetFitScore(p *entity.Product, session *store.Session) float64 {
	if session.BudgetCeiling == nil || *session.BudgetCeiling <= 0 {
		return 1.0
	}
	return clamp01(1.0 - p.Price / *session.BudgetCeiling)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
