package scoring

import (
	"testing"

	"foodiebot-be/internal/entity"
	"foodiebot-be/pkg/store"

	"github.com/google/uuid"
)

func product(name string, price float64, opts func(*entity.Product)) *entity.Product {
	p := &entity.Product{
		Id:    uuid.New(),
		Name:  name,
		Price: price,
	}
	if opts != nil {
		opts(p)
	}
	return p
}

func sessionWith(mood string, ceiling *float64, dietary []string) *store.Session {
	s := store.NewSession("s1")
	s.Mood = mood
	s.BudgetCeiling = ceiling
	s.DietaryTags = dietary
	return s
}

type fixedAffinity map[uuid.UUID]float64

func (f fixedAffinity) Affinity(id uuid.UUID) float64 {
	return f[id]
}

func TestScoreHardFilter(t *testing.T) {
	a := product("A", 8, func(p *entity.Product) { p.DietaryTags = []string{"vegan"} })
	b := product("B", 12, func(p *entity.Product) { p.DietaryTags = []string{"vegan"} })
	c := product("C", 9, func(p *entity.Product) { p.ChefSpecial = true })

	ten := 10.0
	sess := sessionWith("", &ten, []string{"vegan"})

	got := NewEngine(DefaultWeights(), nil).Score([]*entity.Product{a, b, c}, sess, ModeBlended)

	if len(got) != 1 {
		t.Fatalf("got %d products, want 1 (B over budget, C not vegan)", len(got))
	}
	if got[0].Product.Name != "A" {
		t.Errorf("survivor = %s, want A", got[0].Product.Name)
	}
	if got[0].Rank != 1 {
		t.Errorf("Rank = %d, want 1", got[0].Rank)
	}
}

func TestScoreBudgetCeilingIsInclusive(t *testing.T) {
	exact := product("Exact", 10, nil)
	ten := 10.0
	sess := sessionWith("", &ten, nil)

	got := NewEngine(DefaultWeights(), nil).Score([]*entity.Product{exact}, sess, ModeBlended)

	if len(got) != 1 {
		t.Fatalf("exact-ceiling product excluded, want included")
	}
	if got[0].Sub.BudgetFit != 0 {
		t.Errorf("BudgetFit = %v at exact ceiling, want 0", got[0].Sub.BudgetFit)
	}
}

func TestScoreDeterministic(t *testing.T) {
	products := []*entity.Product{
		product("A", 8, func(p *entity.Product) { p.MoodTags = []string{"comfort"} }),
		product("B", 6, nil),
		product("C", 7, func(p *entity.Product) { p.ChefSpecial = true }),
	}
	sess := sessionWith("comfort", nil, nil)
	engine := NewEngine(DefaultWeights(), nil)

	first := engine.Score(products, sess, ModeBlended)
	second := engine.Score(products, sess, ModeBlended)

	if len(first) != len(second) {
		t.Fatalf("result sizes differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Product.Id != second[i].Product.Id {
			t.Errorf("rank %d differs between runs: %s vs %s",
				i+1, first[i].Product.Name, second[i].Product.Name)
		}
		if first[i].Total != second[i].Total {
			t.Errorf("total differs between runs at rank %d", i+1)
		}
	}
}

func TestScoreTieBreakCuratedThenCheaper(t *testing.T) {
	// Identical signals, no session filters: totals are equal.
	plain := product("Plain", 9, nil)
	cheap := product("Cheap", 6, nil)
	curated := product("Curated", 9, func(p *entity.Product) { p.ChefSpecial = true })

	sess := store.NewSession("s1")
	got := NewEngine(Weights{Preference: 0.5, Budget: 0.2, Collaborative: 0.3}, nil).
		Score([]*entity.Product{plain, cheap, curated}, sess, ModeBlended)

	if got[0].Product.Name != "Curated" {
		t.Errorf("rank 1 = %s, want Curated", got[0].Product.Name)
	}
	if got[1].Product.Name != "Cheap" {
		t.Errorf("rank 2 = %s, want Cheap (price tie-break)", got[1].Product.Name)
	}
	if got[2].Product.Name != "Plain" {
		t.Errorf("rank 3 = %s, want Plain", got[2].Product.Name)
	}
}

func TestScoreModesZeroExcludedSignals(t *testing.T) {
	liked := product("Liked", 9, nil)
	cheapFit := product("CheapFit", 2, func(p *entity.Product) { p.MoodTags = []string{"comfort"} })

	ten := 10.0
	sess := sessionWith("comfort", &ten, nil)
	aff := fixedAffinity{liked.Id: 1.0}
	engine := NewEngine(DefaultWeights(), aff)

	blended := engine.Score([]*entity.Product{liked, cheapFit}, sess, ModeBlended)
	if blended[0].Product.Name != "CheapFit" {
		t.Errorf("blended rank 1 = %s, want CheapFit", blended[0].Product.Name)
	}

	// Collaborative mode ignores preference and budget entirely.
	collab := engine.Score([]*entity.Product{liked, cheapFit}, sess, ModeCollaborative)
	if collab[0].Product.Name != "Liked" {
		t.Errorf("collaborative rank 1 = %s, want Liked", collab[0].Product.Name)
	}

	// Preference mode ignores the affinity signal.
	pref := engine.Score([]*entity.Product{liked, cheapFit}, sess, ModePreference)
	if pref[0].Product.Name != "CheapFit" {
		t.Errorf("preference rank 1 = %s, want CheapFit", pref[0].Product.Name)
	}
	if pref[0].Sub.Collaborative != 0 || pref[1].Sub.Collaborative != 1.0 {
		// Sub-scores stay reported; only the weight is zeroed.
		t.Errorf("sub-scores should still carry the raw affinity values")
	}
}

func TestScoreNoveltyPenalty(t *testing.T) {
	a := product("A", 8, nil)
	b := product("B", 8, nil)

	sess := store.NewSession("s1")
	engine := NewEngine(DefaultWeights(), nil)

	before := engine.Score([]*entity.Product{a, b}, sess, ModeBlended)
	if before[0].Total != before[1].Total {
		t.Fatalf("setup: totals should tie without a shown history")
	}

	sess.LastShown = []string{a.Id.String()}
	after := engine.Score([]*entity.Product{a, b}, sess, ModeBlended)

	if after[0].Product.Name != "B" {
		t.Errorf("rank 1 = %s, want B after A was just shown", after[0].Product.Name)
	}
	var aScored ScoredProduct
	for _, sp := range after {
		if sp.Product.Name == "A" {
			aScored = sp
		}
	}
	if aScored.Sub.NoveltyPenalty == 0 {
		t.Errorf("A should carry a novelty penalty")
	}
}

func TestScoreNeutralPreferenceWithoutRequests(t *testing.T) {
	p := product("P", 5, nil)
	got := NewEngine(DefaultWeights(), nil).Score([]*entity.Product{p}, store.NewSession("s1"), ModeBlended)

	if got[0].Sub.Preference != 0.5 {
		t.Errorf("Preference = %v with no requested slots, want neutral 0.5", got[0].Sub.Preference)
	}
}

func TestScoreEmptyCatalog(t *testing.T) {
	got := NewEngine(DefaultWeights(), nil).Score(nil, store.NewSession("s1"), ModeBlended)
	if len(got) != 0 {
		t.Errorf("got %d products from empty catalog, want 0", len(got))
	}
}

func TestScoreSpicyMoodUsesSpiceLevel(t *testing.T) {
	wings := product("Wings", 8, func(p *entity.Product) { p.SpiceLevel = 4 })
	salad := product("Salad", 8, nil)

	sess := sessionWith("spicy", nil, nil)
	got := NewEngine(DefaultWeights(), nil).Score([]*entity.Product{salad, wings}, sess, ModeBlended)

	if got[0].Product.Name != "Wings" {
		t.Errorf("rank 1 = %s, want Wings via spice level", got[0].Product.Name)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"", ModeBlended},
		{"blended", ModeBlended},
		{"preference", ModePreference},
		{"collaborative", ModeCollaborative},
		{"garbage", ModeBlended},
	}
	for _, tt := range tests {
		if got := ParseMode(tt.in); got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
