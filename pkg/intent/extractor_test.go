package intent

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestExtractRules(t *testing.T) {
	ten := 10.0

	tests := []struct {
		name        string
		utterance   string
		prior       PriorContext
		wantMood    string
		wantBudget  *float64
		wantDietary []string
		wantNutri   string
		wantReset   bool
		wantSource  Source
	}{
		{
			name:       "budget under dollar",
			utterance:  "something under $10 please",
			wantBudget: &ten,
			wantSource: SourceRule,
		},
		{
			name:       "budget bare dollar amount",
			utterance:  "I have $10",
			wantBudget: &ten,
			wantSource: SourceRule,
		},
		{
			name:       "budget word form",
			utterance:  "around 10 dollars max",
			wantBudget: &ten,
			wantSource: SourceRule,
		},
		{
			name:        "dietary hyphenated alias",
			utterance:   "any gluten-free mains?",
			wantDietary: []string{"gluten_free"},
			wantSource:  SourceRule,
		},
		{
			name:        "dietary plain tag",
			utterance:   "show me vegan options",
			wantDietary: []string{"vegan"},
			wantSource:  SourceRule,
		},
		{
			name:       "mood direct",
			utterance:  "feeling spicy today",
			wantMood:   "spicy",
			wantSource: SourceRule,
		},
		{
			name:       "mood alias",
			utterance:  "something hot would be great",
			wantMood:   "spicy",
			wantSource: SourceRule,
		},
		{
			name:       "nutrient keto maps to low carb",
			utterance:  "got anything keto?",
			wantNutri:  "low_carb",
			wantSource: SourceRule,
		},
		{
			name:       "reset phrase",
			utterance:  "ok start over",
			wantReset:  true,
			wantSource: SourceRule,
		},
		{
			name:       "relative budget needs prior ceiling",
			utterance:  "something cheaper",
			prior:      PriorContext{BudgetCeiling: &ten},
			wantBudget: floatPtr(8.0),
			wantSource: SourceRule,
		},
		{
			name:       "no signal at all",
			utterance:  "hello there friend",
			wantSource: SourceNone,
		},
		{
			name:       "empty utterance",
			utterance:  "   ",
			wantSource: SourceNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractRules(tt.utterance, tt.prior)

			if got.Mood != tt.wantMood {
				t.Errorf("Mood = %q, want %q", got.Mood, tt.wantMood)
			}
			if !floatPtrEqual(got.BudgetCeiling, tt.wantBudget) {
				t.Errorf("BudgetCeiling = %v, want %v", got.BudgetCeiling, tt.wantBudget)
			}
			if len(got.DietaryTags) != len(tt.wantDietary) {
				t.Fatalf("DietaryTags = %v, want %v", got.DietaryTags, tt.wantDietary)
			}
			for i, tag := range tt.wantDietary {
				if got.DietaryTags[i] != tag {
					t.Errorf("DietaryTags[%d] = %q, want %q", i, got.DietaryTags[i], tag)
				}
			}
			if got.Nutrient != tt.wantNutri {
				t.Errorf("Nutrient = %q, want %q", got.Nutrient, tt.wantNutri)
			}
			if got.ResetFilters != tt.wantReset {
				t.Errorf("ResetFilters = %v, want %v", got.ResetFilters, tt.wantReset)
			}
			if got.Source != tt.wantSource {
				t.Errorf("Source = %q, want %q", got.Source, tt.wantSource)
			}
		})
	}
}

func TestExtractEngagementMarkers(t *testing.T) {
	got := extractRules("can I order the wings? they were amazing", PriorContext{})

	if !got.Question {
		t.Error("Question = false, want true")
	}
	if !got.Enthusiasm {
		t.Error("Enthusiasm = false, want true")
	}
	if !got.OrderIntent {
		t.Error("OrderIntent = false, want true")
	}
}

type stubParser struct {
	intent Intent
	err    error
	block  bool
}

func (p *stubParser) Parse(ctx context.Context, text string) (Intent, error) {
	if p.block {
		<-ctx.Done()
		return Intent{}, ctx.Err()
	}
	return p.intent, p.err
}

func TestExtractExternalParserWins(t *testing.T) {
	parser := &stubParser{intent: Intent{Mood: "comfort", DietaryTags: []string{"vegan"}}}
	e := NewExtractor(parser, time.Second)

	got := e.Extract(context.Background(), "can I get cozy vegan food?", PriorContext{})

	if got.Source != SourceExternal {
		t.Fatalf("Source = %q, want %q", got.Source, SourceExternal)
	}
	if got.Mood != "comfort" {
		t.Errorf("Mood = %q, want comfort", got.Mood)
	}
	// Engagement markers come from the rule pass even when slots are external.
	if !got.Question {
		t.Error("Question marker lost when external parser answered")
	}
	if got.Query == "" {
		t.Error("Query should fall back to the raw utterance")
	}
}

func TestExtractParserTimeoutFallsBackToRules(t *testing.T) {
	parser := &stubParser{block: true}
	e := NewExtractor(parser, 10*time.Millisecond)

	got := e.Extract(context.Background(), "something spicy", PriorContext{})

	if got.Source != SourceRule {
		t.Fatalf("Source = %q, want %q", got.Source, SourceRule)
	}
	if got.Mood != "spicy" {
		t.Errorf("Mood = %q, want spicy", got.Mood)
	}
}

func TestExtractParserErrorFallsBackToRules(t *testing.T) {
	parser := &stubParser{err: errors.New("model unavailable")}
	e := NewExtractor(parser, time.Second)

	got := e.Extract(context.Background(), "vegan please", PriorContext{})

	if got.Source != SourceRule {
		t.Fatalf("Source = %q, want %q", got.Source, SourceRule)
	}
	if len(got.DietaryTags) != 1 || got.DietaryTags[0] != "vegan" {
		t.Errorf("DietaryTags = %v, want [vegan]", got.DietaryTags)
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
