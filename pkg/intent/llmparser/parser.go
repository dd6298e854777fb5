package llmparser

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"foodiebot-be/pkg/intent"
	"foodiebot-be/pkg/llm"
)

const extractionPrompt = `You are a strict JSON extractor for a food ordering assistant.
Return ONLY valid JSON with keys: mood, budget, dietary, nutrient, reset, question, order, enthusiasm.
- mood: one of [spicy, adventurous, comfort, healthy, indulgent, quick, refreshing, cozy, party] or null
- budget: numeric upper bound in dollars or null
- dietary: array of [vegan, vegetarian, gluten_free, dairy_free, nut_free]
- nutrient: one of [protein, low_carb, low_calorie] or null
- reset: true only if the user asks to clear their filters
- question / order / enthusiasm: booleans

User message: %q
`

var trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)

// Parser extracts intent slots with an LLM backend. Responses that are not
// strict JSON are repaired once (brace extraction, trailing-comma cleanup)
// before giving up; any remaining failure is returned to the caller, which
// falls back to the rule-based extractor.
type Parser struct {
	provider llm.LLMProvider
}

func New(provider llm.LLMProvider) *Parser {
	return &Parser{provider: provider}
}

var _ intent.Parser = &Parser{}

type slotPayload struct {
	Mood       *string  `json:"mood"`
	Budget     *float64 `json:"budget"`
	Dietary    []string `json:"dietary"`
	Nutrient   *string  `json:"nutrient"`
	Reset      bool     `json:"reset"`
	Question   bool     `json:"question"`
	Order      bool     `json:"order"`
	Enthusiasm bool     `json:"enthusiasm"`
}

func (p *Parser) Parse(ctx context.Context, text string) (intent.Intent, error) {
	raw, err := p.provider.Generate(ctx,
		fmt.Sprintf(extractionPrompt, text),
		llm.WithTemperature(0),
		llm.WithMaxTokens(200),
	)
	if err != nil {
		return intent.Intent{}, fmt.Errorf("external parser call failed: %w", err)
	}

	payload, err := parseSlots(raw)
	if err != nil {
		return intent.Intent{}, err
	}

	out := intent.Intent{
		DietaryTags:  normalizeDietary(payload.Dietary),
		ResetFilters: payload.Reset,
		Question:     payload.Question,
		OrderIntent:  payload.Order,
		Enthusiasm:   payload.Enthusiasm,
		Query:        strings.TrimSpace(text),
		Source:       intent.SourceExternal,
	}
	if payload.Mood != nil {
		out.Mood = strings.ToLower(strings.TrimSpace(*payload.Mood))
	}
	if payload.Budget != nil && *payload.Budget > 0 {
		out.BudgetCeiling = payload.Budget
	}
	if payload.Nutrient != nil {
		out.Nutrient = strings.ToLower(strings.TrimSpace(*payload.Nutrient))
	}
	return out, nil
}

func parseSlots(raw string) (*slotPayload, error) {
	jsonText := extractJSON(raw)
	if jsonText == "" {
		return nil, fmt.Errorf("no JSON object in parser output")
	}

	var payload slotPayload
	if err := json.Unmarshal([]byte(jsonText), &payload); err != nil {
		cleaned := cleanJSON(jsonText)
		if err2 := json.Unmarshal([]byte(cleaned), &payload); err2 != nil {
			return nil, fmt.Errorf("unparseable parser output: %w", err)
		}
	}
	return &payload, nil
}

// extractJSON pulls the outermost {...} from model output that may be
// wrapped in prose or markdown fences.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}

func cleanJSON(s string) string {
	s = trailingCommaRe.ReplaceAllString(s, "$1")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(s)
}

func normalizeDietary(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := map[string]bool{}
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(t, "-", "_")))
		t = strings.ReplaceAll(t, " ", "_")
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
