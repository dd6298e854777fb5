package intent

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Budget phrasing: "under $10", "below 10 dollars", "$9.50", "max 12".
var (
	budgetUnderRe  = regexp.MustCompile(`(?:under|below|less than|max(?:imum)?)\s*\$?\s*(\d+(?:\.\d+)?)`)
	budgetDollarRe = regexp.MustCompile(`\$\s*(\d+(?:\.\d+)?)`)
	budgetWordRe   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:dollars|bucks)`)
)

// Extractor turns a raw utterance into an Intent. The rule-based path is
// always computed; an optional external Parser can override the slot values
// when it answers within the configured timeout.
type Extractor struct {
	parser        Parser // nil => rule-based only
	parserTimeout time.Duration
}

func NewExtractor(parser Parser, parserTimeout time.Duration) *Extractor {
	if parserTimeout <= 0 {
		parserTimeout = 2 * time.Second
	}
	return &Extractor{
		parser:        parser,
		parserTimeout: parserTimeout,
	}
}

// Extract never fails the caller. On total extraction failure it returns an
// Intent with all slots empty and Source = none so downstream logic keeps
// the prior context unchanged.
func (e *Extractor) Extract(ctx context.Context, utterance string, prior PriorContext) Intent {
	ruleIntent := extractRules(utterance, prior)

	if e.parser != nil {
		parseCtx, cancel := context.WithTimeout(ctx, e.parserTimeout)
		defer cancel()

		external, err := e.parser.Parse(parseCtx, utterance)
		if err == nil && external.HasSlots() {
			// Keep the engagement markers from the rule pass; the external
			// parser only owns the slot values.
			external.Question = external.Question || ruleIntent.Question
			external.Enthusiasm = external.Enthusiasm || ruleIntent.Enthusiasm
			external.OrderIntent = external.OrderIntent || ruleIntent.OrderIntent
			if external.Query == "" {
				external.Query = ruleIntent.Query
			}
			external.Source = SourceExternal
			return external
		}
		// Degraded extraction: fall through to the rule-based result.
	}

	return ruleIntent
}

// extractRules is the pure keyword/pattern matcher.
func extractRules(utterance string, prior PriorContext) Intent {
	txt := strings.ToLower(strings.TrimSpace(utterance))
	out := Intent{Source: SourceRule}

	if txt == "" {
		out.Source = SourceNone
		return out
	}

	for _, phrase := range resetPhrases {
		if strings.Contains(txt, phrase) {
			out.ResetFilters = true
			break
		}
	}

	if b := extractBudget(txt, prior); b != nil {
		out.BudgetCeiling = b
	}

	for alias, canonical := range dietaryAliases {
		if strings.Contains(txt, alias) {
			out.DietaryTags = appendUnique(out.DietaryTags, canonical)
		}
	}
	for _, tag := range dietaryTags {
		if containsWord(txt, tag) || strings.Contains(txt, strings.ReplaceAll(tag, "_", " ")) {
			out.DietaryTags = appendUnique(out.DietaryTags, tag)
		}
	}

	for _, mood := range moodWords {
		if containsWord(txt, mood) {
			out.Mood = mood
			break
		}
	}
	if out.Mood == "" {
		for alias, canonical := range moodAliases {
			if containsWord(txt, alias) {
				out.Mood = canonical
				break
			}
		}
	}

	for phrase, canonical := range nutrientWords {
		if strings.Contains(txt, phrase) {
			out.Nutrient = canonical
			break
		}
	}

	out.Question = strings.Contains(txt, "?")
	for _, w := range enthusiasmWords {
		if strings.Contains(txt, w) {
			out.Enthusiasm = true
			break
		}
	}
	for _, w := range orderWords {
		if strings.Contains(txt, w) {
			out.OrderIntent = true
			break
		}
	}

	out.Query = strings.TrimSpace(utterance)

	if !out.HasSlots() && !out.Question && !out.Enthusiasm && !out.OrderIntent {
		out.Source = SourceNone
	}
	return out
}

// extractBudget resolves a numeric ceiling, including relative phrasing
// ("cheaper") interpreted against the prior ceiling.
func extractBudget(txt string, prior PriorContext) *float64 {
	if m := budgetUnderRe.FindStringSubmatch(txt); m != nil {
		return parsePrice(m[1])
	}
	if m := budgetWordRe.FindStringSubmatch(txt); m != nil {
		return parsePrice(m[1])
	}
	if m := budgetDollarRe.FindStringSubmatch(txt); m != nil {
		return parsePrice(m[1])
	}
	for _, w := range cheaperWords {
		if strings.Contains(txt, w) && prior.BudgetCeiling != nil {
			lowered := *prior.BudgetCeiling * 0.8
			return &lowered
		}
	}
	return nil
}

func parsePrice(s string) *float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return nil
	}
	return &v
}

func containsWord(txt, word string) bool {
	idx := 0
	for {
		i := strings.Index(txt[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isWordChar(txt[start-1])
		afterOK := end == len(txt) || !isWordChar(txt[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

func appendUnique(tags []string, tag string) []string {
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	return append(tags, tag)
}
