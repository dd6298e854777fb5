package constant

// Conversational reply templates. Phrasing quality is not a goal of the
// core; these exist so the turn contract always carries a usable reply.
const (
	ReplyOrder       = "Sure, I can add that to your cart."
	ReplyMood        = "Here are some %s options I think you'll like."
	ReplyNutrient    = "Looking for %s options, these fit."
	ReplyGeneric     = "Here is what I found. Tell me more about your mood, budget, or dietary needs to narrow it down."
	ReplyEmptyResult = "I couldn't find anything matching those filters. Want to relax the budget or the dietary limits?"
	ReplyAskMore     = "Tell me more about your preferences (mood, budget, dietary)."
)
