package intent

// Vocabulary for the rule-based matcher. Tags are stored in their
// canonical snake_case form; aliases map spoken variants onto them.

var moodWords = []string{
	"spicy", "adventurous", "comfort", "healthy", "indulgent",
	"quick", "refreshing", "cozy", "party",
}

// moodAliases maps loose phrasing to a canonical mood.
var moodAliases = map[string]string{
	"hot":      "spicy",
	"chili":    "spicy",
	"jalapeno": "spicy",
	"comfy":    "cozy",
	"fast":     "quick",
	"light":    "refreshing",
}

var dietaryTags = []string{
	"vegan", "vegetarian", "gluten_free", "dairy_free", "nut_free",
}

// dietaryAliases covers the spaced / hyphenated spellings users actually type.
var dietaryAliases = map[string]string{
	"gluten free": "gluten_free",
	"gluten-free": "gluten_free",
	"dairy free":  "dairy_free",
	"dairy-free":  "dairy_free",
	"nut free":    "nut_free",
	"nut-free":    "nut_free",
	"no gluten":   "gluten_free",
	"no dairy":    "dairy_free",
	"no nuts":     "nut_free",
	"plant based": "vegan",
	"plant-based": "vegan",
}

var nutrientWords = map[string]string{
	"protein":      "protein",
	"high protein": "protein",
	"low carb":     "low_carb",
	"low-carb":     "low_carb",
	"keto":         "low_carb",
	"low calorie":  "low_calorie",
	"low-calorie":  "low_calorie",
	"diet":         "low_calorie",
}

var resetPhrases = []string{
	"reset", "start over", "clear filters", "forget that", "never mind the filters",
}

var enthusiasmWords = []string{
	"love", "perfect", "amazing", "delicious", "yum", "awesome",
}

var orderWords = []string{
	"order", "add to cart", "i'll take", "i will take", "buy",
}

var cheaperWords = []string{
	"cheaper", "less expensive", "lower budget",
}
