package advisor

import "strings"

// CategoryFallback labels candidates no keyword list claims.
const CategoryFallback = "General Health"

type category struct {
	name     string
	keywords []string
}

// Taxonomy in priority order; the first category with a keyword hit
// claims the candidate, so "take a walk to manage stress" files under
// Exercise even though it also mentions stress.
var taxonomy = []category{
	{"Relaxation", []string{"breath", "breathe", "relax", "meditate", "calm", "mindful"}},
	{"Exercise", []string{"exercise", "activity", "walk", "movement", "physical", "yoga"}},
	{"Stress Management", []string{"stress", "anxiety", "pressure", "cope", "manage stress"}},
	{"Sleep & Rest", []string{"sleep", "rest", "fatigue", "tired", "energy", "nap"}},
	{"Nutrition", []string{"diet", "food", "water", "hydrate", "eat", "nutrition", "meal"}},
	{"Monitoring", []string{"monitor", "check", "track", "measure", "observe", "watch"}},
	{"Lifestyle", []string{"routine", "habit", "lifestyle", "daily", "regular"}},
	{"Medical", []string{"doctor", "medical", "professional", "clinic", "hospital"}},
}

// Categorize assigns the first matching category by case-insensitive
// substring search over the candidate text.
func Categorize(text string) string {
	lower := strings.ToLower(text)
	for _, cat := range taxonomy {
		for _, keyword := range cat.keywords {
			if strings.Contains(lower, keyword) {
				return cat.name
			}
		}
	}
	return CategoryFallback
}

// Categories lists every assignable category in taxonomy order, fallback
// last. The order doubles as the filter cycle order in the UI.
func Categories() []string {
	names := make([]string, 0, len(taxonomy)+1)
	for _, cat := range taxonomy {
		names = append(names, cat.name)
	}
	return append(names, CategoryFallback)
}
