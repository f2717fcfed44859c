package advisor

import "strings"

// Similarity above this counts as a duplicate. At 0.6 the pair
// "reducing screen time before bed" / "reducing your screen time before
// sleep" scores 4/6 and is caught, while genuinely different advice on
// the same topic passes.
const duplicateThreshold = 0.6

// tokenSet lowercases, splits on whitespace and keeps tokens longer than
// three characters. Punctuation stays attached to its token.
func tokenSet(text string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if len(field) > 3 {
			set[field] = struct{}{}
		}
	}
	return set
}

// Similarity scores two texts as shared-token count over the larger
// token-set size. Either side tokenizing to nothing scores zero.
func Similarity(a, b string) float64 {
	setA, setB := tokenSet(a), tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	shared := 0
	for token := range setA {
		if _, ok := setB[token]; ok {
			shared++
		}
	}
	larger := len(setA)
	if len(setB) > larger {
		larger = len(setB)
	}
	return float64(shared) / float64(larger)
}

// IsDuplicate reports whether the candidate is too close to any already
// stored text.
func IsDuplicate(candidate string, existing []string) bool {
	for _, prev := range existing {
		if Similarity(candidate, prev) > duplicateThreshold {
			return true
		}
	}
	return false
}
