package advisor

import "strings"

// Boilerplate openers the upstream model pads its advice with. Matching
// is anchored to the start of the candidate so a sentence that merely
// mentions one of these mid-text is not penalized.
var boilerplatePrefixes = []string{
	"maintain current", "continue monitor", "keep track", "stay hydrated",
	"get rest", "follow up", "seek medical",
}

// An action trigger anywhere in the text rescues a boilerplate opener:
// "follow up with your doctor as recommended" is still worth keeping.
var actionTriggers = []string{
	"recommend", "suggest", "advise", "encourage", "consider", "try",
	"should", "could", "might",
}

// IsGeneric reports whether a normalized candidate is suppressible
// boilerplate: it opens with a boilerplate phrase and carries no action
// trigger anywhere.
func IsGeneric(text string) bool {
	lower := strings.ToLower(text)
	if !hasAnyPrefix(lower, boilerplatePrefixes) {
		return false
	}
	return !containsAny(lower, actionTriggers)
}

func hasAnyPrefix(lower string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
