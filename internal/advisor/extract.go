package advisor

import (
	"regexp"
	"strings"
)

// Extraction rules in fixed priority order. Every rule runs against the
// whole advisory regardless of earlier matches; overlapping captures are
// expected and left for the deduplicator to resolve. A rule contributes
// its first capture group, or the whole match when it has none.
var extractionRules = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^\s*\d+[.)]\s+(.+)$`),
	regexp.MustCompile(`(?m)^\s*[-•*]\s+(.+)$`),
	regexp.MustCompile(`(?i)\brecommendation\s*\d*\s*:\s*([^.\n]+)`),
	regexp.MustCompile(`(?i)\bactionable\s+recommendation\s*:\s*([^.\n]+)`),
	regexp.MustCompile(`(?i)\badditional\s+suggestion\s*:\s*([^.\n]+)`),
	regexp.MustCompile(`(?i)\b(?:recommend|suggest|advise|encourage)\s+([^.!?\n]+)`),
	regexp.MustCompile(`(?i)\b(?:should|could|might)\s+([^.!?\n]+)`),
	regexp.MustCompile(`(?i)\b(?:consider|try)\s+([^.!?\n]+)`),
	regexp.MustCompile(`(?i)\bit\s+is\s+(?:important|beneficial)\s+to\s+([^.!?\n]+)`),
}

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// Sentence-level fallback only fires when no rule matched at all.
var fallbackTriggers = []string{
	"recommend", "suggest", "advise", "encourage", "consider", "should", "could",
}

// Sentences that look advisory but are really the model narrating its
// assessment. Any hit disqualifies the sentence from the fallback.
var fallbackDenylist = []string{
	"based on", "patient presents", "vital signs", "i assess", "overall health",
}

const maxFallbackSentences = 3

// Extract pulls raw recommendation candidates out of one advisory text.
// Candidates are returned in rule order, then in match order within each
// rule; when no rule matches anything the sentence fallback contributes
// up to three trigger-bearing sentences instead.
func Extract(text string) []string {
	var candidates []string
	for _, rule := range extractionRules {
		for _, match := range rule.FindAllStringSubmatch(text, -1) {
			candidate := match[0]
			if len(match) > 1 && match[1] != "" {
				candidate = match[1]
			}
			candidates = append(candidates, candidate)
		}
	}
	if len(candidates) > 0 {
		return candidates
	}
	return fallbackSentences(text)
}

func fallbackSentences(text string) []string {
	var picked []string
	for _, sentence := range sentenceBoundary.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) < 20 || len(sentence) >= 200 {
			continue
		}
		lower := strings.ToLower(sentence)
		if !containsAny(lower, fallbackTriggers) {
			continue
		}
		if containsAny(lower, fallbackDenylist) {
			continue
		}
		picked = append(picked, sentence)
		if len(picked) == maxFallbackSentences {
			break
		}
	}
	return picked
}

func containsAny(lower string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(lower, needle) {
			return true
		}
	}
	return false
}
