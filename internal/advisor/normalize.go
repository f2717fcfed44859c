package advisor

import (
	"strings"
	"unicode"
)

// Leading filler stripped from raw captures, checked in order; only the
// first matching prefix is removed and only when a word boundary follows.
var fillerPrefixes = []string{
	"that", "the patient", "you", "i recommend", "i suggest", "we should", "we could",
}

const minCandidateLength = 11

var whitespaceReplacer = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

// Normalize cleans one raw capture into presentable text. It reports
// false when the cleaned result is too short to keep.
func Normalize(raw string) (string, bool) {
	text := strings.TrimSpace(raw)
	text = stripFillerPrefix(text)
	text = collapseWhitespace(text)
	text = strings.TrimRight(text, ".,;:")
	text = strings.TrimSpace(text)
	text = capitalizeFirst(text)
	if len(text) < minCandidateLength {
		return "", false
	}
	return text, true
}

func stripFillerPrefix(text string) string {
	lower := strings.ToLower(text)
	for _, prefix := range fillerPrefixes {
		if !strings.HasPrefix(lower, prefix) {
			continue
		}
		rest := text[len(prefix):]
		if rest != "" && !unicode.IsSpace(rune(rest[0])) {
			continue
		}
		return strings.TrimSpace(rest)
	}
	return text
}

func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(whitespaceReplacer.Replace(text)), " ")
}

func capitalizeFirst(text string) string {
	if text == "" {
		return text
	}
	runes := []rune(text)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
