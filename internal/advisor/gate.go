package advisor

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// Markers the upstream model emits while it has nothing to say yet.
var placeholderMarkers = []string{"analyzing", "temporarily", "unavailable"}

// Gate rejects whole-message repeats and placeholder text before any
// extraction runs. It carries the session memo state: the digest of the
// last advisory that reached extraction and the raw text of the last
// advisory that passed.
type Gate struct {
	lastDigest        string
	lastProcessedText string
}

// Admit reports whether the advisory should reach extraction and updates
// the memo state when it does. The byte-identical check runs before
// digesting, so consecutive repeats never touch the hash. On admission
// the processed-text memo is always set, even if extraction later yields
// nothing.
func (g *Gate) Admit(text string) bool {
	if text == "" {
		return false
	}

	lower := strings.ToLower(text)
	for _, marker := range placeholderMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}

	if text == g.lastProcessedText {
		return false
	}

	digest := Digest(text)
	if digest == g.lastDigest {
		return false
	}

	g.lastDigest = digest
	g.lastProcessedText = text
	return true
}

// Reset clears the memo state back to initial values.
func (g *Gate) Reset() {
	g.lastDigest = ""
	g.lastProcessedText = ""
}

// Digest is the short fingerprint used for batch-level repeat detection.
func Digest(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}
