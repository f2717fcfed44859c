package render

import (
	"fmt"
	"strings"

	"github.com/sandevgo/pulseboard/internal/core"
)

// EmptyNotice is surfaced instead of an artifact when there is nothing
// to export.
const EmptyNotice = "No recommendations to export yet."

// BuildExport renders the full history as a downloadable text artifact,
// one `[timestamp] [category] text` block per entry separated by blank
// lines. The active filter is deliberately ignored. ok is false when
// the history is empty.
func BuildExport(history []core.Recommendation) (string, bool) {
	if len(history) == 0 {
		return "", false
	}

	var b strings.Builder
	for i, rec := range history {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%s] [%s] %s", rec.Timestamp, rec.Category, rec.Text)
	}
	b.WriteString("\n")
	return b.String(), true
}
