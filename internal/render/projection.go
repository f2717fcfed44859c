// Package render builds the read-side artifacts of the recommendation
// history: the filtered on-screen projection and the export text. Both
// are pure functions of the history snapshot they are given.
package render

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/sandevgo/pulseboard/internal/core"
)

// FilterAll selects the unfiltered view.
const FilterAll = ""

// Projection is one renderable view of the history: the filtered items
// newest-first plus the totals the header shows.
type Projection struct {
	Items  []core.Recommendation
	Total  int    // stored entries across all categories
	Filter string // FilterAll or one of the taxonomy names
	HasNew bool   // any still-fresh entry in the filtered view
}

// BuildProjection filters the history without reordering it. The
// history arrives newest-first and the projection keeps that order.
func BuildProjection(history []core.Recommendation, filter string) Projection {
	p := Projection{Total: len(history), Filter: filter}
	for _, rec := range history {
		if filter != FilterAll && rec.Category != filter {
			continue
		}
		if rec.IsNew {
			p.HasNew = true
		}
		p.Items = append(p.Items, rec)
	}
	return p
}

// Signature fingerprints everything display-relevant. Two projections
// with equal signatures render identically, so the redraw can be
// skipped.
func (p Projection) Signature() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%d\n", p.Filter, p.Total)
	for _, rec := range p.Items {
		fmt.Fprintf(&b, "%d|%t|%s|%s|%s\n", rec.ID, rec.IsNew, rec.Timestamp, rec.Category, rec.Text)
	}
	sum := md5.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
