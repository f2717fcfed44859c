package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sandevgo/pulseboard/internal/render"
	"github.com/sandevgo/pulseboard/internal/service/ui"
)

func (m Model) View() string {
	lines := make([]string, 0, 16)
	lines = append(lines, m.viewHeader(), renderRule(m.width), "")
	lines = append(lines, m.viewVitals(), "")
	lines = append(lines, m.viewRecommendations(), "")
	lines = append(lines, m.viewFooter())
	return strings.Join(lines, "\n")
}

func (m Model) viewHeader() string {
	left := ui.HeaderStyle.Render("Pulseboard")
	link := ui.AlertStyle.Render("● disconnected")
	if m.live.Connected {
		link = ui.OkStyle.Render("● connected")
	}
	counters := fmt.Sprintf("frames %d  faces %d  advice %d",
		m.live.Frames, m.live.FacesDetected, m.live.AdviceSeen)
	right := ui.MutedStyle.Render(counters) + "  " + link
	return renderHeaderLine(m.width, left, right)
}

func (m Model) viewVitals() string {
	d := m.live.LastDiagnosis
	if d == nil {
		return ui.MutedStyle.Render("waiting for vitals")
	}

	parts := []string{
		"status " + d.HealthStatus,
		fmt.Sprintf("%.0f bpm", d.HeartRate),
		fmt.Sprintf("stress %.1f", d.StressLevel),
		"fatigue " + d.FatigueRisk,
	}
	line := strings.Join(parts, "   ")
	if len(d.Alerts) > 0 {
		line += "   " + ui.AlertStyle.Render("! "+strings.Join(d.Alerts, ", "))
	}
	return line
}

func (m Model) viewRecommendations() string {
	p := m.projection

	caption := fmt.Sprintf("recommendations (%d of %d)", len(p.Items), p.Total)
	if p.Filter != render.FilterAll {
		caption = fmt.Sprintf("recommendations: %s (%d of %d)", p.Filter, len(p.Items), p.Total)
	}
	lines := []string{ui.HeaderStyle.Render(caption), renderRule(m.width)}

	if len(p.Items) == 0 {
		if p.Total == 0 {
			lines = append(lines, ui.MutedStyle.Render("Nothing captured yet."))
		} else {
			lines = append(lines, ui.MutedStyle.Render("Nothing stored under "+p.Filter+"."))
		}
		return strings.Join(lines, "\n")
	}

	start, end := visibleRange(len(p.Items), m.scroll, m.listSize())
	if start > 0 {
		lines = append(lines, ui.MutedStyle.Render(fmt.Sprintf("  ↑ %d more", start)))
	}
	for i := start; i < end; i++ {
		rec := p.Items[i]
		cursor := " "
		if i == m.scroll {
			cursor = ">"
		}
		meta := fmt.Sprintf("%s %s  %s", cursor,
			ui.MutedStyle.Render(rec.Timestamp),
			ui.CategoryStyle.Render("["+rec.Category+"]"))
		if rec.IsNew {
			meta += "  " + ui.BadgeStyle.Render("NEW")
		}
		lines = append(lines, meta, "   "+truncateText(rec.Text, m.textWidth()))
	}
	if end < len(p.Items) {
		lines = append(lines, ui.MutedStyle.Render(fmt.Sprintf("  ↓ %d more", len(p.Items)-end)))
	}

	return strings.Join(lines, "\n")
}

func (m Model) viewFooter() string {
	if m.confirmClear {
		prompt := fmt.Sprintf("Remove all %d recommendation(s)? y confirms, any other key cancels", m.projection.Total)
		return ui.AlertStyle.Render(prompt)
	}

	lines := make([]string, 0, 2)
	if m.notice != "" {
		lines = append(lines, ui.UsageStyle.Render(m.notice))
	}
	lines = append(lines, ui.MutedStyle.Render(m.help.View(m.keys)))
	return strings.Join(lines, "\n")
}

// listSize is the number of history entries that fit on screen. Each
// entry takes two lines; the rest of the chrome takes roughly twelve.
func (m Model) listSize() int {
	if m.height <= 0 {
		return 8
	}
	return max((m.height-12)/2, 3)
}

func (m Model) textWidth() int {
	if m.width <= 0 {
		return 76
	}
	return max(m.width-4, 20)
}

func renderHeaderLine(width int, left, right string) string {
	lineWidth := width
	if lineWidth <= 0 {
		lineWidth = 80
	}
	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	if leftWidth+rightWidth+1 >= lineWidth {
		return strings.TrimSpace(left + " " + right)
	}
	return left + strings.Repeat(" ", lineWidth-leftWidth-rightWidth) + right
}

func renderRule(width int) string {
	lineWidth := width
	if lineWidth <= 0 {
		lineWidth = 80
	}
	return ui.MutedStyle.Render(strings.Repeat("─", lineWidth))
}

// visibleRange centers the window on the cursor and pins it to the
// edges near either end of the list.
func visibleRange(total, cursor, size int) (int, int) {
	if total <= 0 || size <= 0 {
		return 0, 0
	}
	if total <= size {
		return 0, total
	}
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= total {
		cursor = total - 1
	}
	start := max(cursor-size/2, 0)
	end := start + size
	if end > total {
		end = total
		start = max(end-size, 0)
	}
	return start, end
}

func clamp(value, upper int) int {
	if value < 0 {
		return 0
	}
	if value > upper {
		return upper
	}
	return value
}

func truncateText(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	if limit <= 3 {
		return value[:limit]
	}
	return value[:limit-3] + "..."
}
