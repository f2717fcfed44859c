// Package ui holds the shared lipgloss styles. Plain ANSI colors only,
// so output stays readable on both light and dark terminals.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle ANSI 6 (Cyan) for headings
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)

	// UsageStyle ANSI 2 (Green) for arguments and usage lines
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// DescStyle ANSI 8 (Bright Black / Gray) for descriptions
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// FlagStyle ANSI 3 (Yellow) for flags
	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// Dashboard styles.
var (
	// HeaderStyle for the dashboard title line
	HeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)

	// MutedStyle for secondary text: counters, help footer, rules
	MutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// BadgeStyle marks freshly arrived entries
	BadgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)

	// CategoryStyle for the category tag on each entry
	CategoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	// AlertStyle for vitals alerts and destructive prompts
	AlertStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)

	// OkStyle for the connected marker
	OkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)
