package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/barysiuk/claudesync/internal/core"
)

// Color palette.
var (
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#A78BFA") // Light purple
	colorSuccess   = lipgloss.Color("#10B981") // Green (synced, new)
	colorDanger    = lipgloss.Color("#EF4444") // Red (errors, removed)
	colorMuted     = lipgloss.Color("#6B7280") // Gray
	colorBorder    = lipgloss.Color("#374151") // Dark gray
	colorWarning   = lipgloss.Color("#F59E0B") // Amber (modified, skipped)
	colorInfo      = lipgloss.Color("#3B82F6") // Blue (MCP servers)
)

// Shared styles used across views.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorPrimary).
			Padding(0, 1)

	headingStyle = lipgloss.NewStyle().
			Bold(true)

	// No MarginBottom; views add explicit newlines.
	sectionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorMuted)

	selectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D1D5DB"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorInfo)

	checkStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	diffHunkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#06B6D4"))

	sectionRuleStyle = lipgloss.NewStyle().
				Foreground(colorBorder)

	// Confirmation dialog.
	dialogBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 2)

	dialogButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFF7DB")).
				Background(colorMuted).
				Padding(0, 2)

	dialogActiveButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFF7DB")).
				Background(colorDanger).
				Padding(0, 2).
				Bold(true)
)

// renderSectionHeader renders a section label with short rules on both sides:
// "  ── SKILLS ──"
func renderSectionHeader(label string) string {
	rule := sectionRuleStyle.Render("──")
	text := sectionHeaderStyle.Render(" " + label + " ")
	return "  " + rule + text + rule
}

// statusBadge is the colored dot shown before a row.
func statusBadge(status core.ComparisonStatus) string {
	switch status {
	case core.ComparisonNew:
		return successStyle.Render("●")
	case core.ComparisonModified:
		return warningStyle.Render("●")
	case core.ComparisonRemoved:
		return errorStyle.Render("●")
	default:
		return mutedStyle.Render("●")
	}
}
