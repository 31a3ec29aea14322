// ABOUTME: Compact stat card widget for dashboard and history summaries
// ABOUTME: Draws a bordered block with the title set into the top border

package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/onestepgreener/greener-cli/internal/tui/icons"
)

// CardConfig holds configuration for a stat card
type CardConfig struct {
	Width       int
	BorderColor lipgloss.Color
	TitleColor  lipgloss.Color
	ValueColor  lipgloss.Color
}

// DefaultCardConfig returns sensible defaults
func DefaultCardConfig() CardConfig {
	return CardConfig{
		Width:       24,
		BorderColor: lipgloss.Color("#6B7280"),
		TitleColor:  lipgloss.Color("#008052"),
		ValueColor:  lipgloss.Color("#F9FAFB"),
	}
}

// Card renders a value with a caption under a titled border
func Card(icon icons.Icon, title, value, caption string, config CardConfig) string {
	if config.Width <= 0 {
		config.Width = 24
	}
	inner := config.Width - 4

	titleStr := truncate(icon.String()+" "+title, inner-1)
	titleStyle := lipgloss.NewStyle().Foreground(config.TitleColor)
	borderStyle := lipgloss.NewStyle().Foreground(config.BorderColor)
	valueStyle := lipgloss.NewStyle().Foreground(config.ValueColor).Bold(true)
	captionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	top := borderStyle.Render("┌─ ") + titleStyle.Render(titleStr) +
		borderStyle.Render(" "+strings.Repeat("─", max(0, inner-lipgloss.Width(titleStr)-1))+"┐")

	line := func(s string) string {
		pad := max(0, inner-lipgloss.Width(s))
		return borderStyle.Render("│  ") + s + strings.Repeat(" ", pad) + borderStyle.Render("│")
	}

	bottom := borderStyle.Render("└" + strings.Repeat("─", config.Width-2) + "┘")

	return strings.Join([]string{
		top,
		line(valueStyle.Render(truncate(value, inner))),
		line(captionStyle.Render(truncate(caption, inner))),
		bottom,
	}, "\n")
}

// CardGrid lays cards out in rows of perRow
func CardGrid(cards []string, perRow int) string {
	if perRow <= 0 {
		perRow = 3
	}
	var rows []string
	for i := 0; i < len(cards); i += perRow {
		end := i + perRow
		if end > len(cards) {
			end = len(cards)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// truncate shortens a string to maxLen runes with ellipsis if needed
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:max(0, maxLen)])
	}
	return string(r[:maxLen-3]) + "..."
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
