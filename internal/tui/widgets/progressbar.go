// ABOUTME: Goal progress bar for recycling targets
// ABOUTME: Colors move from red to amber to green as the goal fills

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBarConfig holds configuration for the progress bar
type ProgressBarConfig struct {
	Width      int
	LowBelow   float64 // Percentage under which the bar is red
	MidBelow   float64 // Percentage under which the bar is amber
	LowColor   lipgloss.Color
	MidColor   lipgloss.Color
	HighColor  lipgloss.Color
	EmptyColor lipgloss.Color
}

// DefaultProgressBarConfig returns sensible defaults
func DefaultProgressBarConfig() ProgressBarConfig {
	return ProgressBarConfig{
		Width:      20,
		LowBelow:   50,
		MidBelow:   75,
		LowColor:   lipgloss.Color("#EF4444"),
		MidColor:   lipgloss.Color("#F59E0B"),
		HighColor:  lipgloss.Color("#008052"),
		EmptyColor: lipgloss.Color("#374151"),
	}
}

// GoalBar renders progress towards a goal followed by the percentage
func GoalBar(percent float64, config ProgressBarConfig) string {
	if config.Width <= 0 {
		config.Width = 20
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	color := config.HighColor
	switch {
	case percent < config.LowBelow:
		color = config.LowColor
	case percent < config.MidBelow:
		color = config.MidColor
	}

	filled := int(percent / 100.0 * float64(config.Width))
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("▓", filled)) +
		lipgloss.NewStyle().Foreground(config.EmptyColor).Render(strings.Repeat("░", config.Width-filled))

	return fmt.Sprintf("[%s] %s", bar, lipgloss.NewStyle().Foreground(color).Render(fmt.Sprintf("%3.0f%%", percent)))
}
