// ABOUTME: Pickup history screen with impact summary and past pickups
// ABOUTME: A sparkline shows the weight trend across pickups

package pages

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/onestepgreener/greener-cli/internal/tui/icons"
	"github.com/onestepgreener/greener-cli/internal/tui/styles"
	"github.com/onestepgreener/greener-cli/internal/tui/widgets"
)

// Impact is what a pickup saved
type Impact struct {
	TreesSaved int
	WaterSaved string
	CO2Reduced string
}

// PickupRecord is one completed pickup
type PickupRecord struct {
	Date     string
	Time     string
	WeightKg float64
	Status   string
	Impact   Impact
}

// Summary is one headline statistic
type Summary struct {
	Icon   icons.Icon
	Title  string
	Value  string
	Change string
}

// HistorySummary are the totals at the top of the screen
var HistorySummary = []Summary{
	{icons.Recycle, "Total Pickups", "24", "+12% this month"},
	{icons.Tree, "Trees Saved", "18", "+3 this month"},
	{icons.Water, "Water Saved", "14,000L", "+2,500L this month"},
}

// PickupRecords are listed newest first
var PickupRecords = []PickupRecord{
	{"15 Oct 2024", "10:30 AM", 25, "Completed", Impact{3, "2,500L", "45kg"}},
	{"12 Oct 2024", "2:15 PM", 18, "Completed", Impact{2, "1,800L", "32kg"}},
	{"08 Oct 2024", "9:45 AM", 32, "Completed", Impact{4, "3,200L", "58kg"}},
	{"05 Oct 2024", "11:20 AM", 22, "Completed", Impact{3, "2,200L", "40kg"}},
	{"01 Oct 2024", "4:00 PM", 15, "Completed", Impact{2, "1,500L", "27kg"}},
	{"28 Sep 2024", "10:00 AM", 28, "Completed", Impact{3, "2,800L", "50kg"}},
}

// History renders the pickup history
type History struct {
	width int
}

func NewHistory(width int) *History { return &History{width: width} }

func (h *History) Init() tea.Cmd { return nil }

func (h *History) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return h, nil }

// weights returns pickup weights oldest first
func weights(records []PickupRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[len(records)-1-i] = r.WeightKg
	}
	return out
}

func (h *History) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.History.String() + " Pickup History"))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("Your recycling journey captured"))
	sb.WriteString("\n\n")

	cfg := widgets.DefaultCardConfig()
	var cards []string
	for _, s := range HistorySummary {
		cards = append(cards, widgets.Card(s.Icon, s.Title, s.Value, s.Change, cfg))
	}
	sb.WriteString(widgets.CardGrid(cards, 3))
	sb.WriteString("\n\n")

	sb.WriteString("Weight trend  ")
	sb.WriteString(widgets.Sparkline(weights(PickupRecords), styles.Secondary))
	sb.WriteString("\n\n")

	for _, r := range PickupRecords {
		sb.WriteString(fmt.Sprintf("%s %-12s %-9s %s  %s\n",
			icons.Recycle, r.Date, r.Time,
			styles.ValueStyle.Render(fmt.Sprintf("%4.0fkg", r.WeightKg)),
			widgets.StatusText(r.Status, widgets.StatusOK)))
		sb.WriteString(styles.Hint.Render(fmt.Sprintf("    %s %d trees  %s %s water  %s %s CO2",
			icons.Tree, r.Impact.TreesSaved,
			icons.Water, r.Impact.WaterSaved,
			icons.Leaf, r.Impact.CO2Reduced)))
		sb.WriteString("\n")
	}
	return sb.String()
}
