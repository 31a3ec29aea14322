// ABOUTME: Dashboard screen with greeting, recycling stats, goals and recent pickups
// ABOUTME: Home of the authenticated area; shortcuts open profile and notifications

package dashboard

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/onestepgreener/greener-cli/internal/nav"
	"github.com/onestepgreener/greener-cli/internal/tui/icons"
	"github.com/onestepgreener/greener-cli/internal/tui/styles"
	"github.com/onestepgreener/greener-cli/internal/tui/widgets"
)

// Goal is a recycling target shown on the dashboard
type Goal struct {
	Icon  icons.Icon
	Title string
	Value string
}

// Goals are the community targets
var Goals = []Goal{
	{icons.Recycle, "Quantity Recycled", "1000 kgs"},
	{icons.Tree, "Total Trees Saved", "1000"},
	{icons.Recycle, "Total Plastic Recycled", "100kg"},
	{icons.Leaf, "CO2 Saved", "500 kgs"},
	{icons.Info, "Saved Electricity", "500 kWh"},
	{icons.Water, "Total Water Saved", "1000 L"},
}

// Pickup is an upcoming pickup awaiting confirmation
type Pickup struct {
	Number int
	Title  string
	When   string
}

// RecentPickups are shown under the goals
var RecentPickups = []Pickup{
	{Number: 2, Title: "Confirm Your Pickup", When: "15th Sep 2025, 10:30 AM"},
}

// Dashboard displays the customer's overview
type Dashboard struct {
	profile nav.ProfileData
	unread  int
	now     func() time.Time
	width   int
	height  int
}

// New creates a dashboard for profile
func New(profile nav.ProfileData, width, height int) *Dashboard {
	return &Dashboard{
		profile: profile,
		now:     time.Now,
		width:   width,
		height:  height,
	}
}

// SetProfile replaces the rendered profile
func (d *Dashboard) SetProfile(p nav.ProfileData) {
	d.profile = p
}

// SetUnread sets the notification badge count
func (d *Dashboard) SetUnread(n int) {
	d.unread = n
}

// SetSize updates the dashboard dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// Greeting picks the salutation for the hour of day
func Greeting(hour int) string {
	switch {
	case hour < 12:
		return "Good Morning"
	case hour < 17:
		return "Good Afternoon"
	default:
		return "Good Evening"
	}
}

// Init implements tea.Model
func (d *Dashboard) Init() tea.Cmd { return nil }

// Update handles the dashboard shortcuts
func (d *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}
	switch key.String() {
	case "p":
		return d, gotoScreen(nav.ScreenProfile)
	case "n":
		return d, gotoScreen(nav.ScreenNotifications)
	}
	return d, nil
}

func gotoScreen(s nav.Screen) tea.Cmd {
	return func() tea.Msg { return nav.Goto{Screen: s} }
}

// View renders the dashboard
func (d *Dashboard) View() string {
	var sb strings.Builder

	sb.WriteString(d.renderHeader())
	sb.WriteString("\n\n")

	cfg := widgets.DefaultCardConfig()
	stats := []string{
		widgets.Card(icons.Recycle, "Pickups", fmt.Sprintf("%d", d.profile.Stats.Pickups), "total", cfg),
		widgets.Card(icons.Leaf, "Recycled", d.profile.Stats.WasteRecycled, "waste", cfg),
		widgets.Card(icons.Tree, "Efficiency", d.profile.Stats.Efficiency, "sorting", cfg),
	}
	sb.WriteString(widgets.CardGrid(stats, 3))
	sb.WriteString("\n")
	sb.WriteString(styles.Hint.Render("Sorting efficiency "))
	sb.WriteString(widgets.GoalBar(EfficiencyPercent(d.profile.Stats.Efficiency), widgets.DefaultProgressBarConfig()))
	sb.WriteString("\n\n")

	sb.WriteString(styles.Subtitle.Render("Our Goals"))
	sb.WriteString("\n")
	var goals []string
	for _, g := range Goals {
		goals = append(goals, widgets.Card(g.Icon, g.Title, g.Value, "target", cfg))
	}
	sb.WriteString(widgets.CardGrid(goals, d.perRow(cfg.Width)))
	sb.WriteString("\n\n")

	sb.WriteString(styles.Subtitle.Render("Recent Pickups"))
	sb.WriteString("\n")
	for _, p := range RecentPickups {
		sb.WriteString(styles.Panel.Render(fmt.Sprintf("%s Pickups #%d\n%s\n%s",
			icons.Recycle, p.Number,
			styles.ValueStyle.Render(p.Title),
			styles.Hint.Render(p.When))))
		sb.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Width(d.width).
		Render(sb.String())
}

func (d *Dashboard) renderHeader() string {
	name := d.profile.Username
	left := styles.Title.Render(Greeting(d.now().Hour())) + "\n" +
		styles.Subtitle.Render("Hi, Welcome Back "+name)

	bell := icons.Bell.String()
	if d.unread > 0 {
		bell += " " + widgets.UnreadBadge(d.unread)
	}
	right := styles.Hint.Render("[n] ") + bell + "  " +
		styles.Hint.Render("[p] ") + styles.ActiveTab.Render(d.profile.Initials())

	gap := d.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", gap), right)
}

func (d *Dashboard) perRow(cardWidth int) int {
	n := d.width / cardWidth
	switch {
	case n < 1:
		return 1
	case n > 3:
		return 3
	default:
		return n
	}
}

// EfficiencyPercent parses a stat like "85%"; anything unparsable is 0
func EfficiencyPercent(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "%")), 64)
	if err != nil {
		return 0
	}
	return v
}
