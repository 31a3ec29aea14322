// ABOUTME: FAQ screen with expandable answers in a scrollable viewport
// ABOUTME: Links to Help & Support for anything the answers do not cover

package pages

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/onestepgreener/greener-cli/internal/nav"
	"github.com/onestepgreener/greener-cli/internal/tui/icons"
	"github.com/onestepgreener/greener-cli/internal/tui/styles"
)

// QA is one question and its answer
type QA struct {
	Question string
	Answer   string
}

// FAQs are the frequently asked questions
var FAQs = []QA{
	{
		"How does the recycling pickup work?",
		"Our recycling pickup service works on a scheduled basis. You can choose from weekly, monthly, or yearly pickups. Our team will collect your sorted waste and ensure it's properly recycled.",
	},
	{
		"What types of waste can I recycle?",
		"We accept paper, cardboard, plastic bottles, glass containers, metal cans, and electronic waste. Please ensure all items are clean and properly sorted before pickup.",
	},
	{
		"How do I earn rewards points?",
		"You earn points for every kilogram of waste recycled. The more you recycle, the more points you accumulate. You can redeem these points for exciting rewards and discounts.",
	},
	{
		"Can I change my pickup schedule?",
		"Yes! You can modify your pickup schedule anytime through the app. Simply go to your profile settings and update your preferred frequency.",
	},
	{
		"How is my environmental impact calculated?",
		"We calculate your environmental impact based on the amount of waste you recycle. This includes CO2 saved, trees preserved, and water conserved through your recycling efforts.",
	},
	{
		"What if I miss a pickup?",
		"If you miss a scheduled pickup, you can reschedule it for the next available slot. We'll send you a notification to confirm the new pickup time.",
	},
}

// FAQ is an accordion of questions; at most one answer is open
type FAQ struct {
	viewport viewport.Model
	cursor   int
	open     int
	width    int
}

func NewFAQ(width, height int) *FAQ {
	f := &FAQ{open: -1, width: width}
	f.viewport = viewport.New(width, max(5, height))
	f.refresh()
	return f
}

// Open returns the expanded question, -1 when all are closed
func (f *FAQ) Open() int   { return f.open }
func (f *FAQ) Cursor() int { return f.cursor }

// SetSize resizes the viewport
func (f *FAQ) SetSize(width, height int) {
	f.width = width
	f.viewport.Width = width
	f.viewport.Height = max(5, height)
	f.refresh()
}

func (f *FAQ) Init() tea.Cmd { return nil }

func (f *FAQ) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		f.viewport, cmd = f.viewport.Update(msg)
		return f, cmd
	}

	switch key.String() {
	case "up", "k":
		if f.cursor > 0 {
			f.cursor--
		}
	case "down", "j":
		if f.cursor < len(FAQs)-1 {
			f.cursor++
		}
	case "enter", " ":
		if f.open == f.cursor {
			f.open = -1
		} else {
			f.open = f.cursor
		}
	case "h":
		return f, gotoScreen(nav.ScreenHelp)
	default:
		var cmd tea.Cmd
		f.viewport, cmd = f.viewport.Update(msg)
		return f, cmd
	}
	f.refresh()
	return f, nil
}

func (f *FAQ) refresh() {
	var sb strings.Builder
	answer := lipgloss.NewStyle().Width(max(20, f.width-6)).PaddingLeft(4)
	for i, qa := range FAQs {
		sign := "+"
		if i == f.open {
			sign = "-"
		}
		line := fmt.Sprintf("%s %s", sign, qa.Question)
		if i == f.cursor {
			line = styles.ActiveTab.Render(line)
		} else {
			line = "  " + line
		}
		sb.WriteString(line)
		sb.WriteString("\n")
		if i == f.open {
			sb.WriteString(answer.Render(qa.Answer))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("Still have questions?"))
	sb.WriteString("\n")
	sb.WriteString("Our support team is here to help ")
	sb.WriteString(styles.Hint.Render("[h] Contact Support"))
	f.viewport.SetContent(sb.String())
}

func (f *FAQ) View() string {
	return styles.Title.Render(icons.FAQ.String()+" Frequently Asked Questions") + "\n\n" + f.viewport.View()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
