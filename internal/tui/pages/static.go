// ABOUTME: Gift, Cart and Help screens with fixed content
// ABOUTME: Gift and Cart are placeholders until those features launch

package pages

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/onestepgreener/greener-cli/internal/tui/icons"
	"github.com/onestepgreener/greener-cli/internal/tui/styles"
)

// Static is a screen that only renders text
type Static struct {
	render func() string
}

func (s *Static) Init() tea.Cmd                           { return nil }
func (s *Static) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return s, nil }
func (s *Static) View() string                            { return s.render() }

type comingSoon struct {
	icon        icons.Icon
	title       string
	subtitle    string
	description string
	features    []string
	steps       []string
}

func (c comingSoon) view() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(c.icon.String() + " " + c.title))
	sb.WriteString("\n\n")
	sb.WriteString(styles.StatusWarning.Render("Coming Soon!"))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render(c.subtitle))
	sb.WriteString("\n")
	sb.WriteString(c.description)
	sb.WriteString("\n\n")
	for _, f := range c.features {
		sb.WriteString(styles.Tab.Render(icons.CheckOK.String() + " " + f))
	}
	if len(c.steps) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(styles.Subtitle.Render("How It Works"))
		for i, step := range c.steps {
			sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, step))
		}
	}
	return sb.String()
}

// NewGift is the rewards placeholder
func NewGift() *Static {
	c := comingSoon{
		icon:        icons.Gift,
		title:       "Gift Rewards",
		subtitle:    "We're preparing something amazing for you",
		description: "Get ready for exclusive rewards, points, and exciting gifts for your eco-friendly efforts. Stay tuned for the launch!",
		features:    []string{"Earn Points", "Redeem Rewards", "Exclusive Gifts"},
		steps: []string{
			"Recycle regularly and earn points",
			"Accumulate points for rewards",
			"Redeem for amazing gifts",
		},
	}
	return &Static{render: c.view}
}

// NewCart is the shop placeholder
func NewCart() *Static {
	c := comingSoon{
		icon:        icons.Cart,
		title:       "Shopping Cart",
		subtitle:    "Your eco-friendly shopping experience is on the way",
		description: "Shop for sustainable products, eco-friendly items, and recycling supplies. Get ready for a seamless shopping experience that rewards your green choices!",
		features:    []string{"Eco Products", "Recycling Supplies", "Green Rewards"},
	}
	return &Static{render: c.view}
}

// Support contact details
const (
	SupportPhone = "+91 8744901010"
	SupportEmail = "customercare@onestepgreener.org"
)

// NewHelp lists the ways to reach support
func NewHelp() *Static {
	return &Static{render: func() string {
		var sb strings.Builder
		sb.WriteString(styles.Title.Render(icons.Support.String() + " Help & Support"))
		sb.WriteString("\n")
		sb.WriteString(styles.Subtitle.Render("We're here to help you"))
		sb.WriteString("\n\n")
		sb.WriteString(styles.ValueStyle.Render("Get in Touch"))
		sb.WriteString("\n")
		sb.WriteString(styles.Hint.Render("Choose your preferred way to contact us"))
		sb.WriteString("\n\n")

		contacts := []struct {
			icon  icons.Icon
			title string
			value string
		}{
			{icons.Phone, "Call Us", SupportPhone},
			{icons.Mail, "Email Us", SupportEmail},
			{icons.Chat, "WhatsApp", "Chat with us instantly"},
		}
		for _, c := range contacts {
			sb.WriteString(fmt.Sprintf("%s %s  %s\n", c.icon,
				styles.KeyStyle.Render(fmt.Sprintf("%-9s", c.title)), c.value))
		}

		sb.WriteString("\n")
		sb.WriteString(styles.Panel.Render(styles.ValueStyle.Render("Response Time") + "\n" +
			"We typically respond within 2-4 hours during business hours.\n" +
			"For urgent matters, please call us directly."))
		return sb.String()
	}}
}
