// ABOUTME: Onboarding screen, the entry point when nobody is logged in
// ABOUTME: Offers login or account creation

package pages

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/onestepgreener/greener-cli/internal/nav"
	"github.com/onestepgreener/greener-cli/internal/tui/icons"
	"github.com/onestepgreener/greener-cli/internal/tui/styles"
)

// Onboarding welcomes a logged-out user
type Onboarding struct{}

func NewOnboarding() *Onboarding { return &Onboarding{} }

func (o *Onboarding) Init() tea.Cmd { return nil }

// Update maps enter or l to login and s to signup
func (o *Onboarding) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}
	switch key.String() {
	case "enter", "l":
		return o, gotoScreen(nav.ScreenLogin)
	case "s":
		return o, gotoScreen(nav.ScreenSignup)
	}
	return o, nil
}

func (o *Onboarding) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.App.String() + " Join The Green Movement"))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("Reduce • Recycle • Reuse"))
	sb.WriteString("\n\n")
	sb.WriteString(styles.FocusedButton.Render("Login"))
	sb.WriteString(styles.Button.Render("Create Account"))
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("enter/l login · s create account"))
	return sb.String()
}

func gotoScreen(s nav.Screen) tea.Cmd {
	return func() tea.Msg { return nav.Goto{Screen: s} }
}
