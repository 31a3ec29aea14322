// ABOUTME: Profile screen listing the customer's details and account actions
// ABOUTME: Logout asks for confirmation before the session is cleared

package profile

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/onestepgreener/greener-cli/internal/nav"
	"github.com/onestepgreener/greener-cli/internal/tui/alert"
	"github.com/onestepgreener/greener-cli/internal/tui/icons"
	"github.com/onestepgreener/greener-cli/internal/tui/styles"
	"github.com/onestepgreener/greener-cli/internal/tui/widgets"
)

// LogoutRequestMsg asks for the logout confirmation
type LogoutRequestMsg struct{}

// LogoutConfirmedMsg is delivered when the user confirms logout
type LogoutConfirmedMsg struct{}

// ConfirmLogout is the logout confirmation dialog
func ConfirmLogout() *alert.Alert {
	return alert.New("Logout", "Are you sure you want to logout?",
		alert.Button{Label: "Cancel"},
		alert.Button{Label: "Logout", Msg: LogoutConfirmedMsg{}},
	)
}

type action struct {
	key   string
	icon  icons.Icon
	label string
	msg   tea.Msg
}

var actions = []action{
	{"e", icons.Edit, "Edit Profile", nav.Goto{Screen: nav.ScreenEditProfile}},
	{"n", icons.Bell, "Notifications", nav.Goto{Screen: nav.ScreenNotifications}},
	{"h", icons.Support, "Help & Support", nav.Goto{Screen: nav.ScreenHelp}},
	{"l", icons.Logout, "Logout", LogoutRequestMsg{}},
}

// Model is the profile screen
type Model struct {
	profile nav.ProfileData
	cursor  int
	width   int
}

// New creates the profile screen
func New(profile nav.ProfileData, width int) *Model {
	return &Model{profile: profile, width: width}
}

// Cursor returns the highlighted action
func (m *Model) Cursor() int { return m.cursor }

// Init implements tea.Model
func (m *Model) Init() tea.Cmd { return nil }

// Update moves the cursor and triggers actions by key or enter
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(actions)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		return m, emit(actions[m.cursor].msg)
	}

	for i, a := range actions {
		if key.String() == a.key {
			m.cursor = i
			return m, emit(a.msg)
		}
	}
	return m, nil
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// View renders the profile
func (m *Model) View() string {
	p := m.profile
	var sb strings.Builder

	avatar := styles.ActiveTab.Render(p.Initials())
	header := lipgloss.JoinHorizontal(lipgloss.Center, avatar, "  ",
		styles.Title.Render(p.Username))
	sb.WriteString(header)
	if p.Status != "" {
		sb.WriteString("  ")
		sb.WriteString(widgets.CustomerStatusBadge(p.Status))
	}
	sb.WriteString("\n\n")

	rows := []struct {
		icon  icons.Icon
		label string
		value string
	}{
		{icons.Phone, "Mobile", p.MobilePhone},
		{icons.Mail, "Email", p.Email},
		{icons.Home, "Address", p.Address},
		{icons.Home, "City", joinNonEmpty(", ", p.City, p.State)},
		{icons.User, "User type", p.UserType},
	}
	var details strings.Builder
	for _, r := range rows {
		if r.value == "" {
			continue
		}
		details.WriteString(fmt.Sprintf("%s %s %s\n", r.icon,
			styles.KeyStyle.Render(fmt.Sprintf("%-10s", r.label)),
			styles.ValueStyle.Render(r.value)))
	}
	sb.WriteString(styles.Panel.Render(strings.TrimRight(details.String(), "\n")))
	sb.WriteString("\n\n")

	for i, a := range actions {
		line := fmt.Sprintf("%s %s", a.icon, a.label)
		if i == m.cursor {
			sb.WriteString(styles.ActiveTab.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString(styles.Hint.Render("  [" + a.key + "]"))
		sb.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(m.width).Render(sb.String())
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
