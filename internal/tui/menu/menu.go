// ABOUTME: Bottom navigation bar shown on authenticated screens
// ABOUTME: Number keys jump between the home, gift, cart, FAQ, and history tabs

package menu

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/onestepgreener/greener-cli/internal/nav"
	"github.com/onestepgreener/greener-cli/internal/tui/icons"
	"github.com/onestepgreener/greener-cli/internal/tui/styles"
)

// SelectedMsg is sent when a tab is chosen
type SelectedMsg struct {
	Screen nav.Screen
}

type tab struct {
	label  string
	icon   icons.Icon
	screen nav.Screen
}

var tabs = []tab{
	{label: "Home", icon: icons.Home, screen: nav.ScreenDashboard},
	{label: "Gift", icon: icons.Gift, screen: nav.ScreenGift},
	{label: "Cart", icon: icons.Cart, screen: nav.ScreenCart},
	{label: "FAQ", icon: icons.FAQ, screen: nav.ScreenFAQ},
	{label: "History", icon: icons.History, screen: nav.ScreenPickupHistory},
}

// BottomNav is the tab bar
type BottomNav struct {
	active nav.Screen
}

// New creates a bar with the given screen highlighted
func New(active nav.Screen) *BottomNav {
	return &BottomNav{active: active}
}

// SetActive changes the highlighted tab
func (b *BottomNav) SetActive(s nav.Screen) {
	b.active = s
}

// Active returns the highlighted screen
func (b *BottomNav) Active() nav.Screen {
	return b.active
}

// Handle maps a key to a tab selection. It returns nil for keys the bar
// does not own.
func (b *BottomNav) Handle(msg tea.KeyMsg) tea.Cmd {
	n, err := strconv.Atoi(msg.String())
	if err != nil || n < 1 || n > len(tabs) {
		return nil
	}
	screen := tabs[n-1].screen
	return func() tea.Msg { return SelectedMsg{Screen: screen} }
}

// View renders the bar
func (b *BottomNav) View() string {
	var parts []string
	for i, t := range tabs {
		label := strconv.Itoa(i+1) + " " + t.icon.String() + " " + t.label
		if t.screen == b.active {
			parts = append(parts, styles.ActiveTab.Render(label))
		} else {
			parts = append(parts, styles.Tab.Render(label))
		}
	}
	return strings.Join(parts, " ")
}
