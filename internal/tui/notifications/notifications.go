// ABOUTME: Notifications screen listing the customer's notifications with unread state
// ABOUTME: Marks one or all as read, clears the list locally and refreshes on demand

package notifications

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/onestepgreener/greener-cli/internal/client"
	"github.com/onestepgreener/greener-cli/internal/tui/alert"
	"github.com/onestepgreener/greener-cli/internal/tui/icons"
	"github.com/onestepgreener/greener-cli/internal/tui/styles"
	"github.com/onestepgreener/greener-cli/internal/tui/widgets"
)

// RefreshMsg asks for the list to be fetched again
type RefreshMsg struct{}

// MarkReadMsg asks for one notification, or all when ID is nil, to be
// marked read on the server. The list is updated before it is sent.
type MarkReadMsg struct {
	ID *int
}

// ClearRequestMsg asks for the clear confirmation
type ClearRequestMsg struct{}

// ClearConfirmedMsg is delivered when the user confirms clearing
type ClearConfirmedMsg struct{}

// ConfirmClear is the clear-all confirmation dialog
func ConfirmClear() *alert.Alert {
	return alert.New("Clear All", "Are you sure you want to clear all notifications?",
		alert.Button{Label: "Cancel"},
		alert.Button{Label: "Clear", Msg: ClearConfirmedMsg{}},
	)
}

// Model is the notifications screen
type Model struct {
	items   []client.Notification
	cursor  int
	loading bool
	err     string
	width   int
}

// New creates the screen in the loading state
func New(width int) *Model {
	return &Model{loading: true, width: width}
}

// Items returns the current list
func (m *Model) Items() []client.Notification { return m.items }

// Cursor returns the highlighted row
func (m *Model) Cursor() int { return m.cursor }

// Loading reports whether a fetch is in flight
func (m *Model) Loading() bool { return m.loading }

// Err returns the last fetch error message
func (m *Model) Err() string { return m.err }

// Unread counts unread notifications
func (m *Model) Unread() int { return client.UnreadCount(m.items) }

// SetItems replaces the list after a fetch
func (m *Model) SetItems(items []client.Notification) {
	m.items = items
	m.loading = false
	m.err = ""
	if m.cursor >= len(items) {
		m.cursor = max(0, len(items)-1)
	}
}

// SetError records a failed fetch, keeping any list already shown
func (m *Model) SetError(msg string) {
	m.loading = false
	m.err = msg
}

// Clear empties the list locally
func (m *Model) Clear() {
	m.items = nil
	m.cursor = 0
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd { return nil }

// Update implements tea.Model
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
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter":
		return m, m.markOne()
	case "a":
		return m, m.markAll()
	case "c":
		if len(m.items) > 0 {
			return m, func() tea.Msg { return ClearRequestMsg{} }
		}
	case "r":
		if !m.loading {
			m.loading = true
			return m, func() tea.Msg { return RefreshMsg{} }
		}
	}
	return m, nil
}

func (m *Model) markOne() tea.Cmd {
	if m.cursor >= len(m.items) || m.items[m.cursor].IsRead {
		return nil
	}
	m.items[m.cursor].IsRead = true
	id := m.items[m.cursor].ID
	return func() tea.Msg { return MarkReadMsg{ID: &id} }
}

func (m *Model) markAll() tea.Cmd {
	if m.Unread() == 0 {
		return nil
	}
	for i := range m.items {
		m.items[i].IsRead = true
	}
	return func() tea.Msg { return MarkReadMsg{} }
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	title := styles.Title.Render(icons.Bell.String() + " Notifications")
	if badge := widgets.UnreadBadge(m.Unread()); badge != "" {
		title += " " + badge
	}
	sb.WriteString(title)
	sb.WriteString("\n\n")

	if m.err != "" {
		sb.WriteString(widgets.StatusText(m.err, widgets.StatusCritical))
		sb.WriteString("\n\n")
	}

	switch {
	case m.loading && len(m.items) == 0:
		sb.WriteString("Loading notifications...")
	case len(m.items) == 0:
		sb.WriteString(styles.ValueStyle.Render("No notifications"))
		sb.WriteString("\n")
		sb.WriteString(styles.Hint.Render("You're all caught up!"))
	default:
		for i, n := range m.items {
			sb.WriteString(m.renderItem(i, n))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Hint.Render("enter mark read · a mark all read · c clear all · r refresh"))

	return lipgloss.NewStyle().Width(m.width).Render(sb.String())
}

func (m *Model) renderItem(i int, n client.Notification) string {
	marker := "  "
	if i == m.cursor {
		marker = styles.KeyStyle.Render("> ")
	}

	titleStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	dot := " "
	if !n.IsRead {
		titleStyle = styles.ValueStyle
		dot = lipgloss.NewStyle().Foreground(styles.Primary).Render("●")
	}

	head := fmt.Sprintf("%s%s %s %s  %s", marker, dot,
		widgets.StatusIcon(widgets.PriorityLevel(n.Priority)),
		titleStyle.Render(n.Title),
		styles.Hint.Render(n.Time))
	return head + "\n      " + n.Message
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
