// ABOUTME: Modal alert dialog that blocks the screen until acknowledged
// ABOUTME: Each button carries the message delivered when it is chosen

package alert

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/onestepgreener/greener-cli/internal/tui/styles"
)

// Button is one choice in the dialog. Msg may be nil for a plain dismiss.
type Button struct {
	Label string
	Msg   tea.Msg
}

// ChosenMsg is sent when the dialog closes. Msg is the chosen button's
// message, nil for a plain dismiss.
type ChosenMsg struct {
	Msg tea.Msg
}

// Alert is a modal dialog
type Alert struct {
	title   string
	message string
	buttons []Button
	focus   int
	cancel  int
}

// New creates an alert. Without buttons it gets a single OK.
func New(title, message string, buttons ...Button) *Alert {
	if len(buttons) == 0 {
		buttons = []Button{{Label: "OK"}}
	}
	return &Alert{
		title:   title,
		message: message,
		buttons: buttons,
		focus:   len(buttons) - 1,
		cancel:  0,
	}
}

// OK is a single-button alert that delivers msg when acknowledged
func OK(title, message string, msg tea.Msg) *Alert {
	return New(title, message, Button{Label: "OK", Msg: msg})
}

// Title returns the dialog title
func (a *Alert) Title() string { return a.title }

// Message returns the dialog body
func (a *Alert) Message() string { return a.message }

// Buttons returns the button labels
func (a *Alert) Buttons() []string {
	labels := make([]string, len(a.buttons))
	for i, b := range a.buttons {
		labels[i] = b.Label
	}
	return labels
}

// Focused returns the index of the focused button
func (a *Alert) Focused() int { return a.focus }

// Init implements tea.Model
func (a *Alert) Init() tea.Cmd { return nil }

// Update implements tea.Model. Enter chooses the focused button, esc the first.
func (a *Alert) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	switch key.String() {
	case "left", "h", "shift+tab":
		if a.focus > 0 {
			a.focus--
		}
	case "right", "l", "tab":
		if a.focus < len(a.buttons)-1 {
			a.focus++
		}
	case "enter", " ":
		return a, a.choose(a.focus)
	case "esc":
		return a, a.choose(a.cancel)
	}
	return a, nil
}

func (a *Alert) choose(i int) tea.Cmd {
	chosen := a.buttons[i].Msg
	return func() tea.Msg { return ChosenMsg{Msg: chosen} }
}

// View implements tea.Model
func (a *Alert) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(a.title))
	sb.WriteString("\n")
	sb.WriteString(a.message)
	sb.WriteString("\n\n")

	var buttons []string
	for i, b := range a.buttons {
		style := styles.Button
		if i == a.focus {
			style = styles.FocusedButton
		}
		buttons = append(buttons, style.Render(b.Label))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))

	return styles.Dialog.Render(sb.String())
}
