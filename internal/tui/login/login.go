// ABOUTME: Login screen collecting the mobile number that receives the OTP
// ABOUTME: Input is reduced to digits with inline hints; submit is guarded while in flight

package login

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/onestepgreener/greener-cli/internal/forms"
	"github.com/onestepgreener/greener-cli/internal/tui/icons"
	"github.com/onestepgreener/greener-cli/internal/tui/styles"
)

// SubmitMsg asks for an OTP to be generated for Mobile
type SubmitMsg struct {
	Mobile string
}

// SignupMsg asks to open the signup screen
type SignupMsg struct{}

// Model is the login screen
type Model struct {
	input   textinput.Model
	spinner spinner.Model
	hint    string
	loading bool
	recent  []string
	recall  int
}

// New creates the login screen with focus in the mobile field
func New() *Model {
	ti := textinput.New()
	ti.Placeholder = "10-digit mobile number"
	ti.Prompt = "+91 "
	ti.CharLimit = forms.MobileLength + 5
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.StatusOK

	return &Model{input: ti, spinner: sp, recall: -1}
}

// SetRecent sets the numbers offered with up/down, newest first
func (m *Model) SetRecent(mobiles []string) {
	m.recent = mobiles
	m.recall = -1
}

// recallStep moves through the recent numbers and fills the input
func (m *Model) recallStep(delta int) {
	if len(m.recent) == 0 {
		return
	}
	next := m.recall + delta
	if next < 0 || next >= len(m.recent) {
		return
	}
	m.recall = next
	m.input.SetValue(m.recent[next])
	m.input.CursorEnd()
	m.hint = forms.MobileHint(m.recent[next])
}

// Mobile returns the cleaned mobile number
func (m *Model) Mobile() string {
	return forms.CleanMobile(m.input.Value())
}

// Hint returns the inline validation message
func (m *Model) Hint() string { return m.hint }

// Loading reports whether an OTP request is in flight
func (m *Model) Loading() bool { return m.loading }

// SetLoading clears or sets the in-flight flag
func (m *Model) SetLoading(loading bool) {
	m.loading = loading
}

// CanSubmit reports whether the generate button is enabled
func (m *Model) CanSubmit() bool {
	return !m.loading && len(m.Mobile()) == forms.MobileLength
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch msg.String() {
		case "enter":
			return m, m.submit()
		case "s", "S":
			return m, func() tea.Msg { return SignupMsg{} }
		case "up":
			m.recallStep(1)
			return m, nil
		case "down":
			m.recallStep(-1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	clean := forms.CleanMobile(m.input.Value())
	if clean != m.input.Value() {
		m.input.SetValue(clean)
	}
	m.hint = forms.MobileHint(clean)
	return m, cmd
}

func (m *Model) submit() tea.Cmd {
	mobile := m.Mobile()
	if hint := forms.ValidateMobile(mobile); hint != "" {
		m.hint = hint
		return nil
	}
	m.hint = ""
	m.loading = true
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return SubmitMsg{Mobile: mobile} },
	)
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Phone.String() + " Login"))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("Enter your mobile number to receive a one-time password"))
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	if m.hint != "" {
		sb.WriteString(styles.FieldError.Render(m.hint))
	}
	sb.WriteString("\n\n")

	switch {
	case m.loading:
		sb.WriteString(m.spinner.View() + " Generating OTP...")
	case m.CanSubmit():
		sb.WriteString(styles.FocusedButton.Render("Generate OTP"))
	default:
		sb.WriteString(styles.DisabledButton.Render("Generate OTP"))
	}

	sb.WriteString("\n")
	if len(m.recent) > 0 {
		sb.WriteString(styles.Hint.Render("↑↓ recent numbers"))
		sb.WriteString("\n")
	}
	sb.WriteString(styles.Help.Render("Don't have an account? Press s to sign up"))
	return sb.String()
}
