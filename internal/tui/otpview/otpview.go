// ABOUTME: OTP screen: six digit boxes, resend countdown, and verify submission
// ABOUTME: Owns one otp.Entry and one Countdown; Close stops the countdown when the screen goes away

package otpview

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/onestepgreener/greener-cli/internal/otp"
	"github.com/onestepgreener/greener-cli/internal/tui/icons"
	"github.com/onestepgreener/greener-cli/internal/tui/styles"
)

// VerifyMsg asks for Code to be verified for Mobile
type VerifyMsg struct {
	Mobile string
	Code   string
}

// ResendMsg asks for a new code to be sent to Mobile
type ResendMsg struct {
	Mobile string
}

// TickMsg carries one countdown step
type TickMsg struct {
	countdown *otp.Countdown
	remaining int
	ok        bool
}

// Model is the OTP screen
type Model struct {
	entry     *otp.Entry
	countdown *otp.Countdown
	interval  time.Duration
}

// New creates the screen for mobile with a one second countdown
func New(mobile string) *Model {
	return NewWithInterval(mobile, time.Second)
}

// NewWithInterval creates the screen with a custom tick interval
func NewWithInterval(mobile string, interval time.Duration) *Model {
	return &Model{entry: otp.NewEntry(mobile), interval: interval}
}

// Entry exposes the entry state
func (m *Model) Entry() *otp.Entry { return m.entry }

// Init starts the countdown
func (m *Model) Init() tea.Cmd {
	return m.restartCountdown()
}

// Close stops the countdown. Safe to call more than once.
func (m *Model) Close() {
	if m.countdown != nil {
		m.countdown.Stop()
	}
}

func (m *Model) restartCountdown() tea.Cmd {
	m.Close()
	m.countdown = otp.StartCountdown(m.entry.Remaining(), m.interval)
	return wait(m.countdown)
}

func wait(cd *otp.Countdown) tea.Cmd {
	return func() tea.Msg {
		v, ok := <-cd.C
		return TickMsg{countdown: cd, remaining: v, ok: ok}
	}
}

// VerifyFailed clears the boxes after a rejected code
func (m *Model) VerifyFailed() { m.entry.VerifyFailed() }

// Resolve ends the flow and stops the countdown
func (m *Model) Resolve() {
	m.entry.Resolve()
	m.Close()
}

// ResendDone ends the in-flight resend
func (m *Model) ResendDone() { m.entry.ResendDone() }

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if msg.countdown != m.countdown || !msg.ok {
			return m, nil
		}
		if m.entry.Tick() {
			return m, wait(m.countdown)
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		m.entry.Backspace()
		return nil
	case tea.KeyLeft:
		m.entry.SetFocus(m.entry.Focus() - 1)
		return nil
	case tea.KeyRight:
		m.entry.SetFocus(m.entry.Focus() + 1)
		return nil
	case tea.KeyEnter:
		code, ok := m.entry.BeginVerify()
		if !ok {
			return nil
		}
		mobile := m.entry.Mobile()
		return func() tea.Msg { return VerifyMsg{Mobile: mobile, Code: code} }
	case tea.KeyRunes:
		s := string(msg.Runes)
		if s == "r" || s == "R" {
			return m.resend()
		}
		m.entry.Type(s)
	}
	return nil
}

func (m *Model) resend() tea.Cmd {
	if !m.entry.CanResend() || !m.entry.BeginResend() {
		return nil
	}
	mobile := m.entry.Mobile()
	return tea.Batch(
		m.restartCountdown(),
		func() tea.Msg { return ResendMsg{Mobile: mobile} },
	)
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Phone.String() + " Verify OTP"))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("Enter the 6-digit code sent to +91 " + m.entry.Mobile()))
	sb.WriteString("\n")

	boxes := make([]string, otp.Length)
	digits := m.entry.Digits()
	for i, d := range digits {
		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.Muted).
			Width(3).
			Align(lipgloss.Center)
		if i == m.entry.Focus() && m.entry.State() != otp.Resolved {
			style = style.BorderForeground(styles.Primary)
		}
		if d == "" {
			d = " "
		}
		boxes[i] = style.Render(d)
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	sb.WriteString("\n\n")

	switch {
	case m.entry.Verifying():
		sb.WriteString("Verifying...")
	case m.entry.CanSubmit():
		sb.WriteString(styles.FocusedButton.Render("Verify"))
	default:
		sb.WriteString(styles.DisabledButton.Render("Verify"))
	}
	sb.WriteString("\n\n")

	switch {
	case m.entry.Resending():
		sb.WriteString(styles.Help.Render("Sending a new code..."))
	case m.entry.CanResend():
		sb.WriteString(styles.KeyStyle.Render("r") + " Resend OTP")
	default:
		sb.WriteString(styles.Help.Render(fmt.Sprintf("Resend OTP in %s", clock(m.entry.Remaining()))))
	}
	return sb.String()
}

// clock formats seconds as mm:ss
func clock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
