// ABOUTME: Splash screen shown while the stored session is looked up
// ABOUTME: Only a logo and a spinner; the root model resolves boot

package pages

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/onestepgreener/greener-cli/internal/tui/icons"
	"github.com/onestepgreener/greener-cli/internal/tui/styles"
)

// Splash is the boot screen
type Splash struct {
	spinner spinner.Model
}

func NewSplash() *Splash {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.StatusOK
	return &Splash{spinner: sp}
}

func (s *Splash) Init() tea.Cmd {
	return s.spinner.Tick
}

func (s *Splash) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

func (s *Splash) View() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		styles.Title.Render(icons.App.String()+"  OneStepGreener"),
		"",
		s.spinner.View()+" Loading...",
	)
}
