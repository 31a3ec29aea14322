// ABOUTME: Test to verify header/footer width alignment
// ABOUTME: Ensures frame renders at correct terminal width

package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/onestepgreener/greener-cli/internal/client"
)

func TestFrameAlignment(t *testing.T) {
	widths := []int{60, 80, 100, 120}

	for _, targetWidth := range widths {
		t.Run(fmt.Sprintf("width_%d", targetWidth), func(t *testing.T) {
			app := New(nil, nil, nil)

			model, _ := app.Update(tea.WindowSizeMsg{Width: targetWidth, Height: 30})
			app = model.(*App)

			view := app.View()
			lines := strings.Split(view, "\n")
			headerFound := false
			footerFound := false

			expectedWidth := targetWidth
			if expectedWidth < minTerminalWidth {
				expectedWidth = minTerminalWidth
			}

			for _, line := range lines {
				if strings.HasPrefix(line, "╭") {
					headerFound = true
					if w := lipgloss.Width(line); w != expectedWidth {
						t.Errorf("Header width mismatch at width %d: expected %d, got %d", targetWidth, expectedWidth, w)
					}
				}
				if idx := strings.Index(line, "╰"); idx >= 0 {
					footerFound = true
					if w := lipgloss.Width(line[idx:]); w != expectedWidth {
						t.Errorf("Footer width mismatch at width %d: expected %d, got %d", targetWidth, expectedWidth, w)
					}
				}
			}

			if !headerFound {
				t.Error("Header not found in output")
			}
			if !footerFound {
				t.Error("Footer not found in output")
			}
		})
	}
}

func TestDashboardFrameShowsBottomNav(t *testing.T) {
	h := loggedIn(t)
	view := h.app.View()

	for _, expected := range []string{"Home", "Gift", "Cart", "FAQ", "History", "Asha Rao"} {
		if !strings.Contains(view, expected) {
			t.Errorf("expected frame to contain %q", expected)
		}
	}
	lines := strings.Split(view, "\n")
	if !strings.HasPrefix(lines[0], "╭") {
		t.Error("header must be the first line")
	}
	if !strings.Contains(lines[len(lines)-1], "╰") {
		t.Error("footer must be the last line")
	}
}

func TestAlertReplacesContent(t *testing.T) {
	h := newHarness(t)
	h.boot()
	h.app.alert = loginFailure(&client.NetworkError{Err: errors.New("connection refused")})

	view := h.app.View()
	if !strings.Contains(view, "Network Error") {
		t.Error("expected dialog in view")
	}
	if strings.Contains(view, "Join The Green Movement") {
		t.Error("dialog must replace the screen content")
	}
	if !strings.Contains(view, "Enter Confirm") {
		t.Error("footer must show dialog keys")
	}
}
