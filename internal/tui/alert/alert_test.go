// ABOUTME: Tests for the modal alert dialog
// ABOUTME: Validates button focus and the message delivered on close

package alert

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type signupChosen struct{}

func press(a *Alert, key string) tea.Cmd {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	}
	_, cmd := a.Update(msg)
	return cmd
}

func chosen(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(ChosenMsg)
	if !ok {
		t.Fatalf("expected ChosenMsg, got %T", cmd())
	}
	return msg.Msg
}

func TestDefaultOKButton(t *testing.T) {
	a := New("Error", "Something failed")

	if got := a.Buttons(); len(got) != 1 || got[0] != "OK" {
		t.Errorf("expected single OK button, got %v", got)
	}
	if msg := chosen(t, press(a, "enter")); msg != nil {
		t.Errorf("plain dismiss should carry no message, got %T", msg)
	}
}

func TestFocusStartsOnLastButton(t *testing.T) {
	a := New("Not Registered", "Please sign up",
		Button{Label: "Cancel"},
		Button{Label: "Sign Up", Msg: signupChosen{}},
	)

	if a.Focused() != 1 {
		t.Errorf("expected focus on last button, got %d", a.Focused())
	}
	if _, ok := chosen(t, press(a, "enter")).(signupChosen); !ok {
		t.Error("enter should choose the focused Sign Up button")
	}
}

func TestArrowKeysMoveFocus(t *testing.T) {
	a := New("Logout", "Are you sure?",
		Button{Label: "Cancel"},
		Button{Label: "Logout", Msg: signupChosen{}},
	)

	press(a, "left")
	if a.Focused() != 0 {
		t.Fatalf("expected focus 0 after left, got %d", a.Focused())
	}
	press(a, "left")
	if a.Focused() != 0 {
		t.Errorf("focus should not move past the first button, got %d", a.Focused())
	}
	if msg := chosen(t, press(a, "enter")); msg != nil {
		t.Errorf("Cancel should carry no message, got %T", msg)
	}

	press(a, "right")
	press(a, "right")
	if a.Focused() != 1 {
		t.Errorf("focus should stop at last button, got %d", a.Focused())
	}
}

func TestEscChoosesCancel(t *testing.T) {
	a := New("Logout", "Are you sure?",
		Button{Label: "Cancel"},
		Button{Label: "Logout", Msg: signupChosen{}},
	)
	if msg := chosen(t, press(a, "esc")); msg != nil {
		t.Errorf("esc should choose Cancel, got %T", msg)
	}
}

func TestView(t *testing.T) {
	a := OK("OTP Generated", "Your OTP is: 123456", nil)
	view := a.View()
	for _, want := range []string{"OTP Generated", "123456", "OK"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q\n%s", want, view)
		}
	}
}
