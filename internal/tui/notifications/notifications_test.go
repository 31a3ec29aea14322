// ABOUTME: Tests for the notifications screen
// ABOUTME: Validates list state, optimistic mark-read, clear and refresh

package notifications

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/onestepgreener/greener-cli/internal/client"
	"github.com/onestepgreener/greener-cli/internal/tui/alert"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sample() []client.Notification {
	return []client.Notification{
		{ID: 3, Title: "Pickup scheduled", Message: "Tomorrow 9-11 AM", Time: "2 hours ago", Priority: "high"},
		{ID: 2, Title: "Reward earned", Message: "50 green points", Time: "1 day ago", Priority: "medium"},
		{ID: 1, Title: "Milestone reached", Message: "2.5 tonnes", Time: "1 week ago", IsRead: true, Priority: "low"},
	}
}

func loaded() *Model {
	m := New(100)
	m.SetItems(sample())
	return m
}

func TestLoadingAndEmptyStates(t *testing.T) {
	m := New(100)
	if !m.Loading() || !strings.Contains(m.View(), "Loading notifications") {
		t.Fatal("new screen must be loading")
	}

	m.SetItems(nil)
	view := m.View()
	if m.Loading() || !strings.Contains(view, "No notifications") || !strings.Contains(view, "all caught up") {
		t.Errorf("expected empty state\n%s", view)
	}
}

func TestListView(t *testing.T) {
	m := loaded()
	view := m.View()
	for _, expected := range []string{"Pickup scheduled", "Tomorrow 9-11 AM", "2 hours ago", "Milestone reached"} {
		if !strings.Contains(view, expected) {
			t.Errorf("expected view to contain %q", expected)
		}
	}
	if m.Unread() != 2 {
		t.Errorf("expected 2 unread, got %d", m.Unread())
	}
}

func TestMarkOneRead(t *testing.T) {
	m := loaded()
	m.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected mark read command")
	}
	msg := cmd().(MarkReadMsg)
	if msg.ID == nil || *msg.ID != 2 {
		t.Errorf("expected id 2, got %v", msg.ID)
	}
	if !m.Items()[1].IsRead || m.Unread() != 1 {
		t.Error("expected the item marked read locally")
	}

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("marking a read notification again must do nothing")
	}
}

func TestMarkAllRead(t *testing.T) {
	m := loaded()

	_, cmd := m.Update(runes("a"))
	if cmd == nil {
		t.Fatal("expected mark all command")
	}
	if msg := cmd().(MarkReadMsg); msg.ID != nil {
		t.Errorf("mark all must send a nil id, got %d", *msg.ID)
	}
	if m.Unread() != 0 {
		t.Errorf("expected no unread, got %d", m.Unread())
	}

	if _, cmd := m.Update(runes("a")); cmd != nil {
		t.Error("mark all with nothing unread must do nothing")
	}
}

func TestClear(t *testing.T) {
	m := loaded()

	_, cmd := m.Update(runes("c"))
	if _, ok := cmd().(ClearRequestMsg); !ok {
		t.Fatal("expected clear request")
	}

	_, cmd = ConfirmClear().Update(tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := cmd().(alert.ChosenMsg).Msg.(ClearConfirmedMsg); !ok {
		t.Fatal("default button must confirm")
	}

	m.Clear()
	if len(m.Items()) != 0 || m.Cursor() != 0 {
		t.Error("expected empty list after clear")
	}
	if _, cmd := m.Update(runes("c")); cmd != nil {
		t.Error("clearing an empty list must do nothing")
	}
}

func TestRefresh(t *testing.T) {
	m := loaded()

	_, cmd := m.Update(runes("r"))
	if _, ok := cmd().(RefreshMsg); !ok {
		t.Fatal("expected refresh request")
	}
	if !m.Loading() {
		t.Error("expected loading during refresh")
	}
	if _, cmd := m.Update(runes("r")); cmd != nil {
		t.Error("refresh while loading must be ignored")
	}
	if !strings.Contains(m.View(), "Pickup scheduled") {
		t.Error("list must stay visible while refreshing")
	}

	m.SetError("Unable to connect")
	if m.Loading() || !strings.Contains(m.View(), "Unable to connect") {
		t.Error("expected error shown")
	}
	if len(m.Items()) != 3 {
		t.Error("failed refresh must keep the list")
	}
}

func TestCursorClampedOnShorterList(t *testing.T) {
	m := loaded()
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.Cursor() != 2 {
		t.Fatalf("expected cursor 2, got %d", m.Cursor())
	}

	m.SetItems(sample()[:1])
	if m.Cursor() != 0 {
		t.Errorf("expected cursor clamped to 0, got %d", m.Cursor())
	}
}
