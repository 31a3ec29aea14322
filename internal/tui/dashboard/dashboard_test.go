// ABOUTME: Tests for dashboard screen
// ABOUTME: Validates greeting, profile stats, goals and shortcut navigation

package dashboard

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/onestepgreener/greener-cli/internal/client"
	"github.com/onestepgreener/greener-cli/internal/nav"
)

func TestDashboardView(t *testing.T) {
	profile := nav.ProfileFromCustomer(client.Customer{
		CustomerID:   "1001",
		CustomerName: "Asha Rao",
		MobileNumber: "9876543210",
	})
	d := New(profile, 120, 40)
	d.now = func() time.Time { return time.Date(2025, 9, 15, 9, 0, 0, 0, time.UTC) }

	view := d.View()

	for _, expected := range []string{
		"Good Morning",
		"Hi, Welcome Back Asha Rao",
		"156",
		"2.5T",
		"85%",
		"Our Goals",
		"1000 kgs",
		"500 kWh",
		"Recent Pickups",
		"Pickups #2",
		"Confirm Your Pickup",
		"15th Sep 2025, 10:30 AM",
		"AR",
	} {
		if !strings.Contains(view, expected) {
			t.Errorf("expected view to contain %q\nView:\n%s", expected, view)
		}
	}
}

func TestDashboardUnreadBadge(t *testing.T) {
	d := New(nav.DefaultProfile(), 120, 40)
	if strings.Contains(d.View(), "99+") {
		t.Fatal("no badge expected without unread notifications")
	}

	d.SetUnread(120)
	if !strings.Contains(d.View(), "99+") {
		t.Error("expected capped unread badge")
	}
}

func TestSetProfile(t *testing.T) {
	d := New(nav.DefaultProfile(), 120, 40)
	if !strings.Contains(d.View(), nav.DefaultUsername) {
		t.Fatal("expected default username")
	}

	d.SetProfile(nav.ProfileFromCustomer(client.Customer{CustomerID: "7", CustomerName: "Meera"}))
	if !strings.Contains(d.View(), "Meera") {
		t.Error("expected updated name")
	}
}

func TestGreeting(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "Good Morning"},
		{11, "Good Morning"},
		{12, "Good Afternoon"},
		{16, "Good Afternoon"},
		{17, "Good Evening"},
		{23, "Good Evening"},
	}
	for _, tc := range tests {
		if got := Greeting(tc.hour); got != tc.want {
			t.Errorf("Greeting(%d) = %q, want %q", tc.hour, got, tc.want)
		}
	}
}

func TestShortcuts(t *testing.T) {
	d := New(nav.DefaultProfile(), 80, 24)

	tests := []struct {
		key  string
		want nav.Screen
	}{
		{"p", nav.ScreenProfile},
		{"n", nav.ScreenNotifications},
	}
	for _, tc := range tests {
		_, cmd := d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tc.key)})
		if cmd == nil {
			t.Fatalf("expected command for %q", tc.key)
		}
		msg, ok := cmd().(nav.Goto)
		if !ok || msg.Screen != tc.want {
			t.Errorf("key %q: expected Goto %s, got %#v", tc.key, tc.want, msg)
		}
	}

	if _, cmd := d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}); cmd != nil {
		t.Error("unbound key must not produce a command")
	}
}

func TestPerRow(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{10, 1},
		{50, 2},
		{200, 3},
	}
	for _, tc := range tests {
		d := New(nav.DefaultProfile(), tc.width, 24)
		if got := d.perRow(24); got != tc.want {
			t.Errorf("width %d: expected %d per row, got %d", tc.width, tc.want, got)
		}
	}
}

func TestEfficiencyPercent(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"85%", 85},
		{" 42 % ", 0},
		{"42.5%", 42.5},
		{"", 0},
		{"n/a", 0},
	}
	for _, tc := range tests {
		if got := EfficiencyPercent(tc.in); got != tc.want {
			t.Errorf("EfficiencyPercent(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
