// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: Provides consistent iconography across different terminal capabilities

package icons

import (
	"os"
	"strings"
	"sync"
)

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

// detectNerdFonts checks if Nerd Fonts should be used
func detectNerdFonts() bool {
	if env := os.Getenv("GREENER_NERD_FONTS"); env != "" {
		return env == "1" || strings.ToLower(env) == "true"
	}

	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")

	// Terminals that usually ship with a patched font
	nerdFontTerminals := []string{
		"iTerm.app",
		"alacritty",
		"WezTerm",
		"kitty",
		"ghostty",
	}

	for _, t := range nerdFontTerminals {
		if strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}

	return os.Getenv("NERD_FONTS") == "1"
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon represents an icon with Nerd Font and Unicode fallback variants
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

// Icon definitions - Nerd Font codepoints with Unicode fallbacks
var (
	// Application
	App = Icon{"󰌪", "❦"} // nf-md-leaf

	// Bottom navigation
	Home    = Icon{"󰋜", "⌂"} // nf-md-home
	Gift    = Icon{"󰹄", "✦"} // nf-md-gift
	Cart    = Icon{"󰄐", "⊞"} // nf-md-cart
	FAQ     = Icon{"󰘥", "?"} // nf-md-help_circle
	History = Icon{"󰥔", "◷"} // nf-md-clock_outline

	// Screens
	Bell    = Icon{"󰂚", "♪"} // nf-md-bell
	User    = Icon{"󰀄", "☺"} // nf-md-account
	Support = Icon{"󰋗", "☏"} // nf-md-help_circle_outline
	Edit    = Icon{"󰏫", "✎"} // nf-md-pencil
	Logout  = Icon{"󰍃", "⏻"} // nf-md-logout

	// Contact
	Phone = Icon{"󰏲", "☎"} // nf-md-phone
	Mail  = Icon{"󰇮", "✉"} // nf-md-email
	Chat  = Icon{"󰭹", "✆"} // nf-md-chat

	// Impact
	Recycle = Icon{"󰑌", "♻"} // nf-md-recycle
	Tree    = Icon{"󰐅", "♣"} // nf-md-pine_tree
	Water   = Icon{"󰖌", "≈"} // nf-md-water
	Leaf    = Icon{"󰌪", "❧"} // nf-md-leaf

	// Status indicators
	CheckOK  = Icon{"", "✓"} // nf-oct-check_circle
	Warning  = Icon{"", "⚠"} // nf-oct-alert
	Critical = Icon{"", "✗"} // nf-oct-x_circle
	Info     = Icon{"", "ℹ"} // nf-oct-info
)
