// ABOUTME: Screen enum for the session-gated navigator
// ABOUTME: Exactly one screen is current at any time

package nav

// Screen identifies the visible screen
type Screen int

const (
	ScreenSplash Screen = iota
	ScreenOnboarding
	ScreenSignup
	ScreenLogin
	ScreenOTP
	ScreenDashboard
	ScreenProfile
	ScreenEditProfile
	ScreenNotifications
	ScreenFAQ
	ScreenPickupHistory
	ScreenGift
	ScreenCart
	ScreenHelp
)

// AllScreens lists every screen in declaration order
var AllScreens = []Screen{
	ScreenSplash,
	ScreenOnboarding,
	ScreenSignup,
	ScreenLogin,
	ScreenOTP,
	ScreenDashboard,
	ScreenProfile,
	ScreenEditProfile,
	ScreenNotifications,
	ScreenFAQ,
	ScreenPickupHistory,
	ScreenGift,
	ScreenCart,
	ScreenHelp,
}

// LateralScreens are reachable from one another and from the bottom bar
var LateralScreens = []Screen{
	ScreenDashboard,
	ScreenProfile,
	ScreenNotifications,
	ScreenPickupHistory,
	ScreenFAQ,
	ScreenGift,
	ScreenCart,
}

func (s Screen) String() string {
	switch s {
	case ScreenSplash:
		return "Splash"
	case ScreenOnboarding:
		return "Onboarding"
	case ScreenSignup:
		return "Signup"
	case ScreenLogin:
		return "Login"
	case ScreenOTP:
		return "OTP"
	case ScreenDashboard:
		return "Dashboard"
	case ScreenProfile:
		return "Profile"
	case ScreenEditProfile:
		return "EditProfile"
	case ScreenNotifications:
		return "Notifications"
	case ScreenFAQ:
		return "FAQ"
	case ScreenPickupHistory:
		return "PickupHistory"
	case ScreenGift:
		return "Gift"
	case ScreenCart:
		return "Cart"
	case ScreenHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// Authenticated reports whether the screen requires a session
func (s Screen) Authenticated() bool {
	return s >= ScreenDashboard && s <= ScreenHelp
}

// Lateral reports whether s belongs to LateralScreens
func (s Screen) Lateral() bool {
	for _, l := range LateralScreens {
		if l == s {
			return true
		}
	}
	return false
}
