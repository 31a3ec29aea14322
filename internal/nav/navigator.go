// ABOUTME: Session-gated navigator owning the current screen and transition legality
// ABOUTME: Screens dispatch intents; illegal intents leave the state untouched

package nav

import (
	"errors"
	"fmt"
)

// ErrIllegalTransition is returned when the current screen may not issue an intent
var ErrIllegalTransition = errors.New("illegal transition")

// Navigator holds the current screen and the state carried between screens.
// It is not safe for concurrent use; the TUI mutates it only from Update.
type Navigator struct {
	current   Screen
	profile   ProfileData
	otpMobile string
	signup    SignupSource
}

// New starts on the splash screen with the default profile
func New() *Navigator {
	return &Navigator{
		current: ScreenSplash,
		profile: DefaultProfile(),
	}
}

func (n *Navigator) Current() Screen      { return n.current }
func (n *Navigator) Profile() ProfileData { return n.profile }

// OTPMobile is the number the OTP screen verifies
func (n *Navigator) OTPMobile() string { return n.otpMobile }

// SignupSource describes how the signup screen was reached
func (n *Navigator) SignupSource() SignupSource { return n.signup }

// Dispatch applies intent. It returns ErrIllegalTransition, and changes
// nothing, when the current screen may not issue it.
func (n *Navigator) Dispatch(intent Intent) error {
	next, ok := n.target(intent)
	if !ok {
		return fmt.Errorf("%w: %T from %s", ErrIllegalTransition, intent, n.current)
	}

	switch i := intent.(type) {
	case BootResolved:
		if i.Session != nil {
			n.profile = ProfileFromSession(i.Session)
		} else {
			n.profile = DefaultProfile()
		}
	case OTPRequested:
		n.otpMobile = i.Mobile
	case OTPAccepted:
		n.profile = ProfileFromCustomer(i.Customer)
		n.otpMobile = ""
	case SignupRedirect:
		n.signup = SignupFromOTP(i.Mobile)
		n.otpMobile = ""
	case ProfileUpdated:
		n.profile = n.profile.WithUpdate(i.Customer)
	case LoggedOut:
		n.profile = DefaultProfile()
		n.otpMobile = ""
		n.signup = FreshSignup()
	case Goto:
		if i.Screen == ScreenSignup {
			n.signup = FreshSignup()
		}
	case Back:
		if n.current == ScreenOTP {
			n.otpMobile = ""
		}
	}

	n.current = next
	return nil
}

// Can reports whether intent is legal from the current screen
func (n *Navigator) Can(intent Intent) bool {
	_, ok := n.target(intent)
	return ok
}

// target resolves the screen intent leads to from the current screen
func (n *Navigator) target(intent Intent) (Screen, bool) {
	cur := n.current

	switch i := intent.(type) {
	case BootResolved:
		if cur != ScreenSplash {
			return cur, false
		}
		if i.Session != nil {
			return ScreenDashboard, true
		}
		return ScreenOnboarding, true

	case Goto:
		return i.Screen, allowed(cur, i.Screen)

	case Back:
		parent, ok := parentOf(cur)
		return parent, ok

	case OTPRequested:
		return ScreenOTP, cur == ScreenLogin && i.Mobile != ""

	case OTPAccepted:
		return ScreenDashboard, cur == ScreenOTP && !i.Customer.CustomerID.IsZero()

	case SignupRedirect:
		return ScreenSignup, cur == ScreenOTP && i.Mobile != ""

	case SignupCompleted:
		return ScreenLogin, cur == ScreenSignup

	case ProfileUpdated:
		return ScreenProfile, cur == ScreenEditProfile

	case LoggedOut:
		return ScreenLogin, cur.Authenticated()
	}

	return cur, false
}

// allowed is the Goto table
func allowed(from, to Screen) bool {
	if from == to {
		return false
	}

	switch from {
	case ScreenOnboarding:
		return to == ScreenLogin || to == ScreenSignup
	case ScreenSignup:
		return to == ScreenLogin
	case ScreenLogin:
		return to == ScreenSignup
	case ScreenOTP:
		// re-enter mobile number
		return to == ScreenLogin
	case ScreenProfile:
		return to.Lateral() || to == ScreenEditProfile || to == ScreenHelp
	case ScreenFAQ:
		return to.Lateral() || to == ScreenHelp
	case ScreenEditProfile, ScreenHelp:
		return to.Lateral()
	}

	if from.Lateral() {
		return to.Lateral()
	}
	return false
}

// parentOf is where Back leads
func parentOf(s Screen) (Screen, bool) {
	switch s {
	case ScreenSignup, ScreenLogin:
		return ScreenOnboarding, true
	case ScreenOTP:
		return ScreenLogin, true
	case ScreenProfile, ScreenNotifications, ScreenFAQ, ScreenPickupHistory, ScreenGift, ScreenCart:
		return ScreenDashboard, true
	case ScreenEditProfile, ScreenHelp:
		return ScreenProfile, true
	default:
		return s, false
	}
}
