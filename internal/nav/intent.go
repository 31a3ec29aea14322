// ABOUTME: Navigation intents screens send to the navigator
// ABOUTME: A closed set; the navigator decides whether each one is legal

package nav

import (
	"github.com/onestepgreener/greener-cli/internal/client"
	"github.com/onestepgreener/greener-cli/internal/session"
)

// Intent is a navigation request. Only types in this package implement it.
type Intent interface {
	intent()
}

// BootResolved ends the splash once the session lookup finishes; a nil
// Session means nobody is logged in.
type BootResolved struct {
	Session *session.Session
}

// Goto asks for a specific screen
type Goto struct {
	Screen Screen
}

// Back returns to the screen's parent
type Back struct{}

// OTPRequested moves from login to code entry for Mobile
type OTPRequested struct {
	Mobile string
}

// OTPAccepted enters the app after a verified code for an existing customer
type OTPAccepted struct {
	Customer client.Customer
}

// SignupRedirect sends a verified but unknown mobile number to signup
type SignupRedirect struct {
	Mobile string
}

// SignupCompleted returns to login after an account request is accepted
type SignupCompleted struct{}

// ProfileUpdated returns to the profile after a successful edit
type ProfileUpdated struct {
	Customer client.Customer
}

// LoggedOut ends the session and returns to login
type LoggedOut struct{}

func (BootResolved) intent()    {}
func (Goto) intent()            {}
func (Back) intent()            {}
func (OTPRequested) intent()    {}
func (OTPAccepted) intent()     {}
func (SignupRedirect) intent()  {}
func (SignupCompleted) intent() {}
func (ProfileUpdated) intent()  {}
func (LoggedOut) intent()       {}

// SignupSource records whether the signup mobile number came from a
// verified OTP, in which case it is locked.
type SignupSource struct {
	mobile  string
	fromOTP bool
}

// FreshSignup is a signup started by the user with an empty form
func FreshSignup() SignupSource {
	return SignupSource{}
}

// SignupFromOTP is a signup reached after verifying mobile
func SignupFromOTP(mobile string) SignupSource {
	return SignupSource{mobile: mobile, fromOTP: true}
}

func (s SignupSource) Mobile() string { return s.mobile }

// Locked reports whether the mobile field may not be edited
func (s SignupSource) Locked() bool { return s.fromOTP }
