// ABOUTME: Maps verify-otp results and failures to outcomes and user-facing messages
// ABOUTME: Accepted hands the customer on, RedirectToSignup hands the mobile number on

package otp

import (
	"github.com/onestepgreener/greener-cli/internal/client"
)

// Outcome is the terminal result of a successful verification
type Outcome interface {
	outcome()
}

// Accepted means the customer exists; PendingApproval is set when the
// account has not been approved yet.
type Accepted struct {
	Customer        client.Customer
	PendingApproval bool
}

// RedirectToSignup means the mobile number has no account
type RedirectToSignup struct {
	Mobile string
}

// Incomplete means the backend reported an existing user without a
// customer id. Nothing can be saved, so the code counts as not verified.
type Incomplete struct{}

func (Accepted) outcome()         {}
func (RedirectToSignup) outcome() {}
func (Incomplete) outcome()       {}

// Route decides where a verified code leads
func Route(res *client.VerifyResult, mobile string) Outcome {
	if res == nil || !res.UserExists {
		return RedirectToSignup{Mobile: mobile}
	}

	if res.Customer == nil || res.Customer.CustomerID.IsZero() {
		return Incomplete{}
	}

	accepted := Accepted{PendingApproval: !res.UserApproved, Customer: *res.Customer}
	if accepted.Customer.MobileNumber == "" {
		accepted.Customer.MobileNumber = mobile
	}
	return accepted
}

// Alert titles and messages shown for each outcome
const (
	TitleSuccess            = "Success"
	TitleUnderConsideration = "Profile Under Consideration"
	TitleNewUser            = "New User"
	TitleVerifyFailed       = "Verification Failed"
	TitleNetworkError       = "Network Error"

	MessageLoginSuccess       = "Login successful!"
	MessageUnderConsideration = "Your profile is under consideration. Please wait for approval."
	MessageNewUser            = "Mobile number not registered. Please sign up to continue."
	MessageOTPExpired         = "OTP has expired. Please request a new one."
	MessageOTPNotFound        = "OTP not found. Please request a new OTP."
	MessageInvalidOTP         = "Invalid OTP. Please try again."
	MessageMobileNotFound     = "Mobile number not registered. Please sign up first."
	MessageResendFailed       = "Failed to resend OTP. Please try again."
	MessageResent             = "New OTP sent successfully to your mobile number"
	MessageAccountUnavailable = "We could not load your account. Please try again."
)

// OutcomeAlert returns the title and message acknowledging an outcome
func OutcomeAlert(o Outcome, serverMessage string) (string, string) {
	switch o := o.(type) {
	case Accepted:
		if o.PendingApproval {
			return TitleUnderConsideration, MessageUnderConsideration
		}
		if serverMessage != "" {
			return TitleSuccess, serverMessage
		}
		return TitleSuccess, MessageLoginSuccess
	case RedirectToSignup:
		return TitleNewUser, MessageNewUser
	case Incomplete:
		return TitleVerifyFailed, MessageAccountUnavailable
	default:
		return TitleSuccess, serverMessage
	}
}

// VerifyFailure returns the title and message for a failed verification
func VerifyFailure(err error) (string, string) {
	if client.IsNetworkError(err) {
		return TitleNetworkError, client.NetworkErrorMessage
	}

	apiErr, ok := client.AsAPIError(err)
	if !ok {
		return TitleVerifyFailed, MessageInvalidOTP
	}
	switch {
	case apiErr.OTPExpired():
		return TitleVerifyFailed, MessageOTPExpired
	case apiErr.OTPNotFound():
		return TitleVerifyFailed, MessageOTPNotFound
	case apiErr.Message != "":
		return TitleVerifyFailed, apiErr.Message
	default:
		return TitleVerifyFailed, MessageInvalidOTP
	}
}

// ResendFailure returns the title and message for a failed resend
func ResendFailure(err error) (string, string) {
	if client.IsNetworkError(err) {
		return TitleNetworkError, client.NetworkErrorMessage
	}

	apiErr, ok := client.AsAPIError(err)
	if !ok {
		return "Error", MessageResendFailed
	}
	switch {
	case apiErr.MobileNotRegistered():
		return "Error", MessageMobileNotFound
	case apiErr.UnderConsideration():
		return "Error", MessageUnderConsideration
	case apiErr.Message != "":
		return "Error", apiErr.Message
	default:
		return "Error", MessageResendFailed
	}
}
