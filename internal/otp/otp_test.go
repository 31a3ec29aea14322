// ABOUTME: Tests for OTP entry, outcome routing and the resend countdown
// ABOUTME: Drives Entry directly the way the OTP screen does

package otp

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/onestepgreener/greener-cli/internal/client"
)

func fill(e *Entry, code string) {
	for _, r := range code {
		e.Type(string(r))
	}
}

func TestInput_Sanitizes(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantDigit string
		wantFocus int
	}{
		{"digit", "7", "7", 1},
		{"letter discarded", "a", "", 0},
		{"symbol discarded", "-", "", 0},
		{"first digit of paste", "x42", "4", 1},
		{"non-ascii digit discarded", "٣", "", 0},
		{"empty clears", "", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEntry("9876543210")
			e.Input(0, tt.text)
			if got := e.Digits()[0]; got != tt.wantDigit {
				t.Errorf("slot 0 = %q, want %q", got, tt.wantDigit)
			}
			if e.Focus() != tt.wantFocus {
				t.Errorf("focus = %d, want %d", e.Focus(), tt.wantFocus)
			}
		})
	}
}

func TestSixthDigitEnablesSubmit(t *testing.T) {
	e := NewEntry("9876543210")

	fill(e, "12345")
	if e.CanSubmit() {
		t.Fatal("five digits must not allow submit")
	}
	if e.State() != Entering {
		t.Errorf("state = %s, want entering", e.State())
	}

	e.Type("6")
	if !e.CanSubmit() {
		t.Fatal("six digits should allow submit")
	}
	if e.State() != Complete {
		t.Errorf("state = %s, want complete", e.State())
	}
	if e.Focus() != Length-1 {
		t.Errorf("focus should stay on last slot, got %d", e.Focus())
	}
	if e.Code() != "123456" {
		t.Errorf("code = %q", e.Code())
	}
}

func TestBackspace(t *testing.T) {
	e := NewEntry("9876543210")
	fill(e, "123")

	// focus is on empty slot 3; backspace retreats and clears slot 2
	e.Backspace()
	if e.Focus() != 2 || e.Digits()[2] != "" {
		t.Errorf("focus=%d slot2=%q", e.Focus(), e.Digits()[2])
	}

	// slot 1 holds a digit once focused there; backspace clears in place
	e.SetFocus(1)
	e.Backspace()
	if e.Focus() != 1 || e.Digits()[1] != "" {
		t.Errorf("focus=%d slot1=%q", e.Focus(), e.Digits()[1])
	}

	e.SetFocus(0)
	e.Backspace()
	e.Backspace()
	if e.Focus() != 0 {
		t.Errorf("focus must not go below 0, got %d", e.Focus())
	}
}

func TestVerifyGuard(t *testing.T) {
	e := NewEntry("9876543210")
	if _, ok := e.BeginVerify(); ok {
		t.Fatal("empty entry must not verify")
	}

	fill(e, "123456")
	code, ok := e.BeginVerify()
	if !ok || code != "123456" {
		t.Fatalf("BeginVerify = %q, %v", code, ok)
	}
	if e.State() != Verifying {
		t.Errorf("state = %s, want verifying", e.State())
	}
	if _, ok := e.BeginVerify(); ok {
		t.Error("second submit while in flight must be refused")
	}

	e.Input(0, "9")
	if e.Digits()[0] != "1" {
		t.Error("input must be ignored while verifying")
	}
}

func TestVerifyFailedClearsAndRefocuses(t *testing.T) {
	e := NewEntry("9876543210")
	fill(e, "123456")
	e.BeginVerify()

	e.VerifyFailed()

	if e.Digits() != [Length]string{} {
		t.Errorf("expected all slots cleared, got %v", e.Digits())
	}
	if e.Focus() != 0 {
		t.Errorf("focus = %d, want 0", e.Focus())
	}
	if e.State() != Entering {
		t.Errorf("state = %s, want entering", e.State())
	}
}

func TestResolveIsTerminal(t *testing.T) {
	e := NewEntry("9876543210")
	fill(e, "123456")
	e.BeginVerify()
	e.Resolve()

	if e.State() != Resolved {
		t.Errorf("state = %s, want resolved", e.State())
	}
	if e.BeginResend() {
		t.Error("resend must be refused after resolve")
	}
}

func TestTimerAndResend(t *testing.T) {
	e := NewEntry("9876543210")
	if e.Remaining() != 60 {
		t.Fatalf("timer starts at %d, want 60", e.Remaining())
	}
	if e.CanResend() {
		t.Error("resend hidden while timer runs")
	}

	for i := 0; i < 59; i++ {
		if !e.Tick() {
			t.Fatalf("timer stopped early at tick %d", i)
		}
	}
	if e.Tick() {
		t.Error("timer should stop at zero")
	}
	if e.Tick(); e.Remaining() != 0 {
		t.Errorf("timer must not go negative, got %d", e.Remaining())
	}
	if !e.CanResend() {
		t.Fatal("resend available at zero")
	}

	fill(e, "123")
	if !e.BeginResend() {
		t.Fatal("BeginResend refused")
	}
	if e.Remaining() != 60 {
		t.Errorf("timer reset to %d, want 60", e.Remaining())
	}
	if e.Digits() != [Length]string{} {
		t.Error("resend must clear digits")
	}
	if e.HasRequestedOTP() {
		t.Error("code request outstanding during resend")
	}

	if e.BeginResend() {
		t.Error("resend must be inert while resending")
	}
	if e.CanResend() {
		t.Error("CanResend false while resending")
	}

	e.ResendDone()
	if e.Resending() || !e.HasRequestedOTP() {
		t.Error("ResendDone should clear the in-flight flag")
	}
}

func TestRoute(t *testing.T) {
	customer := &client.Customer{CustomerID: "42", CustomerName: "Asha"}

	tests := []struct {
		name string
		res  *client.VerifyResult
		want Outcome
	}{
		{
			name: "existing approved",
			res:  &client.VerifyResult{UserExists: true, UserApproved: true, Customer: customer},
			want: Accepted{Customer: client.Customer{CustomerID: "42", CustomerName: "Asha", MobileNumber: "9876543210"}},
		},
		{
			name: "existing unapproved",
			res:  &client.VerifyResult{UserExists: true, Customer: customer},
			want: Accepted{Customer: client.Customer{CustomerID: "42", CustomerName: "Asha", MobileNumber: "9876543210"}, PendingApproval: true},
		},
		{
			name: "new user",
			res:  &client.VerifyResult{},
			want: RedirectToSignup{Mobile: "9876543210"},
		},
		{
			name: "existing without customer",
			res:  &client.VerifyResult{UserExists: true, UserApproved: true},
			want: Incomplete{},
		},
		{
			name: "existing without customer id",
			res:  &client.VerifyResult{UserExists: true, UserApproved: true, Customer: &client.Customer{CustomerName: "Asha"}},
			want: Incomplete{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Route(tt.res, "9876543210"); got != tt.want {
				t.Errorf("Route = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestOutcomeAlert(t *testing.T) {
	if title, msg := OutcomeAlert(Incomplete{}, "Login successful"); title != TitleVerifyFailed || msg != MessageAccountUnavailable {
		t.Errorf("incomplete = %q/%q", title, msg)
	}
	title, msg := OutcomeAlert(Accepted{PendingApproval: true}, "ok")
	if title != TitleUnderConsideration || msg != MessageUnderConsideration {
		t.Errorf("pending = %q/%q", title, msg)
	}
	if _, msg := OutcomeAlert(Accepted{}, ""); msg != MessageLoginSuccess {
		t.Errorf("default success message = %q", msg)
	}
	if title, _ := OutcomeAlert(RedirectToSignup{}, ""); title != TitleNewUser {
		t.Errorf("redirect title = %q", title)
	}
}

func TestVerifyFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"network", &client.NetworkError{Err: errors.New("refused")}, client.NetworkErrorMessage},
		{"expired", &client.APIError{StatusCode: http.StatusBadRequest, Message: "OTP has expired. Please generate a new OTP."}, MessageOTPExpired},
		{"not found", &client.APIError{StatusCode: http.StatusNotFound, Message: "OTP not found. Please generate a new OTP."}, MessageOTPNotFound},
		{"server text", &client.APIError{Message: "OTP already used"}, "OTP already used"},
		{"no text", &client.APIError{StatusCode: http.StatusBadRequest}, MessageInvalidOTP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, got := VerifyFailure(tt.err); got != tt.want {
				t.Errorf("message = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResendFailure(t *testing.T) {
	_, msg := ResendFailure(&client.APIError{ErrorCode: client.ErrorCodeMobileNotFound, Message: "whatever"})
	if msg != MessageMobileNotFound {
		t.Errorf("mobile not found = %q", msg)
	}
	_, msg = ResendFailure(&client.APIError{Message: "Profile is Under Consideration"})
	if msg != MessageUnderConsideration {
		t.Errorf("under consideration = %q", msg)
	}
}

func TestCountdown_RunsToZero(t *testing.T) {
	c := StartCountdown(3, time.Millisecond)
	defer c.Stop()

	var got []int
	for v := range c.C {
		got = append(got, v)
	}
	if len(got) != 3 || got[0] != 2 || got[2] != 0 {
		t.Errorf("ticks = %v, want [2 1 0]", got)
	}
}

func TestCountdown_StopCancels(t *testing.T) {
	c := StartCountdown(60, time.Hour)
	c.Stop()
	c.Stop()

	select {
	case <-c.Done():
	default:
		t.Fatal("goroutine should have exited")
	}
	if _, ok := <-c.C; ok {
		t.Error("channel should be closed after Stop")
	}
}
