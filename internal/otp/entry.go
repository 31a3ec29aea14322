// ABOUTME: Six digit OTP entry state with resend timer and submission guards
// ABOUTME: One Entry per OTP screen; owns focus, in-flight flags and countdown value

package otp

import (
	"strings"
)

// Length is the number of digits in a code
const Length = 6

// ResendSeconds is the countdown before a new code can be requested
const ResendSeconds = 60

// State is the position of an Entry in the verification flow
type State int

const (
	Entering State = iota
	Complete
	Verifying
	Resolved
)

func (s State) String() string {
	switch s {
	case Entering:
		return "entering"
	case Complete:
		return "complete"
	case Verifying:
		return "verifying"
	case Resolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Entry is the code entry state for one OTP screen
type Entry struct {
	mobile          string
	digits          [Length]string
	focus           int
	remaining       int
	verifying       bool
	resending       bool
	resolved        bool
	hasRequestedOTP bool
}

// NewEntry starts entry for a code already issued to mobile
func NewEntry(mobile string) *Entry {
	return &Entry{
		mobile:          mobile,
		remaining:       ResendSeconds,
		hasRequestedOTP: true,
	}
}

func (e *Entry) Mobile() string { return e.mobile }

// Digits returns a copy of the slots
func (e *Entry) Digits() [Length]string { return e.digits }

// Focus is the index of the focused slot
func (e *Entry) Focus() int { return e.focus }

// Remaining is the countdown value in seconds
func (e *Entry) Remaining() int { return e.remaining }

func (e *Entry) Verifying() bool { return e.verifying }
func (e *Entry) Resending() bool { return e.resending }

// HasRequestedOTP is false only while a resend is outstanding
func (e *Entry) HasRequestedOTP() bool { return e.hasRequestedOTP }

// Code joins the slots
func (e *Entry) Code() string {
	return strings.Join(e.digits[:], "")
}

// SetFocus moves focus to index if it is a valid slot
func (e *Entry) SetFocus(index int) {
	if index >= 0 && index < Length {
		e.focus = index
	}
}

// Input writes the first digit of text into slot index and advances focus.
// Text without a digit clears the slot and leaves focus where it is.
func (e *Entry) Input(index int, text string) {
	if e.locked() || index < 0 || index >= Length {
		return
	}

	digit := sanitize(text)
	e.digits[index] = digit
	e.focus = index
	if digit != "" && index < Length-1 {
		e.focus = index + 1
	}
}

// Type writes text into the focused slot
func (e *Entry) Type(text string) {
	e.Input(e.focus, text)
}

// Backspace clears the focused slot, or moves back and clears the
// previous slot when the focused one is already empty.
func (e *Entry) Backspace() {
	if e.locked() {
		return
	}
	if e.digits[e.focus] == "" && e.focus > 0 {
		e.focus--
	}
	e.digits[e.focus] = ""
}

// State derives the flow state from the slots and flags
func (e *Entry) State() State {
	switch {
	case e.resolved:
		return Resolved
	case e.verifying:
		return Verifying
	case e.filled() == Length:
		return Complete
	default:
		return Entering
	}
}

// CanSubmit requires all six digits and no verification in flight
func (e *Entry) CanSubmit() bool {
	return e.State() == Complete
}

// BeginVerify marks a verification in flight and returns the code.
// It returns false when submission is not allowed.
func (e *Entry) BeginVerify() (string, bool) {
	if !e.CanSubmit() {
		return "", false
	}
	e.verifying = true
	return e.Code(), true
}

// VerifyFailed ends the in-flight verification, clears every slot and
// returns focus to the first one.
func (e *Entry) VerifyFailed() {
	e.verifying = false
	e.clear()
}

// Resolve ends the flow; the screen navigates away
func (e *Entry) Resolve() {
	e.verifying = false
	e.resolved = true
}

// Tick advances the countdown by one second and reports whether it is still running
func (e *Entry) Tick() bool {
	if e.remaining > 0 {
		e.remaining--
	}
	return e.remaining > 0
}

// CanResend is true once the countdown has reached zero and no resend is in flight
func (e *Entry) CanResend() bool {
	return e.remaining == 0 && !e.resending && !e.resolved
}

// BeginResend clears the slots and restarts the countdown. It is inert
// while a resend is already in flight.
func (e *Entry) BeginResend() bool {
	if e.resending || e.resolved {
		return false
	}
	e.resending = true
	e.hasRequestedOTP = false
	e.remaining = ResendSeconds
	e.clear()
	return true
}

// ResendDone ends the in-flight resend
func (e *Entry) ResendDone() {
	e.resending = false
	e.hasRequestedOTP = true
}

func (e *Entry) locked() bool {
	return e.verifying || e.resolved
}

func (e *Entry) clear() {
	e.digits = [Length]string{}
	e.focus = 0
}

func (e *Entry) filled() int {
	n := 0
	for _, d := range e.digits {
		if d != "" {
			n++
		}
	}
	return n
}

// sanitize keeps the first ASCII digit of text
func sanitize(text string) string {
	for _, r := range text {
		if r >= '0' && r <= '9' {
			return string(r)
		}
	}
	return ""
}
