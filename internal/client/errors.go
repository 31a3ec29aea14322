// ABOUTME: Error types returned by the customer API client
// ABOUTME: Separates transport failures from server-reported business errors

package client

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCodeMobileNotFound is sent when a mobile number has no account
const ErrorCodeMobileNotFound = "MOBILE_NOT_FOUND"

// NetworkErrorMessage is shown for transport failures and timeouts
const NetworkErrorMessage = "Unable to connect to server. Please check your internet connection and try again."

// NetworkError is a transport failure or a request that hit the timeout
type NetworkError struct {
	Timeout bool
	Err     error
}

func (e *NetworkError) Error() string {
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError is a structured error reported by the backend
type APIError struct {
	StatusCode       int
	Message          string
	ErrorCode        string
	RedirectToSignup bool
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return e.Message
}

// MobileNotRegistered reports the mobile number has no account yet
func (e *APIError) MobileNotRegistered() bool {
	return e.ErrorCode == ErrorCodeMobileNotFound || e.RedirectToSignup || e.contains("not registered")
}

// UnderConsideration reports the account exists but awaits approval
func (e *APIError) UnderConsideration() bool {
	return e.contains("under consideration")
}

func (e *APIError) OTPExpired() bool {
	return e.contains("expired")
}

func (e *APIError) OTPNotFound() bool {
	return e.contains("not found") && !e.MobileNotRegistered()
}

// AlreadyExists reports a signup for an existing mobile number or email
func (e *APIError) AlreadyExists() bool {
	return e.contains("already exists")
}

func (e *APIError) contains(s string) bool {
	return strings.Contains(strings.ToLower(e.Message), s)
}

// AsAPIError unwraps err to an *APIError
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNetworkError reports whether err is a transport failure or timeout
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// UserMessage converts err to the text shown in an alert
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if IsNetworkError(err) {
		return NetworkErrorMessage
	}
	if apiErr, ok := AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Something went wrong. Please try again."
}
