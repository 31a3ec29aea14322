// ABOUTME: Session side effects behind navigation: boot lookup, login, profile edit, logout
// ABOUTME: Each step performs its I/O and returns the intent to dispatch

package nav

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/onestepgreener/greener-cli/internal/client"
	"github.com/onestepgreener/greener-cli/internal/session"
)

// Sessions is the subset of session.Store the flows use
type Sessions interface {
	Get(ctx context.Context) *session.Session
	Create(ctx context.Context, customer client.Customer) bool
	Update(ctx context.Context, patch session.Patch) bool
	Refresh(ctx context.Context) bool
	Clear(ctx context.Context) bool
	Token(ctx context.Context) (string, bool)
}

// Remote is the subset of the API client the flows call
type Remote interface {
	Logout(ctx context.Context, customerID client.CustomerID, sessionToken string) error
	RegisterDevice(ctx context.Context, customerID client.CustomerID, deviceToken, platform string) error
}

// Flow runs the session steps around navigation
type Flow struct {
	sessions    Sessions
	remote      Remote
	deviceToken string
	platform    string
}

// FlowOption configures a Flow
type FlowOption func(*Flow)

// WithDevice enables device registration after a session is restored
func WithDevice(token, platform string) FlowOption {
	return func(f *Flow) {
		f.deviceToken = token
		f.platform = platform
	}
}

// NewFlow creates a Flow
func NewFlow(sessions Sessions, remote Remote, opts ...FlowOption) *Flow {
	f := &Flow{sessions: sessions, remote: remote}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Boot looks up the stored session. Any failure counts as no session.
func (f *Flow) Boot(ctx context.Context) (intent Intent) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Session check failed", "error", fmt.Sprint(r))
			intent = BootResolved{}
		}
	}()

	sess := f.sessions.Get(ctx)
	if sess == nil {
		slog.Info("No saved session")
		return BootResolved{}
	}

	slog.Info("Restoring saved session", "customer_id", sess.CustomerID)
	return BootResolved{Session: sess}
}

// RegisterDevice sends the configured device token for the customer.
// It is best-effort and does nothing without a device token.
func (f *Flow) RegisterDevice(ctx context.Context, customerID client.CustomerID) {
	if f.deviceToken == "" || customerID.IsZero() {
		return
	}
	if err := f.remote.RegisterDevice(ctx, customerID, f.deviceToken, f.platform); err != nil {
		slog.Warn("Device registration failed", "customer_id", customerID, "error", err)
		return
	}
	slog.Debug("Device registered", "customer_id", customerID, "platform", f.platform)
}

// AcceptOTP saves a session for a verified customer and enters the app.
// The customer must carry an id: without one nothing is saved and the
// navigator refuses the intent. When only the save fails, the failure is
// logged and the customer still gets in for this run.
func (f *Flow) AcceptOTP(ctx context.Context, customer client.Customer) Intent {
	if !f.sessions.Create(ctx, customer) {
		slog.Warn("Session not saved; login will not survive a restart", "customer_id", customer.CustomerID)
	}
	return OTPAccepted{Customer: customer}
}

// ApplyProfileUpdate writes an edited profile into the session and
// extends it.
func (f *Flow) ApplyProfileUpdate(ctx context.Context, customer client.Customer) Intent {
	patch := session.Patch{}
	if name := customer.DisplayName(); name != "" {
		patch.CustomerName = &name
	}
	if customer.Email != "" {
		patch.Email = &customer.Email
	}
	if customer.Address != "" {
		patch.Address = &customer.Address
	}
	if customer.City != "" {
		patch.City = &customer.City
	}
	if customer.State != "" {
		patch.State = &customer.State
	}

	if f.sessions.Update(ctx, patch) {
		f.sessions.Refresh(ctx)
	} else {
		slog.Warn("No session to update after profile edit", "customer_id", customer.CustomerID)
	}
	return ProfileUpdated{Customer: customer}
}

// Logout tells the backend, then clears the local session whatever the
// backend said.
func (f *Flow) Logout(ctx context.Context, profile ProfileData) Intent {
	if profile.LoggedIn() {
		token, _ := f.sessions.Token(ctx)
		if err := f.remote.Logout(ctx, profile.CustomerID, token); err != nil {
			slog.Warn("Logout API call failed, continuing", "customer_id", profile.CustomerID, "error", err)
		}
	}

	if !f.sessions.Clear(ctx) {
		slog.Error("Failed to clear session on logout")
	}
	return LoggedOut{}
}
