// ABOUTME: Scenario tests for boot, login, profile edit and logout flows
// ABOUTME: Uses a real session store over memory storage with a fixed clock

package nav

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/onestepgreener/greener-cli/internal/client"
	"github.com/onestepgreener/greener-cli/internal/session"
	"github.com/onestepgreener/greener-cli/internal/storage"
)

type fakeRemote struct {
	logoutErr   error
	logoutCalls int
	logoutToken string
	registered  []string
}

func (r *fakeRemote) Logout(_ context.Context, _ client.CustomerID, token string) error {
	r.logoutCalls++
	r.logoutToken = token
	return r.logoutErr
}

func (r *fakeRemote) RegisterDevice(_ context.Context, id client.CustomerID, token, platform string) error {
	r.registered = append(r.registered, id.String()+":"+token+":"+platform)
	return nil
}

type fixture struct {
	ctx    context.Context
	now    time.Time
	kv     *storage.MemoryStore
	store  *session.Store
	remote *fakeRemote
	flow   *Flow
	nav    *Navigator
}

func newFixture(opts ...FlowOption) *fixture {
	f := &fixture{
		ctx:    context.Background(),
		now:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		kv:     storage.NewMemoryStore(),
		remote: &fakeRemote{},
		nav:    New(),
	}
	f.store = session.New(f.kv, session.WithClock(func() time.Time { return f.now }))
	f.flow = NewFlow(f.store, f.remote, opts...)
	return f
}

// seed stores a session that expires at expiresAt
func (f *fixture) seed(t *testing.T, expiresAt time.Time) {
	t.Helper()
	if !f.store.Create(f.ctx, asha) {
		t.Fatal("seed Create failed")
	}
	if !f.store.Update(f.ctx, session.Patch{ExpiresAt: &expiresAt}) {
		t.Fatal("seed Update failed")
	}
}

func (f *fixture) dispatch(t *testing.T, i Intent) {
	t.Helper()
	if err := f.nav.Dispatch(i); err != nil {
		t.Fatalf("Dispatch(%T): %v", i, err)
	}
}

func TestBoot_FreshInstall(t *testing.T) {
	f := newFixture()

	if f.nav.Current() != ScreenSplash {
		t.Fatalf("expected Splash while booting")
	}
	f.dispatch(t, f.flow.Boot(f.ctx))

	if f.nav.Current() != ScreenOnboarding {
		t.Errorf("expected Onboarding, got %s", f.nav.Current())
	}
}

func TestBoot_ValidSession(t *testing.T) {
	f := newFixture()
	f.seed(t, f.now.Add(10*24*time.Hour))

	f.dispatch(t, f.flow.Boot(f.ctx))

	if f.nav.Current() != ScreenDashboard {
		t.Fatalf("expected Dashboard, got %s", f.nav.Current())
	}
	if f.nav.Profile().CustomerID != asha.CustomerID {
		t.Errorf("profile customer = %q, want %q", f.nav.Profile().CustomerID, asha.CustomerID)
	}
}

func TestBoot_ExpiredSession(t *testing.T) {
	f := newFixture()
	f.seed(t, f.now.Add(-24*time.Hour))

	f.dispatch(t, f.flow.Boot(f.ctx))

	if f.nav.Current() != ScreenOnboarding {
		t.Errorf("expected Onboarding, got %s", f.nav.Current())
	}
	if f.nav.Profile() != DefaultProfile() {
		t.Errorf("expected default profile, got %+v", f.nav.Profile())
	}
	if f.kv.Len() != 0 {
		t.Error("expected expired session cleared")
	}
}

type panickingSessions struct{ Sessions }

func (panickingSessions) Get(context.Context) *session.Session { panic("storage exploded") }

func TestBoot_FailureMeansNoSession(t *testing.T) {
	flow := NewFlow(panickingSessions{}, &fakeRemote{})
	intent := flow.Boot(context.Background())

	br, ok := intent.(BootResolved)
	if !ok || br.Session != nil {
		t.Errorf("expected empty BootResolved, got %#v", intent)
	}
}

func TestRegisterDevice(t *testing.T) {
	f := newFixture()
	f.flow.RegisterDevice(f.ctx, "42")
	if len(f.remote.registered) != 0 {
		t.Error("no registration without a device token")
	}

	f = newFixture(WithDevice("tok", "linux"))
	f.flow.RegisterDevice(f.ctx, "42")
	if len(f.remote.registered) != 1 || f.remote.registered[0] != "42:tok:linux" {
		t.Errorf("unexpected registrations %v", f.remote.registered)
	}
}

func TestAcceptOTP_CreatesSession(t *testing.T) {
	f := newFixture()
	f.dispatch(t, f.flow.Boot(f.ctx))
	f.dispatch(t, Goto{Screen: ScreenLogin})
	f.dispatch(t, OTPRequested{Mobile: asha.MobileNumber})

	f.dispatch(t, f.flow.AcceptOTP(f.ctx, asha))

	if f.nav.Current() != ScreenDashboard {
		t.Errorf("expected Dashboard, got %s", f.nav.Current())
	}
	sess := f.store.Get(f.ctx)
	if sess == nil || sess.CustomerID != "42" {
		t.Fatalf("expected stored session, got %+v", sess)
	}
}

func TestAcceptOTP_WithoutCustomerID(t *testing.T) {
	f := newFixture()
	f.dispatch(t, f.flow.Boot(f.ctx))
	f.dispatch(t, Goto{Screen: ScreenLogin})
	f.dispatch(t, OTPRequested{Mobile: asha.MobileNumber})

	intent := f.flow.AcceptOTP(f.ctx, client.Customer{MobileNumber: asha.MobileNumber})

	if f.nav.Can(intent) {
		t.Error("navigator should refuse a customer without an id")
	}
	if f.store.Get(f.ctx) != nil {
		t.Error("no session should be stored without a customer id")
	}
	if f.nav.Current() != ScreenOTP {
		t.Errorf("expected to stay on OTP, got %s", f.nav.Current())
	}
}

func TestApplyProfileUpdate(t *testing.T) {
	f := newFixture()
	f.seed(t, f.now.Add(2*24*time.Hour))
	f.dispatch(t, f.flow.Boot(f.ctx))
	f.dispatch(t, Goto{Screen: ScreenProfile})
	f.dispatch(t, Goto{Screen: ScreenEditProfile})

	updated := client.Customer{CustomerID: "42", CustomerName: "Asha R", Address: "7 Hill Road"}
	f.dispatch(t, f.flow.ApplyProfileUpdate(f.ctx, updated))

	sess := f.store.Get(f.ctx)
	if sess.CustomerName != "Asha R" || sess.Address != "7 Hill Road" || sess.City != "Pune" {
		t.Errorf("unexpected session %+v", sess)
	}
	if !sess.ExpiresAt.Equal(f.now.Add(session.Duration)) {
		t.Errorf("expected refreshed expiry, got %v", sess.ExpiresAt)
	}
	if f.nav.Current() != ScreenProfile || f.nav.Profile().Username != "Asha R" {
		t.Errorf("unexpected nav state %s %+v", f.nav.Current(), f.nav.Profile())
	}
}

func TestLogout_ServerFailureStillClears(t *testing.T) {
	f := newFixture()
	f.remote.logoutErr = &client.NetworkError{Err: errors.New("connection refused")}
	f.seed(t, f.now.Add(10*24*time.Hour))
	token, _ := f.store.Token(f.ctx)

	f.dispatch(t, f.flow.Boot(f.ctx))
	f.dispatch(t, Goto{Screen: ScreenProfile})
	f.dispatch(t, f.flow.Logout(f.ctx, f.nav.Profile()))

	if f.remote.logoutCalls != 1 || f.remote.logoutToken != token {
		t.Errorf("expected one logout call with %q, got %d with %q", token, f.remote.logoutCalls, f.remote.logoutToken)
	}
	if f.kv.Len() != 0 {
		t.Error("expected local session cleared")
	}
	if f.nav.Current() != ScreenLogin {
		t.Errorf("expected Login, got %s", f.nav.Current())
	}
	if f.nav.Profile() != DefaultProfile() {
		t.Error("expected default profile after logout")
	}
}

func TestLogout_NoCustomerSkipsServer(t *testing.T) {
	f := newFixture()
	f.flow.Logout(f.ctx, DefaultProfile())
	if f.remote.logoutCalls != 0 {
		t.Error("logout without a customer must not call the server")
	}
}
