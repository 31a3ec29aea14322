// ABOUTME: Tests for the persistent session store
// ABOUTME: Covers creation, clear-on-expiry reads, partial updates and refresh

package session

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/onestepgreener/greener-cli/internal/client"
	"github.com/onestepgreener/greener-cli/internal/storage"
)

// fakeClock is a settable clock for expiry tests
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore() (*Store, *storage.MemoryStore, *fakeClock) {
	kv := storage.NewMemoryStore()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	return New(kv, WithClock(clock.Now)), kv, clock
}

var asha = client.Customer{
	CustomerID:   "42",
	CustomerName: "Asha Rao",
	Email:        "asha@example.com",
	MobileNumber: "9876543210",
	Address:      "12 Park Lane",
	City:         "Pune",
	State:        "MH",
	UserType:     "Office",
	Status:       "approved",
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	store, _, clock := newTestStore()

	if !store.Create(ctx, asha) {
		t.Fatal("expected Create to succeed")
	}

	sess := store.Get(ctx)
	if sess == nil {
		t.Fatal("expected session after Create")
	}
	if sess.CustomerID != "42" || sess.CustomerName != "Asha Rao" || sess.City != "Pune" {
		t.Errorf("unexpected session %+v", sess)
	}
	if !sess.CreatedAt.Equal(clock.Now()) {
		t.Errorf("CreatedAt = %v, want %v", sess.CreatedAt, clock.Now())
	}
	if !sess.ExpiresAt.Equal(clock.Now().Add(30 * 24 * time.Hour)) {
		t.Errorf("ExpiresAt = %v, want 30 days after creation", sess.ExpiresAt)
	}

	wantToken := "session_42_" + strconv.FormatInt(clock.Now().UnixMilli(), 10)
	if sess.Token != wantToken {
		t.Errorf("Token = %q, want %q", sess.Token, wantToken)
	}
	if token, ok := store.Token(ctx); !ok || token != wantToken {
		t.Errorf("Token() = %q, %v", token, ok)
	}
}

func TestCreate_FallsBackToUsername(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore()

	store.Create(ctx, client.Customer{CustomerID: "7", Username: "asha_r"})
	if sess := store.Get(ctx); sess == nil || sess.CustomerName != "asha_r" {
		t.Errorf("expected username fallback, got %+v", sess)
	}
}

func TestCreate_MissingCustomerIDWritesNothing(t *testing.T) {
	ctx := context.Background()
	store, kv, _ := newTestStore()

	for _, c := range []client.Customer{{}, {CustomerID: "  ", CustomerName: "x"}} {
		if store.Create(ctx, c) {
			t.Errorf("expected Create(%+v) to fail", c)
		}
	}
	if kv.Len() != 0 {
		t.Errorf("expected empty storage, found %d keys", kv.Len())
	}
}

func TestGet_ExpiryBoundary(t *testing.T) {
	tests := []struct {
		name    string
		advance time.Duration
		live    bool
	}{
		{"fresh", 0, true},
		{"one second before expiry", Duration - time.Second, true},
		{"exactly at expiry", Duration, false},
		{"a day after expiry", Duration + 24*time.Hour, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store, kv, clock := newTestStore()
			store.Create(ctx, asha)

			clock.Advance(tt.advance)
			sess := store.Get(ctx)

			if (sess != nil) != tt.live {
				t.Fatalf("Get() live = %v, want %v", sess != nil, tt.live)
			}
			if !tt.live {
				if kv.Len() != 0 {
					t.Errorf("expected expired session cleared, %d keys remain", kv.Len())
				}
				if store.IsLoggedIn(ctx) {
					t.Error("expected IsLoggedIn false after expiry")
				}
			}
		})
	}
}

func TestGet_CorruptBlobIsAbsent(t *testing.T) {
	ctx := context.Background()
	store, kv, _ := newTestStore()
	kv.Set(ctx, SessionKey, "{not json")

	if store.Get(ctx) != nil {
		t.Error("expected nil for corrupt session")
	}
}

func TestUpdate_ShallowMerge(t *testing.T) {
	ctx := context.Background()
	store, _, clock := newTestStore()
	store.Create(ctx, asha)
	before := store.Get(ctx)

	clock.Advance(time.Hour)
	name := "Asha R"
	city := ""
	if !store.Update(ctx, Patch{CustomerName: &name, City: &city}) {
		t.Fatal("expected Update to succeed")
	}

	after := store.Get(ctx)
	want := *before
	want.CustomerName = "Asha R"
	want.City = ""
	if !sessionsEqual(*after, want) {
		t.Errorf("after update = %+v\nwant %+v", after, want)
	}
}

func TestUpdate_ExplicitTimestamps(t *testing.T) {
	ctx := context.Background()
	store, _, clock := newTestStore()
	store.Create(ctx, asha)

	later := clock.Now().Add(90 * 24 * time.Hour)
	store.Update(ctx, Patch{ExpiresAt: &later})

	if sess := store.Get(ctx); !sess.ExpiresAt.Equal(later) {
		t.Errorf("ExpiresAt = %v, want %v", sess.ExpiresAt, later)
	}
}

func TestUpdate_NoSession(t *testing.T) {
	ctx := context.Background()
	store, kv, _ := newTestStore()

	name := "x"
	if store.Update(ctx, Patch{CustomerName: &name}) {
		t.Error("expected Update to fail without a session")
	}
	if kv.Len() != 0 {
		t.Error("Update must not write without a session")
	}
}

func TestRefresh_SlidesFromNow(t *testing.T) {
	ctx := context.Background()
	store, _, clock := newTestStore()
	store.Create(ctx, asha)
	created := clock.Now()

	clock.Advance(20 * 24 * time.Hour)
	if !store.Refresh(ctx) {
		t.Fatal("expected Refresh to succeed")
	}

	sess := store.Get(ctx)
	if !sess.ExpiresAt.Equal(clock.Now().Add(Duration)) {
		t.Errorf("ExpiresAt = %v, want now+30d", sess.ExpiresAt)
	}
	if !sess.CreatedAt.Equal(created) {
		t.Error("Refresh must not move CreatedAt")
	}

	clock.Advance(25 * 24 * time.Hour)
	if store.Get(ctx) == nil {
		t.Error("expected refreshed session still live")
	}
}

func TestClear_Idempotent(t *testing.T) {
	ctx := context.Background()
	store, kv, _ := newTestStore()
	store.Create(ctx, asha)

	if !store.Clear(ctx) || !store.Clear(ctx) {
		t.Error("expected Clear to succeed twice")
	}
	if kv.Len() != 0 {
		t.Errorf("expected no keys, got %d", kv.Len())
	}
	if _, ok := store.Token(ctx); ok {
		t.Error("expected token removed")
	}
}

func TestExpirationInfo(t *testing.T) {
	ctx := context.Background()
	store, kv, clock := newTestStore()

	if store.ExpirationInfo(ctx) != nil {
		t.Error("expected nil without session")
	}

	store.Create(ctx, asha)
	clock.Advance(28*24*time.Hour + 12*time.Hour)

	info := store.ExpirationInfo(ctx)
	if info == nil {
		t.Fatal("expected info")
	}
	if info.IsExpired {
		t.Error("expected not expired")
	}
	if info.DaysRemaining != 2 {
		t.Errorf("DaysRemaining = %d, want 2", info.DaysRemaining)
	}
	if info.HoursRemaining != 36 {
		t.Errorf("HoursRemaining = %d, want 36", info.HoursRemaining)
	}

	clock.Advance(3 * 24 * time.Hour)
	info = store.ExpirationInfo(ctx)
	if info == nil || !info.IsExpired || info.DaysRemaining != 0 {
		t.Errorf("expected expired info, got %+v", info)
	}
	if kv.Len() == 0 {
		t.Error("ExpirationInfo must not clear an expired session")
	}
}

// brokenStore fails every operation
type brokenStore struct{}

var errBroken = errors.New("disk on fire")

func (brokenStore) Get(context.Context, string) (string, bool, error) { return "", false, errBroken }
func (brokenStore) Set(context.Context, string, string) error         { return errBroken }
func (brokenStore) Delete(context.Context, ...string) error           { return errBroken }
func (brokenStore) Close() error                                      { return nil }

// tokenlessStore rejects writes of the session token
type tokenlessStore struct {
	*storage.MemoryStore
}

func (s tokenlessStore) Set(ctx context.Context, key, value string) error {
	if key == TokenKey {
		return errBroken
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func TestCreate_TokenWriteFailureLeavesNoSession(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	store := New(tokenlessStore{kv})

	if store.Create(ctx, asha) {
		t.Fatal("Create should report false when the token cannot be stored")
	}
	if _, ok, _ := kv.Get(ctx, SessionKey); ok {
		t.Error("session blob should be removed after a failed token write")
	}
	if store.Get(ctx) != nil {
		t.Error("Get should report no session")
	}
	if kv.Len() != 0 {
		t.Errorf("expected empty store, got %d keys", kv.Len())
	}
}

func TestStorageFailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	store := New(brokenStore{})

	if store.Create(ctx, asha) {
		t.Error("Create should report false")
	}
	if store.Get(ctx) != nil {
		t.Error("Get should report nil")
	}
	if _, ok := store.Token(ctx); ok {
		t.Error("Token should report absent")
	}
	if store.Refresh(ctx) {
		t.Error("Refresh should report false")
	}
	if store.Clear(ctx) {
		t.Error("Clear should report false")
	}
	if store.ExpirationInfo(ctx) != nil {
		t.Error("ExpirationInfo should report nil")
	}
}

func sessionsEqual(a, b Session) bool {
	return a.Token == b.Token &&
		a.CustomerID == b.CustomerID &&
		a.CustomerName == b.CustomerName &&
		a.Email == b.Email &&
		a.MobileNumber == b.MobileNumber &&
		a.Address == b.Address &&
		a.City == b.City &&
		a.State == b.State &&
		a.UserType == b.UserType &&
		a.Status == b.Status &&
		a.CreatedAt.Equal(b.CreatedAt) &&
		a.ExpiresAt.Equal(b.ExpiresAt)
}
