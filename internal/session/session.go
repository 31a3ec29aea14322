// ABOUTME: Persistent session store for the logged-in customer
// ABOUTME: Keeps a 30 day sliding session in local key-value storage and clears it on expiry

package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/onestepgreener/greener-cli/internal/client"
	"github.com/onestepgreener/greener-cli/internal/storage"
)

// Storage keys shared with earlier releases of the app
const (
	SessionKey = "@customer_session"
	TokenKey   = "@session_token"
)

// Duration is how long a session stays valid after creation or refresh
const Duration = 30 * 24 * time.Hour

// Session is the persisted record of an authenticated customer
type Session struct {
	Token        string            `json:"token"`
	CustomerID   client.CustomerID `json:"customerId"`
	CustomerName string            `json:"customerName"`
	Email        string            `json:"email"`
	MobileNumber string            `json:"mobileNumber"`
	Address      string            `json:"address"`
	City         string            `json:"city"`
	State        string            `json:"state"`
	UserType     string            `json:"userType"`
	Status       string            `json:"status"`
	CreatedAt    time.Time         `json:"createdAt"`
	ExpiresAt    time.Time         `json:"expiresAt"`
}

// Expired reports whether the session is no longer valid at now
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Patch lists the fields Update overwrites; nil fields are left alone
type Patch struct {
	CustomerName *string
	Email        *string
	MobileNumber *string
	Address      *string
	City         *string
	State        *string
	UserType     *string
	Status       *string
	CreatedAt    *time.Time
	ExpiresAt    *time.Time
}

func (p Patch) apply(s *Session) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&s.CustomerName, p.CustomerName)
	set(&s.Email, p.Email)
	set(&s.MobileNumber, p.MobileNumber)
	set(&s.Address, p.Address)
	set(&s.City, p.City)
	set(&s.State, p.State)
	set(&s.UserType, p.UserType)
	set(&s.Status, p.Status)
	if p.CreatedAt != nil {
		s.CreatedAt = *p.CreatedAt
	}
	if p.ExpiresAt != nil {
		s.ExpiresAt = *p.ExpiresAt
	}
}

// ExpirationInfo describes how long the stored session has left
type ExpirationInfo struct {
	CreatedAt      time.Time
	ExpiresAt      time.Time
	IsExpired      bool
	DaysRemaining  int
	HoursRemaining int
}

// Store manages the session in a storage.Store.
// Failures are logged and reported as false or nil, never returned.
type Store struct {
	kv  storage.Store
	now func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a session store over kv
func New(kv storage.Store, opts ...Option) *Store {
	s := &Store{kv: kv, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create writes a new session for customer. It returns false when the
// customer has no id or the write fails.
func (s *Store) Create(ctx context.Context, customer client.Customer) bool {
	if customer.CustomerID.IsZero() {
		slog.Warn("Cannot create session without customer id")
		return false
	}

	now := s.now()
	sess := &Session{
		Token:        fmt.Sprintf("session_%s_%d", customer.CustomerID, now.UnixMilli()),
		CustomerID:   customer.CustomerID,
		CustomerName: customer.DisplayName(),
		Email:        customer.Email,
		MobileNumber: customer.MobileNumber,
		Address:      customer.Address,
		City:         customer.City,
		State:        customer.State,
		UserType:     customer.UserType,
		Status:       customer.Status,
		CreatedAt:    now,
		ExpiresAt:    now.Add(Duration),
	}

	if err := s.write(ctx, sess); err != nil {
		slog.Error("Failed to create session", "customer_id", customer.CustomerID, "error", err)
		return false
	}
	if err := s.kv.Set(ctx, TokenKey, sess.Token); err != nil {
		slog.Error("Failed to store session token", "customer_id", customer.CustomerID, "error", err)
		if err := s.kv.Delete(ctx, SessionKey); err != nil {
			slog.Error("Failed to remove partial session", "error", err)
		}
		return false
	}

	slog.Info("Session created", "customer_id", customer.CustomerID, "expires_at", sess.ExpiresAt)
	return true
}

// Get returns the live session. An expired session is cleared and
// reported as absent.
func (s *Store) Get(ctx context.Context) *Session {
	sess, err := s.read(ctx)
	if err != nil {
		slog.Error("Failed to read session", "error", err)
		return nil
	}
	if sess == nil {
		return nil
	}

	if sess.Expired(s.now()) {
		slog.Info("Session expired", "customer_id", sess.CustomerID, "expired_at", sess.ExpiresAt)
		s.Clear(ctx)
		return nil
	}
	return sess
}

// Token returns the stored session token
func (s *Store) Token(ctx context.Context) (string, bool) {
	token, ok, err := s.kv.Get(ctx, TokenKey)
	if err != nil {
		slog.Error("Failed to read session token", "error", err)
		return "", false
	}
	return token, ok && token != ""
}

// Update merges patch into the live session
func (s *Store) Update(ctx context.Context, patch Patch) bool {
	sess := s.Get(ctx)
	if sess == nil {
		slog.Debug("No session to update")
		return false
	}

	patch.apply(sess)
	if err := s.write(ctx, sess); err != nil {
		slog.Error("Failed to update session", "customer_id", sess.CustomerID, "error", err)
		return false
	}
	return true
}

// Refresh extends the live session to Duration from now
func (s *Store) Refresh(ctx context.Context) bool {
	expiresAt := s.now().Add(Duration)
	return s.Update(ctx, Patch{ExpiresAt: &expiresAt})
}

// Clear removes the session and its token. Clearing an empty store succeeds.
func (s *Store) Clear(ctx context.Context) bool {
	if err := s.kv.Delete(ctx, SessionKey, TokenKey); err != nil {
		slog.Error("Failed to clear session", "error", err)
		return false
	}
	return true
}

func (s *Store) IsLoggedIn(ctx context.Context) bool {
	return s.Get(ctx) != nil
}

// ExpirationInfo reports the stored session's remaining lifetime without
// clearing it, expired or not.
func (s *Store) ExpirationInfo(ctx context.Context) *ExpirationInfo {
	sess, err := s.read(ctx)
	if err != nil {
		slog.Error("Failed to read session", "error", err)
		return nil
	}
	if sess == nil {
		return nil
	}

	remaining := sess.ExpiresAt.Sub(s.now())
	info := &ExpirationInfo{
		CreatedAt: sess.CreatedAt,
		ExpiresAt: sess.ExpiresAt,
		IsExpired: remaining <= 0,
	}
	if !info.IsExpired {
		info.DaysRemaining = int(math.Ceil(remaining.Hours() / 24))
		info.HoursRemaining = int(math.Ceil(remaining.Hours()))
	}
	return info
}

// read loads the stored blob; an unreadable blob counts as no session
func (s *Store) read(ctx context.Context) (*Session, error) {
	raw, ok, err := s.kv.Get(ctx, SessionKey)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		slog.Warn("Discarding unreadable session", "error", err)
		return nil, nil
	}
	if sess.CustomerID.IsZero() {
		return nil, nil
	}
	return &sess, nil
}

func (s *Store) write(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.kv.Set(ctx, SessionKey, string(data))
}
