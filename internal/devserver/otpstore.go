// ABOUTME: Storage for issued OTPs keyed by mobile number
// ABOUTME: In-memory TTL store by default, Redis when an address is configured

package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/onestepgreener/greener-cli/internal/client"
)

// retention keeps records past expiry so verify can tell "expired" from "not found"
const retention = 10 * time.Minute

// OTPRecord is one issued code
type OTPRecord struct {
	Code       string            `json:"code"`
	ExpiresAt  time.Time         `json:"expiresAt"`
	UserExists bool              `json:"userExists"`
	CustomerID client.CustomerID `json:"customerId,omitempty"`
	Status     string            `json:"status,omitempty"`
}

// OTPStore holds the latest code per mobile number
type OTPStore interface {
	Put(ctx context.Context, mobile string, rec OTPRecord) error
	// Get returns nil without error when nothing is stored
	Get(ctx context.Context, mobile string) (*OTPRecord, error)
	Delete(ctx context.Context, mobile string) error
	Close() error
}

type memoryEntry struct {
	rec     OTPRecord
	evictAt time.Time
}

// MemoryOTPStore is a sync.Map with periodic cleanup of stale records
type MemoryOTPStore struct {
	store sync.Map
	now   func() time.Time
	stop  chan struct{}
	once  sync.Once
}

// NewMemoryOTPStore starts a store that sweeps stale records every interval
func NewMemoryOTPStore(interval time.Duration) *MemoryOTPStore {
	m := &MemoryOTPStore{now: time.Now, stop: make(chan struct{})}
	go m.startCleanup(interval)
	return m
}

func (m *MemoryOTPStore) Put(_ context.Context, mobile string, rec OTPRecord) error {
	m.store.Store(mobile, memoryEntry{rec: rec, evictAt: rec.ExpiresAt.Add(retention)})
	slog.Debug("OTP stored", "mobile", mobile, "expires_at", rec.ExpiresAt)
	return nil
}

func (m *MemoryOTPStore) Get(_ context.Context, mobile string) (*OTPRecord, error) {
	val, ok := m.store.Load(mobile)
	if !ok {
		return nil, nil
	}
	e := val.(memoryEntry)
	if m.now().After(e.evictAt) {
		m.store.Delete(mobile)
		return nil, nil
	}
	rec := e.rec
	return &rec, nil
}

func (m *MemoryOTPStore) Delete(_ context.Context, mobile string) error {
	m.store.Delete(mobile)
	return nil
}

// Close stops the cleanup goroutine
func (m *MemoryOTPStore) Close() error {
	m.once.Do(func() { close(m.stop) })
	return nil
}

func (m *MemoryOTPStore) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
		}
		now := m.now()
		m.store.Range(func(key, val interface{}) bool {
			if now.After(val.(memoryEntry).evictAt) {
				m.store.Delete(key)
			}
			return true
		})
	}
}

// RedisOTPStore keeps codes in Redis under otp:<mobile>
type RedisOTPStore struct {
	client redis.UniversalClient
}

// NewRedisOTPStore connects to addr and checks the connection
func NewRedisOTPStore(ctx context.Context, addr, password string) (*RedisOTPStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &RedisOTPStore{client: rdb}, nil
}

func otpKey(mobile string) string {
	return "otp:" + mobile
}

func (r *RedisOTPStore) Put(ctx context.Context, mobile string, rec OTPRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	ttl := time.Until(rec.ExpiresAt) + retention
	return r.client.Set(ctx, otpKey(mobile), data, ttl).Err()
}

func (r *RedisOTPStore) Get(ctx context.Context, mobile string) (*OTPRecord, error) {
	raw, err := r.client.Get(ctx, otpKey(mobile)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rec OTPRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("corrupt otp record for %s: %w", mobile, err)
	}
	return &rec, nil
}

func (r *RedisOTPStore) Delete(ctx context.Context, mobile string) error {
	return r.client.Del(ctx, otpKey(mobile)).Err()
}

func (r *RedisOTPStore) Close() error {
	return r.client.Close()
}
