// ABOUTME: Recently verified mobile numbers offered on the login screen
// ABOUTME: Kept in the client key-value store, newest first

package recent

import (
	"context"
	"encoding/json"

	"github.com/onestepgreener/greener-cli/internal/storage"
)

// MaxRecentMobiles is the maximum number of numbers to keep
const MaxRecentMobiles = 5

// storageKey is where the list lives in the store
const storageKey = "recentMobiles"

// Mobiles manages the list of recently used mobile numbers
type Mobiles struct {
	kv      storage.Store
	mobiles []string
}

type recentData struct {
	Mobiles []string `json:"mobiles"`
}

// New creates a Mobiles list backed by kv
func New(kv storage.Store) *Mobiles {
	return &Mobiles{kv: kv}
}

// Load reads the list from the store. A missing or corrupt value is an
// empty list.
func (m *Mobiles) Load(ctx context.Context) ([]string, error) {
	raw, ok, err := m.kv.Get(ctx, storageKey)
	if err != nil {
		return nil, err
	}
	m.mobiles = []string{}
	if !ok {
		return m.mobiles, nil
	}

	var data recentData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return m.mobiles, nil
	}
	m.mobiles = data.Mobiles
	if len(m.mobiles) > MaxRecentMobiles {
		m.mobiles = m.mobiles[:MaxRecentMobiles]
	}
	return m.mobiles, nil
}

// Save writes the list, trimmed to MaxRecentMobiles
func (m *Mobiles) Save(ctx context.Context, mobiles []string) error {
	if len(mobiles) > MaxRecentMobiles {
		mobiles = mobiles[:MaxRecentMobiles]
	}
	m.mobiles = mobiles

	data, err := json.Marshal(recentData{Mobiles: mobiles})
	if err != nil {
		return err
	}
	return m.kv.Set(ctx, storageKey, string(data))
}

// Add puts mobile at the front, removing an earlier occurrence
func (m *Mobiles) Add(ctx context.Context, mobile string) error {
	if m.mobiles == nil {
		if _, err := m.Load(ctx); err != nil {
			m.mobiles = []string{}
		}
	}

	next := make([]string, 0, len(m.mobiles)+1)
	next = append(next, mobile)
	for _, existing := range m.mobiles {
		if existing != mobile {
			next = append(next, existing)
		}
	}
	return m.Save(ctx, next)
}

// List returns the current list, loading it on first use
func (m *Mobiles) List(ctx context.Context) []string {
	if m.mobiles == nil {
		m.Load(ctx)
	}
	return m.mobiles
}

// Clear forgets every number
func (m *Mobiles) Clear(ctx context.Context) error {
	m.mobiles = []string{}
	return m.kv.Delete(ctx, storageKey)
}
