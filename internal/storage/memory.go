package storage

import (
	"context"
	"sync"
	"time"

	"github.com/kay207/money-life/internal/interfaces"
	"github.com/kay207/money-life/internal/models"
)

// MemoryStore is an in-memory LedgerStore used by tests and ephemeral runs.
type MemoryStore struct {
	mu          sync.RWMutex
	profile     *models.UserProfile
	assets      *models.UserAssets
	snapshots   []models.AssetSnapshot
	lastUpdated time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) LoadProfile(_ context.Context) (*models.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.profile == nil {
		return nil, nil
	}
	profile := *m.profile
	return &profile, nil
}

func (m *MemoryStore) SaveProfile(_ context.Context, profile *models.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := *profile
	m.profile = &p
	return nil
}

func (m *MemoryStore) LoadAssets(_ context.Context) (*models.UserAssets, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.assets == nil {
		return nil, nil
	}
	clone := m.assets.Clone()
	return &clone, nil
}

func (m *MemoryStore) SaveAssets(_ context.Context, assets *models.UserAssets) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := assets.Clone()
	m.assets = &clone
	return nil
}

func (m *MemoryStore) LoadSnapshots(_ context.Context) ([]models.AssetSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.snapshots == nil {
		return nil, nil
	}
	out := make([]models.AssetSnapshot, len(m.snapshots))
	copy(out, m.snapshots)
	return out, nil
}

func (m *MemoryStore) SaveSnapshots(_ context.Context, snapshots []models.AssetSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots = make([]models.AssetSnapshot, len(snapshots))
	copy(m.snapshots, snapshots)
	return nil
}

func (m *MemoryStore) LastUpdated(_ context.Context) (time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastUpdated, nil
}

func (m *MemoryStore) SetLastUpdated(_ context.Context, t time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastUpdated = t
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profile = nil
	m.assets = nil
	m.snapshots = nil
	m.lastUpdated = time.Time{}
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}

// Ensure MemoryStore implements LedgerStore
var _ interfaces.LedgerStore = (*MemoryStore)(nil)
