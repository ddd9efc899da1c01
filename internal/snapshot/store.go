package snapshot

import (
	"context"
	"errors"
	"sync"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// Store persists one snapshot per storefront session. Save overwrites any
// prior snapshot; Clear removes the record entirely.
type Store interface {
	Save(ctx context.Context, sessionID string, snap *Snapshot) error
	Load(ctx context.Context, sessionID string) (*Snapshot, error)
	Clear(ctx context.Context, sessionID string) error
}

// MemoryStore keeps serialized snapshots in process memory. It round-trips
// through JSON so it exercises the same serialization contract as the
// Redis-backed store.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

func (m *MemoryStore) Save(_ context.Context, sessionID string, snap *Snapshot) error {
	data, err := marshalSnapshot(snap)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[sessionID] = data
	return nil
}

func (m *MemoryStore) Load(_ context.Context, sessionID string) (*Snapshot, error) {
	m.mu.RLock()
	data, ok := m.records[sessionID]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return unmarshalSnapshot(data)
}

func (m *MemoryStore) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, sessionID)
	return nil
}
