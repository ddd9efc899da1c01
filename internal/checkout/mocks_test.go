package checkout

import (
	"context"
	"sync"

	"github.com/Pedr0sc/techstore/internal/address"
	"github.com/Pedr0sc/techstore/internal/snapshot"
)

// mockNavigator records redirect calls
type mockNavigator struct {
	mu        sync.Mutex
	redirects []string
}

func (n *mockNavigator) RedirectToCatalog(reason string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.redirects = append(n.redirects, reason)
}

func (n *mockNavigator) Redirects() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.redirects...)
}

// mockLookup implements address.Lookup with a fixed answer and a call count
type mockLookup struct {
	mu     sync.Mutex
	record *address.Record
	err    error
	calls  int
}

func (l *mockLookup) Resolve(_ context.Context, _ string) (*address.Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	return l.record, l.err
}

func (l *mockLookup) Calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

// gatedLookup blocks each Resolve call until its per-cep gate is released,
// signalling entry on the entered channel so tests can order the calls.
type gatedLookup struct {
	entered chan string
	gates   map[string]chan struct{}
	records map[string]*address.Record
}

func (l *gatedLookup) Resolve(_ context.Context, cep string) (*address.Record, error) {
	l.entered <- cep
	<-l.gates[cep]
	if rec, ok := l.records[cep]; ok {
		return rec, nil
	}
	return nil, address.ErrCEPNotFound
}

// failingStore wraps a Store with injectable errors
type failingStore struct {
	snapshot.Store
	loadErr  error
	clearErr error
}

func (s *failingStore) Load(ctx context.Context, sessionID string) (*snapshot.Snapshot, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.Store.Load(ctx, sessionID)
}

func (s *failingStore) Clear(ctx context.Context, sessionID string) error {
	if s.clearErr != nil {
		return s.clearErr
	}
	return s.Store.Clear(ctx, sessionID)
}
