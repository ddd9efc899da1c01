package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Pedr0sc/techstore/internal/address"
	"github.com/Pedr0sc/techstore/internal/snapshot"
)

// Navigator performs page transitions on behalf of the session. It is
// invoked on the empty-cart entry path and after finalization.
type Navigator interface {
	RedirectToCatalog(reason string)
}

// AddressResult carries a successful resolution plus the UI affordance of
// advancing focus to the street-number field.
type AddressResult struct {
	Record      *address.Record
	FocusNumber bool
}

// Session drives one checkout page load: it reconstructs the cart snapshot,
// resolves the delivery address and validates the submitted form into an
// order. Totals are rendered from the snapshot only; the session never
// consults the catalog.
type Session struct {
	mu        sync.Mutex
	sessionID string
	status    Status
	snap      *snapshot.Snapshot
	resolved  *address.Record

	// Lookup responses are applied only if no newer request was issued in
	// the meantime; a stale response can never overwrite fresher fields.
	lookupSeq     uint64
	lookupSettled uint64

	store  snapshot.Store
	lookup address.Lookup
	nav    Navigator
	logger *zap.Logger
}

func NewSession(sessionID string, store snapshot.Store, lookup address.Lookup, nav Navigator, logger *zap.Logger) *Session {
	return &Session{
		sessionID: sessionID,
		status:    StatusLoading,
		store:     store,
		lookup:    lookup,
		nav:       nav,
		logger:    logger,
	}
}

// Begin loads the persisted snapshot. An absent, malformed or empty snapshot
// makes the session terminal and signals the redirect collaborator.
func (s *Session) Begin(ctx context.Context) Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusLoading {
		return s.status
	}

	snap, err := s.store.Load(ctx, s.sessionID)
	if err != nil {
		if !errors.Is(err, snapshot.ErrSnapshotNotFound) {
			s.logger.Warn("snapshot load failed, treating cart as empty",
				zap.String("session_id", s.sessionID),
				zap.Error(err))
		}
		snap = nil
	}

	if snap.IsEmpty() {
		s.status = StatusEmpty
		s.nav.RedirectToCatalog("cart is empty")
		return s.status
	}

	s.snap = snap
	s.status = StatusPopulated
	return s.status
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Snapshot returns the reconstructed cart, nil unless populated.
func (s *Session) Snapshot() *snapshot.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Address returns the currently resolved address, nil when unresolved.
func (s *Session) Address() *address.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolved
}

// Resolving reports whether a lookup is in flight. While true the address
// fields hold placeholder data and submission is rejected.
func (s *Session) Resolving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookupSettled != s.lookupSeq
}

// ResolveAddress normalizes the raw code and, if complete, invokes the
// external lookup. Incomplete codes are ignored without error, matching the
// blur behavior of the form. On failure the address fields are cleared and
// the session stays populated.
func (s *Session) ResolveAddress(ctx context.Context, rawCEP string) (*AddressResult, error) {
	cep, ok := address.NormalizeCEP(rawCEP)
	if !ok {
		return nil, nil
	}

	s.mu.Lock()
	if s.status != StatusPopulated {
		s.mu.Unlock()
		return nil, ErrSessionTerminal
	}
	s.lookupSeq++
	seq := s.lookupSeq
	s.mu.Unlock()

	rec, err := s.lookup.Resolve(ctx, cep)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.lookupSeq {
		// A newer lookup was issued while this one was in flight. Discard.
		s.logger.Debug("discarding stale cep lookup response",
			zap.String("session_id", s.sessionID),
			zap.String("cep", cep))
		return nil, nil
	}
	s.lookupSettled = seq

	if err != nil {
		s.resolved = nil
		if errors.Is(err, address.ErrCEPNotFound) {
			return nil, fmt.Errorf("cep %s: %w", cep, address.ErrCEPNotFound)
		}
		return nil, fmt.Errorf("cep lookup failed: %w", err)
	}

	s.resolved = rec
	return &AddressResult{Record: rec, FocusNumber: true}, nil
}

// Submit validates the form and finalizes the order. Validation failures are
// recoverable: the session reports the first missing field and returns to
// populated. Success is one-shot: the persisted snapshot is cleared and the
// session becomes terminal.
func (s *Session) Submit(ctx context.Context, form Form) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status.IsTerminal() || s.status == StatusLoading {
		return nil, ErrSessionTerminal
	}
	if s.lookupSettled != s.lookupSeq {
		return nil, ErrAddressResolving
	}

	s.status = StatusValidating
	if ve := form.Validate(); ve != nil {
		s.status = StatusInvalid
		s.logger.Info("checkout form invalid",
			zap.String("session_id", s.sessionID),
			zap.String("field", ve.Field))
		s.status = StatusPopulated
		return nil, ve
	}

	if s.snap.IsEmpty() {
		s.status = StatusPopulated
		s.logger.Error("finalization attempted with empty snapshot",
			zap.String("session_id", s.sessionID))
		return nil, ErrEmptyCart
	}

	if err := s.store.Clear(ctx, s.sessionID); err != nil {
		s.status = StatusPopulated
		return nil, fmt.Errorf("failed to clear persisted snapshot: %w", err)
	}

	order := &Order{
		ID: uuid.NewString(),
		Customer: Customer{
			Name:  form.Name,
			Email: form.Email,
			Phone: form.Phone,
		},
		Address: address.Record{
			CEP:          form.CEP,
			Street:       form.Street,
			Neighborhood: form.Neighborhood,
			City:         form.City,
			State:        form.State,
		},
		Number:     form.Number,
		Complement: form.Complement,
		Items:      s.snap.Items,
		Total:      s.snap.TotalAmount,
		ItemCount:  s.snap.ItemCount(),
		PlacedAt:   time.Now(),
	}

	s.status = StatusFinalized
	s.logger.Info("order finalized",
		zap.String("session_id", s.sessionID),
		zap.String("order_id", order.ID),
		zap.Int("item_count", order.ItemCount),
		zap.String("total", order.Total.StringFixed(2)))
	s.nav.RedirectToCatalog("order finalized")
	return order, nil
}
