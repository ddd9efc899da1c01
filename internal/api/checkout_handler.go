package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Pedr0sc/techstore/internal/address"
	"github.com/Pedr0sc/techstore/internal/cart"
	"github.com/Pedr0sc/techstore/internal/catalog"
	"github.com/Pedr0sc/techstore/internal/checkout"
	"github.com/Pedr0sc/techstore/internal/snapshot"
)

// CheckoutHandler drives the checkout flow over HTTP. It plays the rendering
// and navigation collaborator roles for checkout sessions: redirects surface
// as a "redirect" field in the JSON responses.
type CheckoutHandler struct {
	carts   *cart.Service
	catalog catalog.Catalog
	store   snapshot.Store
	lookup  address.Lookup
	logger  *zap.Logger
	timeout time.Duration

	mu       sync.Mutex
	sessions map[string]*checkout.Session
}

func NewCheckoutHandler(
	carts *cart.Service,
	cat catalog.Catalog,
	store snapshot.Store,
	lookup address.Lookup,
	logger *zap.Logger,
	timeout time.Duration,
) *CheckoutHandler {
	return &CheckoutHandler{
		carts:    carts,
		catalog:  cat,
		store:    store,
		lookup:   lookup,
		logger:   logger,
		timeout:  timeout,
		sessions: make(map[string]*checkout.Session),
	}
}

// redirectRecorder is the per-request navigation collaborator: redirects
// requested by the session become a field on the JSON response.
type redirectRecorder struct {
	target string
}

func (r *redirectRecorder) RedirectToCatalog(_ string) {
	r.target = "/"
}

type InitiateResponse struct {
	Redirect    string          `json:"redirect"`
	ItemCount   int             `json:"item_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type CheckoutStateResponse struct {
	Status      string          `json:"status"`
	Items       []snapshot.Item `json:"items,omitempty"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
	Redirect    string          `json:"redirect,omitempty"`
}

type AddressResponse struct {
	Address *address.Record `json:"address"`
	Focus   string          `json:"focus,omitempty"`
}

type OrderResponse struct {
	Order    *checkout.Order `json:"order"`
	Redirect string          `json:"redirect,omitempty"`
}

// Initiate serializes the live cart into the persisted snapshot and hands
// the browser over to the checkout page. An empty cart never produces a
// snapshot.
func (h *CheckoutHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	snap, err := snapshot.Capture(ctx, h.carts.Cart(sessionID), h.catalog)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to capture cart")
		return
	}

	if snap.IsEmpty() {
		respondJSON(w, http.StatusConflict, ErrorResponse{
			Error:    "cart is empty",
			Code:     "empty_cart",
			Redirect: "/",
		})
		return
	}

	if err := h.store.Save(ctx, sessionID, snap); err != nil {
		h.logger.Error("failed to persist cart snapshot", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to persist cart")
		return
	}

	respondJSON(w, http.StatusCreated, &InitiateResponse{
		Redirect:    "/checkout",
		ItemCount:   snap.ItemCount(),
		TotalAmount: snap.TotalAmount,
	})
}

// Begin reconstructs the checkout session from the persisted snapshot, the
// checkout-page equivalent of a page load.
func (h *CheckoutHandler) Begin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	nav := &redirectRecorder{}
	sess := checkout.NewSession(sessionID, h.store, h.lookup, nav, h.logger)

	status := sess.Begin(ctx)
	if status == checkout.StatusEmpty {
		respondJSON(w, http.StatusOK, &CheckoutStateResponse{
			Status:      string(status),
			TotalAmount: decimal.Zero,
			Redirect:    nav.target,
		})
		return
	}

	h.mu.Lock()
	h.sessions[sessionID] = sess
	h.mu.Unlock()

	snap := sess.Snapshot()
	respondJSON(w, http.StatusOK, &CheckoutStateResponse{
		Status:      string(status),
		Items:       snap.Items,
		TotalAmount: snap.TotalAmount,
		ItemCount:   snap.ItemCount(),
	})
}

// ResolveAddress looks the postal code up through the session so stale
// responses cannot clobber newer ones.
func (h *CheckoutHandler) ResolveAddress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	raw := chi.URLParam(r, "cep")
	if _, ok := address.NormalizeCEP(raw); !ok {
		respondError(w, http.StatusBadRequest, "invalid_cep", "cep must contain exactly 8 digits")
		return
	}

	sess, ok := h.session(getSessionID(r.Context()))
	if !ok {
		respondError(w, http.StatusConflict, "checkout_not_started", "checkout session not started")
		return
	}

	result, err := sess.ResolveAddress(ctx, raw)
	if err != nil {
		switch {
		case errors.Is(err, address.ErrCEPNotFound):
			respondError(w, http.StatusNotFound, "cep_not_found", "CEP não encontrado. Por favor, verifique e tente novamente.")
		case errors.Is(err, checkout.ErrSessionTerminal):
			respondError(w, http.StatusConflict, "session_terminal", "checkout session is no longer active")
		default:
			respondError(w, http.StatusBadGateway, "lookup_unavailable", "Não foi possível buscar o CEP. Tente novamente.")
		}
		return
	}
	if result == nil {
		// Incomplete code or a lookup superseded by a newer one
		respondJSON(w, http.StatusAccepted, &AddressResponse{})
		return
	}

	respondJSON(w, http.StatusOK, &AddressResponse{
		Address: result.Record,
		Focus:   "number",
	})
}

// Submit validates the form and finalizes the order.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	sess, ok := h.session(sessionID)
	if !ok {
		respondError(w, http.StatusConflict, "checkout_not_started", "checkout session not started")
		return
	}

	var form checkout.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := sess.Submit(ctx, form)
	if err != nil {
		h.respondSubmitError(w, err)
		return
	}

	// Finalization is one-shot; drop the session and clear the live cart
	h.mu.Lock()
	delete(h.sessions, sessionID)
	h.mu.Unlock()
	h.carts.Clear(sessionID)

	respondJSON(w, http.StatusCreated, &OrderResponse{
		Order:    order,
		Redirect: "/",
	})
}

func (h *CheckoutHandler) respondSubmitError(w http.ResponseWriter, err error) {
	var ve *checkout.ValidationError
	switch {
	case errors.As(err, &ve):
		respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error: "Por favor, preencha o campo " + ve.Label + ".",
			Code:  "missing_field",
			Field: ve.Field,
			Focus: ve.Field,
		})
	case errors.Is(err, checkout.ErrAddressResolving):
		respondError(w, http.StatusConflict, "address_resolving", "address lookup still in progress")
	case errors.Is(err, checkout.ErrSessionTerminal):
		respondError(w, http.StatusConflict, "session_terminal", "checkout already completed")
	case errors.Is(err, checkout.ErrEmptyCart):
		h.logger.Error("submit reached with empty snapshot", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (h *CheckoutHandler) session(sessionID string) (*checkout.Session, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	sess, ok := h.sessions[sessionID]
	return sess, ok
}
