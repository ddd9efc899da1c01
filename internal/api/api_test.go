package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Pedr0sc/techstore/internal/address"
	"github.com/Pedr0sc/techstore/internal/cart"
	"github.com/Pedr0sc/techstore/internal/catalog"
	"github.com/Pedr0sc/techstore/internal/snapshot"
)

// fakeLookup implements address.Lookup for handler tests
type fakeLookup struct {
	record *address.Record
	err    error
}

func (l *fakeLookup) Resolve(context.Context, string) (*address.Record, error) {
	return l.record, l.err
}

type fixture struct {
	router http.Handler
	store  snapshot.Store
}

func newFixture(t *testing.T, lookup address.Lookup) *fixture {
	t.Helper()

	cat := catalog.NewMemory(catalog.DefaultProducts())
	carts := cart.NewService(cat, zap.NewNop())
	store := snapshot.NewMemoryStore()

	products := NewProductHandler(cat, time.Second)
	cartHandler := NewCartHandler(carts, time.Second)
	checkouts := NewCheckoutHandler(carts, cat, store, lookup, zap.NewNop(), time.Second)

	return &fixture{
		router: NewRouter(products, cartHandler, checkouts, 5*time.Second),
		store:  store,
	}
}

// client keeps the session cookie across requests, like a browser would
type client struct {
	t       *testing.T
	router  http.Handler
	cookies []*http.Cookie
}

func (c *client) do(method, path string, body any) (*httptest.ResponseRecorder, []byte) {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	if cookies := rec.Result().Cookies(); len(cookies) > 0 {
		c.cookies = cookies
	}
	return rec, rec.Body.Bytes()
}

func TestListProducts(t *testing.T) {
	f := newFixture(t, &fakeLookup{})
	c := &client{t: t, router: f.router}

	rec, body := c.do(http.MethodGet, "/api/v1/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ProductsResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.Len(t, resp.Products, 12)
	assert.Equal(t, "iPhone 15 Pro", resp.Products[0].Name)
	assert.Equal(t, "smartphone", resp.Products[0].Category)
}

func TestListProducts_FilterByCategory(t *testing.T) {
	f := newFixture(t, &fakeLookup{})
	c := &client{t: t, router: f.router}

	rec, body := c.do(http.MethodGet, "/api/v1/products?category=laptop", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ProductsResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.Len(t, resp.Products, 3)
	for _, p := range resp.Products {
		assert.Equal(t, "laptop", p.Category)
	}
}

func TestListProducts_UnknownCategoryIsEmpty(t *testing.T) {
	f := newFixture(t, &fakeLookup{})
	c := &client{t: t, router: f.router}

	rec, body := c.do(http.MethodGet, "/api/v1/products?category=smartwatch", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ProductsResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Empty(t, resp.Products)
}

func TestCategories(t *testing.T) {
	f := newFixture(t, &fakeLookup{})
	c := &client{t: t, router: f.router}

	rec, body := c.do(http.MethodGet, "/api/v1/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CategoriesResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, []string{"all", "smartphone", "laptop", "accessory", "tablet"}, resp.Categories)
}

func TestAddItem(t *testing.T) {
	f := newFixture(t, &fakeLookup{})
	c := &client{t: t, router: f.router}

	rec, body := c.do(http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: 1})
	require.Equal(t, http.StatusCreated, rec.Code)

	var view cart.View
	require.NoError(t, json.Unmarshal(body, &view))
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.ItemCount)
	assert.Equal(t, "7999.99", view.Total.StringFixed(2))
}

func TestAddItem_UnknownProduct(t *testing.T) {
	f := newFixture(t, &fakeLookup{})
	c := &client{t: t, router: f.router}

	rec, _ := c.do(http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: 404})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec, body := c.do(http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var view cart.View
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, 0, view.ItemCount)
}

func TestUpdateQuantity_RemovesAtZero(t *testing.T) {
	f := newFixture(t, &fakeLookup{})
	c := &client{t: t, router: f.router}

	c.do(http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: 1})
	c.do(http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: 1})

	rec, body := c.do(http.MethodPatch, "/api/v1/cart/items/1", QuantityDeltaRequestDTO{Delta: -2})
	require.Equal(t, http.StatusOK, rec.Code)

	var view cart.View
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Empty(t, view.Items)
	assert.Equal(t, 0, view.ItemCount)
}

func TestInitiateCheckout_EmptyCart(t *testing.T) {
	f := newFixture(t, &fakeLookup{})
	c := &client{t: t, router: f.router}

	rec, body := c.do(http.MethodPost, "/api/v1/checkout", nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "empty_cart", resp.Code)
	assert.Equal(t, "/", resp.Redirect)
}

func TestBeginCheckout_WithoutSnapshot(t *testing.T) {
	f := newFixture(t, &fakeLookup{})
	c := &client{t: t, router: f.router}

	rec, body := c.do(http.MethodGet, "/api/v1/checkout", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CheckoutStateResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "EMPTY", resp.Status)
	assert.Equal(t, "/", resp.Redirect)
}

func TestResolveAddress_InvalidCode(t *testing.T) {
	f := newFixture(t, &fakeLookup{})
	c := &client{t: t, router: f.router}

	rec, _ := c.do(http.MethodGet, "/api/v1/checkout/address/123", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResolveAddress_NotFound(t *testing.T) {
	f := newFixture(t, &fakeLookup{err: address.ErrCEPNotFound})
	c := &client{t: t, router: f.router}

	c.do(http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: 1})
	c.do(http.MethodPost, "/api/v1/checkout", nil)
	c.do(http.MethodGet, "/api/v1/checkout", nil)

	rec, body := c.do(http.MethodGet, "/api/v1/checkout/address/99999999", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "cep_not_found", resp.Code)
}

func TestSubmit_MissingEmail(t *testing.T) {
	f := newFixture(t, &fakeLookup{})
	c := &client{t: t, router: f.router}

	c.do(http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: 1})
	c.do(http.MethodPost, "/api/v1/checkout", nil)
	c.do(http.MethodGet, "/api/v1/checkout", nil)

	form := map[string]string{
		"name": "Maria Silva", "phone": "11 99999-0000",
		"cep": "01310-100", "street": "Avenida Paulista", "number": "1000",
		"neighborhood": "Bela Vista", "city": "São Paulo", "state": "SP",
	}
	rec, body := c.do(http.MethodPost, "/api/v1/checkout/submit", form)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "email", resp.Field)
	assert.Equal(t, "email", resp.Focus)
	assert.Contains(t, resp.Error, "E-mail")
}

func TestCheckoutFlow_EndToEnd(t *testing.T) {
	lookup := &fakeLookup{record: &address.Record{
		CEP:          "01310-100",
		Street:       "Avenida Paulista",
		Neighborhood: "Bela Vista",
		City:         "São Paulo",
		State:        "SP",
	}}
	f := newFixture(t, lookup)
	c := &client{t: t, router: f.router}

	// Build the cart: 2 x product 1, 1 x product 3
	c.do(http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: 1})
	c.do(http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: 1})
	c.do(http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: 3})

	// Initiate checkout: snapshot is persisted
	rec, body := c.do(http.MethodPost, "/api/v1/checkout", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var initiate InitiateResponse
	require.NoError(t, json.Unmarshal(body, &initiate))
	assert.Equal(t, "/checkout", initiate.Redirect)
	assert.Equal(t, 3, initiate.ItemCount)
	assert.Equal(t, "17899.97", initiate.TotalAmount.StringFixed(2))

	// Checkout page load reconstructs the snapshot
	rec, body = c.do(http.MethodGet, "/api/v1/checkout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var state CheckoutStateResponse
	require.NoError(t, json.Unmarshal(body, &state))
	assert.Equal(t, "POPULATED", state.Status)
	require.Len(t, state.Items, 2)
	assert.Equal(t, "17899.97", state.TotalAmount.StringFixed(2))

	// Address lookup fills the form and focuses the number field
	rec, body = c.do(http.MethodGet, "/api/v1/checkout/address/01310-100", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var addr AddressResponse
	require.NoError(t, json.Unmarshal(body, &addr))
	assert.Equal(t, "Avenida Paulista", addr.Address.Street)
	assert.Equal(t, "number", addr.Focus)

	// Submit the completed form
	form := map[string]string{
		"name": "Maria Silva", "email": "maria@example.com", "phone": "11 99999-0000",
		"cep": "01310-100", "street": "Avenida Paulista", "number": "1000",
		"neighborhood": "Bela Vista", "city": "São Paulo", "state": "SP",
	}
	rec, body = c.do(http.MethodPost, "/api/v1/checkout/submit", form)
	require.Equal(t, http.StatusCreated, rec.Code)

	var orderResp OrderResponse
	require.NoError(t, json.Unmarshal(body, &orderResp))
	require.NotNil(t, orderResp.Order)
	assert.Equal(t, "/", orderResp.Redirect)
	assert.Equal(t, 3, orderResp.Order.ItemCount)
	assert.Equal(t, "17899.97", orderResp.Order.Total.StringFixed(2))
	assert.Equal(t, "Maria Silva", orderResp.Order.Customer.Name)

	// The persisted snapshot is gone
	_, err := f.store.Load(context.Background(), c.cookies[0].Value)
	assert.ErrorIs(t, err, snapshot.ErrSnapshotNotFound)

	// The live cart is cleared and a second submit is rejected
	rec, body = c.do(http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var view cart.View
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, 0, view.ItemCount)

	rec, _ = c.do(http.MethodPost, "/api/v1/checkout/submit", form)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSessionCookie_Minted(t *testing.T) {
	f := newFixture(t, &fakeLookup{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, sessionCookieName, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
}

func TestSessionCookie_SeparatesCarts(t *testing.T) {
	f := newFixture(t, &fakeLookup{})

	a := &client{t: t, router: f.router}
	b := &client{t: t, router: f.router}

	a.do(http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: 1})

	_, body := b.do(http.MethodGet, "/api/v1/cart", nil)
	var view cart.View
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, 0, view.ItemCount, fmt.Sprintf("session b should not see session a's cart: %s", body))
}
