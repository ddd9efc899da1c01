package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Pedr0sc/techstore/internal/catalog"
)

// Service owns one cart per storefront session. Carts are created lazily on
// first access and live for the duration of the process; a browser session is
// single-writer so the registry mutex is only guarding against concurrent
// HTTP requests.
type Service struct {
	mu      sync.Mutex
	carts   map[string]*Cart
	catalog catalog.Catalog
	logger  *zap.Logger
}

func NewService(cat catalog.Catalog, logger *zap.Logger) *Service {
	return &Service{
		carts:   make(map[string]*Cart),
		catalog: cat,
		logger:  logger,
	}
}

// ItemView is a line item denormalized for rendering.
type ItemView struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Icon      string          `json:"icon"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// View is the cart state a rendering collaborator consumes.
type View struct {
	Items     []ItemView      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

func (s *Service) AddItem(ctx context.Context, sessionID string, productID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added, err := s.cartLocked(sessionID).AddItem(ctx, s.catalog, productID)
	if err != nil {
		return false, err
	}
	if !added {
		s.logger.Debug("add item ignored, unknown product",
			zap.String("session_id", sessionID),
			zap.Int64("product_id", productID))
		return false, nil
	}

	s.logger.Info("item added to cart",
		zap.String("session_id", sessionID),
		zap.Int64("product_id", productID))
	return true, nil
}

func (s *Service) ApplyQuantityDelta(sessionID string, productID int64, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cartLocked(sessionID).ApplyQuantityDelta(productID, delta)
	s.logger.Info("cart quantity changed",
		zap.String("session_id", sessionID),
		zap.Int64("product_id", productID),
		zap.Int("delta", delta))
}

func (s *Service) RemoveItem(sessionID string, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cartLocked(sessionID).RemoveItem(productID)
	s.logger.Info("item removed from cart",
		zap.String("session_id", sessionID),
		zap.Int64("product_id", productID))
}

func (s *Service) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cartLocked(sessionID).Clear()
	s.logger.Info("cart cleared", zap.String("session_id", sessionID))
}

// Cart returns the session's cart, creating an empty one on first access.
func (s *Service) Cart(sessionID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartLocked(sessionID)
}

// View builds the denormalized cart state for the session. Items whose
// product is no longer in the catalog are skipped, matching Cart.Total.
func (s *Service) View(ctx context.Context, sessionID string) (*View, error) {
	s.mu.Lock()
	c := s.cartLocked(sessionID)
	items := c.Items()
	s.mu.Unlock()

	view := &View{
		Items: make([]ItemView, 0, len(items)),
		Total: decimal.Zero,
	}
	for _, item := range items {
		p, err := s.catalog.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				continue
			}
			return nil, err
		}
		subtotal := p.Subtotal(item.Quantity)
		view.Items = append(view.Items, ItemView{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.UnitPrice,
			Icon:      p.Icon,
			Quantity:  item.Quantity,
			Subtotal:  subtotal,
		})
		view.Total = view.Total.Add(subtotal)
		view.ItemCount += item.Quantity
	}
	return view, nil
}

func (s *Service) cartLocked(sessionID string) *Cart {
	c, ok := s.carts[sessionID]
	if !ok {
		c = New()
		s.carts[sessionID] = c
	}
	return c
}
